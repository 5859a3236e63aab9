// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package oracledatum

import (
	"fmt"

	"github.com/blinklabs-io/oracle-datum/cbor"
	"github.com/blinklabs-io/plutigo/data"
)

// Constructor/alternative numbers for the price data variants
const (
	PriceDataTypeShared   = 0
	PriceDataTypeExtended = 1
	PriceDataTypeGeneric  = 2
)

// PriceData is the tagged union carried inside an OracleDatum. Only the
// GenericData variant carries a payload; SharedData and ExtendedData are
// reserved markers that decode cleanly but fail field extraction.
type PriceData interface {
	isPriceData()
	ToPlutusData() data.PlutusData
}

// SharedData is the reserved constructor-0 variant with no payload
type SharedData struct {
	cbor.DecodeStoreCbor
}

func (SharedData) isPriceData() {}

func (d *SharedData) UnmarshalCBOR(cborData []byte) error {
	if err := decodeMarkerVariant(cborData, PriceDataTypeShared); err != nil {
		return err
	}
	d.SetCbor(cborData)
	return nil
}

func (d SharedData) MarshalCBOR() ([]byte, error) {
	return marshalMarkerVariant(d.Cbor(), PriceDataTypeShared)
}

func (d SharedData) ToPlutusData() data.PlutusData {
	return data.NewConstr(PriceDataTypeShared)
}

// ExtendedData is the reserved constructor-1 variant with no payload
type ExtendedData struct {
	cbor.DecodeStoreCbor
}

func (ExtendedData) isPriceData() {}

func (d *ExtendedData) UnmarshalCBOR(cborData []byte) error {
	if err := decodeMarkerVariant(cborData, PriceDataTypeExtended); err != nil {
		return err
	}
	d.SetCbor(cborData)
	return nil
}

func (d ExtendedData) MarshalCBOR() ([]byte, error) {
	return marshalMarkerVariant(d.Cbor(), PriceDataTypeExtended)
}

func (d ExtendedData) ToPlutusData() data.PlutusData {
	return data.NewConstr(PriceDataTypeExtended)
}

// GenericData is the constructor-2 variant holding the price map payload
type GenericData struct {
	cbor.DecodeStoreCbor
	PriceMap PriceMap
}

func (GenericData) isPriceData() {}

func (d *GenericData) UnmarshalCBOR(cborData []byte) error {
	var tmpConstr cbor.ConstructorDecoder
	if _, err := cbor.Decode(cborData, &tmpConstr); err != nil {
		return err
	}
	if tmpConstr.Tag() != PriceDataTypeGeneric {
		return fmt.Errorf(
			"unexpected constructor for generic price data: %d",
			tmpConstr.Tag(),
		)
	}
	var tmpFields []cbor.RawMessage
	if err := tmpConstr.DecodeFields(&tmpFields); err != nil {
		return err
	}
	if len(tmpFields) != 1 {
		return fmt.Errorf(
			"expected 1 field for generic price data, got %d",
			len(tmpFields),
		)
	}
	var tmpMap PriceMap
	if _, err := cbor.Decode(tmpFields[0], &tmpMap); err != nil {
		return err
	}
	d.PriceMap = tmpMap
	d.SetCbor(cborData)
	return nil
}

// MarshalCBOR encodes the price data as constructor 2 wrapping the price map.
// If original bytes are available from a previous decode, they are returned
// for byte-exact round-trip fidelity.
func (d GenericData) MarshalCBOR() ([]byte, error) {
	if stored := d.Cbor(); len(stored) > 0 {
		return stored, nil
	}
	tmpConstr := cbor.NewConstructorEncoder(
		PriceDataTypeGeneric,
		cbor.IndefLengthList{d.PriceMap},
	)
	return cbor.Encode(&tmpConstr)
}

func (d GenericData) ToPlutusData() data.PlutusData {
	return data.NewConstr(
		PriceDataTypeGeneric,
		d.PriceMap.ToPlutusData(),
	)
}

// decodeMarkerVariant checks that the CBOR is the given payload-free constructor
func decodeMarkerVariant(cborData []byte, priceDataType uint) error {
	var tmpConstr cbor.ConstructorDecoder
	if _, err := cbor.Decode(cborData, &tmpConstr); err != nil {
		return err
	}
	if tmpConstr.Tag() != priceDataType {
		return fmt.Errorf(
			"unexpected constructor for price data: %d",
			tmpConstr.Tag(),
		)
	}
	var tmpFields []cbor.RawMessage
	if err := tmpConstr.DecodeFields(&tmpFields); err != nil {
		return err
	}
	if len(tmpFields) != 0 {
		return fmt.Errorf(
			"expected no fields for price data constructor %d, got %d",
			priceDataType,
			len(tmpFields),
		)
	}
	return nil
}

// marshalMarkerVariant encodes a payload-free constructor, preferring stored bytes
func marshalMarkerVariant(stored []byte, priceDataType uint) ([]byte, error) {
	if len(stored) > 0 {
		return stored, nil
	}
	tmpConstr := cbor.NewConstructorEncoder(priceDataType, []any{})
	return cbor.Encode(&tmpConstr)
}

// DecodePriceData decodes any of the price data variants from CBOR. Decoding
// accepts the payload-free variants; rejecting their semantics is left to the
// field accessors.
func DecodePriceData(cborData []byte) (PriceData, error) {
	var tmpConstr cbor.ConstructorDecoder
	if _, err := cbor.Decode(cborData, &tmpConstr); err != nil {
		return nil, err
	}
	switch tmpConstr.Tag() {
	case PriceDataTypeShared:
		var tmpData SharedData
		if _, err := cbor.Decode(cborData, &tmpData); err != nil {
			return nil, err
		}
		return tmpData, nil
	case PriceDataTypeExtended:
		var tmpData ExtendedData
		if _, err := cbor.Decode(cborData, &tmpData); err != nil {
			return nil, err
		}
		return tmpData, nil
	case PriceDataTypeGeneric:
		var tmpData GenericData
		if _, err := cbor.Decode(cborData, &tmpData); err != nil {
			return nil, err
		}
		return tmpData, nil
	default:
		return nil, fmt.Errorf(
			"unknown price data constructor: %d",
			tmpConstr.Tag(),
		)
	}
}

// PriceDataFromPlutusData converts decoded Plutus data into a price data variant
func PriceDataFromPlutusData(pd data.PlutusData) (PriceData, error) {
	tmpConstr, ok := pd.(*data.Constr)
	if !ok {
		return nil, fmt.Errorf("price data: expected constr, got %T", pd)
	}
	switch tmpConstr.Tag {
	case PriceDataTypeShared, PriceDataTypeExtended:
		if len(tmpConstr.Fields) != 0 {
			return nil, fmt.Errorf(
				"expected no fields for price data constructor %d, got %d",
				tmpConstr.Tag,
				len(tmpConstr.Fields),
			)
		}
		if tmpConstr.Tag == PriceDataTypeShared {
			return SharedData{}, nil
		}
		return ExtendedData{}, nil
	case PriceDataTypeGeneric:
		if len(tmpConstr.Fields) != 1 {
			return nil, fmt.Errorf(
				"expected 1 field for generic price data, got %d",
				len(tmpConstr.Fields),
			)
		}
		tmpMap, err := priceMapFromPlutusData(tmpConstr.Fields[0])
		if err != nil {
			return nil, err
		}
		return GenericData{PriceMap: tmpMap}, nil
	default:
		return nil, fmt.Errorf(
			"unknown price data constructor: %d",
			tmpConstr.Tag,
		)
	}
}

// getPriceDataField extracts a price map entry, enforcing the accessor failure
// semantics: wrong variant and missing key are reported distinctly and never
// silently defaulted.
func getPriceDataField(pd PriceData, key int64) (int64, error) {
	var tmpMap PriceMap
	switch v := pd.(type) {
	case GenericData:
		tmpMap = v.PriceMap
	case *GenericData:
		tmpMap = v.PriceMap
	default:
		return 0, InvalidVariantError{Variant: pd}
	}
	val, ok := tmpMap.Get(key)
	if !ok {
		return 0, FieldNotFoundError{Key: key}
	}
	return val, nil
}

// GetPrice returns the price from the payload-bearing price data variant
func GetPrice(pd PriceData) (int64, error) {
	return getPriceDataField(pd, PriceMapKeyPrice)
}

// GetCreatedAt returns the creation timestamp from the payload-bearing price
// data variant
func GetCreatedAt(pd PriceData) (int64, error) {
	return getPriceDataField(pd, PriceMapKeyCreatedAt)
}

// GetExpiryAt returns the expiry timestamp from the payload-bearing price
// data variant
func GetExpiryAt(pd PriceData) (int64, error) {
	return getPriceDataField(pd, PriceMapKeyExpiryAt)
}
