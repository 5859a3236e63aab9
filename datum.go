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
	"errors"
	"fmt"

	"github.com/blinklabs-io/oracle-datum/cbor"
	"github.com/blinklabs-io/plutigo/data"
)

// OracleDatum is the on-chain record published by a price oracle. It wraps a
// single PriceData value behind an explicit constructor so future variants
// can be added without breaking consumers that only understand GenericData.
type OracleDatum struct {
	cbor.DecodeStoreCbor
	PriceData PriceData
}

// NewOracleDatum builds the canonical well-formed datum shape. The key order
// (price, created-at, expiry-at) is fixed to guarantee deterministic encoded
// output. Argument ranges are not validated; sanity checks belong to the
// calling protocol.
func NewOracleDatum(price, createdAt, expiryAt int64) OracleDatum {
	return OracleDatum{
		PriceData: GenericData{
			PriceMap: PriceMap{
				{Key: PriceMapKeyPrice, Value: price},
				{Key: PriceMapKeyCreatedAt, Value: createdAt},
				{Key: PriceMapKeyExpiryAt, Value: expiryAt},
			},
		},
	}
}

func (d *OracleDatum) UnmarshalCBOR(cborData []byte) error {
	var tmpConstr cbor.ConstructorDecoder
	if _, err := cbor.Decode(cborData, &tmpConstr); err != nil {
		return err
	}
	if tmpConstr.Tag() != 0 {
		return fmt.Errorf(
			"unexpected constructor for oracle datum: %d",
			tmpConstr.Tag(),
		)
	}
	var tmpFields []cbor.RawMessage
	if err := tmpConstr.DecodeFields(&tmpFields); err != nil {
		return err
	}
	if len(tmpFields) != 1 {
		return fmt.Errorf(
			"expected 1 field for oracle datum, got %d",
			len(tmpFields),
		)
	}
	tmpPriceData, err := DecodePriceData(tmpFields[0])
	if err != nil {
		return err
	}
	d.PriceData = tmpPriceData
	d.SetCbor(cborData)
	return nil
}

// MarshalCBOR encodes the datum as constructor 0 wrapping the price data. If
// original bytes are available from a previous decode, they are returned for
// byte-exact round-trip fidelity.
func (d OracleDatum) MarshalCBOR() ([]byte, error) {
	if stored := d.Cbor(); len(stored) > 0 {
		return stored, nil
	}
	if d.PriceData == nil {
		return nil, errors.New("oracle datum has no price data")
	}
	tmpConstr := cbor.NewConstructorEncoder(
		0,
		cbor.IndefLengthList{d.PriceData},
	)
	return cbor.Encode(&tmpConstr)
}

// Price returns the published price
func (d OracleDatum) Price() (int64, error) {
	return GetPrice(d.PriceData)
}

// CreatedAt returns the publication timestamp
func (d OracleDatum) CreatedAt() (int64, error) {
	return GetCreatedAt(d.PriceData)
}

// ExpiryAt returns the expiry timestamp
func (d OracleDatum) ExpiryAt() (int64, error) {
	return GetExpiryAt(d.PriceData)
}

// IsValid returns whether the datum is still valid at the given time. The
// expiry boundary is inclusive: a time exactly equal to the expiry is valid.
// A returned error means validity could not be determined, which is a
// distinct outcome from a determined false.
func (d OracleDatum) IsValid(currentTime int64) (bool, error) {
	expiryAt, err := d.ExpiryAt()
	if err != nil {
		return false, err
	}
	return currentTime <= expiryAt, nil
}

func (d OracleDatum) ToPlutusData() data.PlutusData {
	if d.PriceData == nil {
		return data.NewConstr(0)
	}
	return data.NewConstr(
		0,
		d.PriceData.ToPlutusData(),
	)
}

// OracleDatumFromPlutusData converts decoded Plutus data into an OracleDatum
func OracleDatumFromPlutusData(pd data.PlutusData) (*OracleDatum, error) {
	tmpConstr, ok := pd.(*data.Constr)
	if !ok {
		return nil, fmt.Errorf("oracle datum: expected constr, got %T", pd)
	}
	if tmpConstr.Tag != 0 {
		return nil, fmt.Errorf(
			"unexpected constructor for oracle datum: %d",
			tmpConstr.Tag,
		)
	}
	if len(tmpConstr.Fields) != 1 {
		return nil, fmt.Errorf(
			"expected 1 field for oracle datum, got %d",
			len(tmpConstr.Fields),
		)
	}
	tmpPriceData, err := PriceDataFromPlutusData(tmpConstr.Fields[0])
	if err != nil {
		return nil, err
	}
	return &OracleDatum{PriceData: tmpPriceData}, nil
}

// Hash returns the Blake2b-256 hash of the canonical datum bytes. Stored
// bytes from a previous decode are used when available so the hash matches
// what on-chain consumers computed.
func (d OracleDatum) Hash() (DatumHash, error) {
	cborData := d.Cbor()
	if len(cborData) == 0 {
		tmpData, err := d.MarshalCBOR()
		if err != nil {
			return DatumHash{}, err
		}
		cborData = tmpData
	}
	return blake2b256Hash(cborData), nil
}
