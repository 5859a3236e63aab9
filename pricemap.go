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
	"math/big"

	"github.com/blinklabs-io/oracle-datum/cbor"
	"github.com/blinklabs-io/plutigo/data"
)

// Well-known price map keys
const (
	PriceMapKeyPrice     = 0
	PriceMapKeyCreatedAt = 1
	PriceMapKeyExpiryAt  = 2
)

// PricePair is a single key/value entry in a PriceMap
type PricePair struct {
	Key   int64
	Value int64
}

// PriceMap is an ordered sequence of integer key/value pairs. Entry order is
// preserved through encode/decode because it affects the encoded byte layout.
// Keys are not guaranteed unique; lookup returns the first match.
type PriceMap []PricePair

// Get returns the value of the first pair whose key matches
func (m PriceMap) Get(key int64) (int64, bool) {
	for _, pair := range m {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return 0, false
}

// MarshalCBOR encodes the price map as a CBOR map, preserving entry order.
// We can't use a native Go map here, since the encoder would sort the keys.
func (m PriceMap) MarshalCBOR() ([]byte, error) {
	ret, err := mapHeader(len(m))
	if err != nil {
		return nil, err
	}
	for _, pair := range m {
		keyBytes, err := cbor.Encode(pair.Key)
		if err != nil {
			return nil, err
		}
		ret = append(ret, keyBytes...)
		valueBytes, err := cbor.Encode(pair.Value)
		if err != nil {
			return nil, err
		}
		ret = append(ret, valueBytes...)
	}
	return ret, nil
}

// mapHeader builds the CBOR map header for the given entry count
func mapHeader(length int) ([]byte, error) {
	switch {
	case length <= int(cbor.CborMaxUintSimple):
		return []byte{cbor.CborTypeMap | uint8(length)}, nil
	case length < 256:
		return []byte{cbor.CborTypeMap | 0x18, uint8(length)}, nil
	case length < 65536:
		return []byte{
			cbor.CborTypeMap | 0x19,
			uint8(length >> 8),
			uint8(length),
		}, nil
	default:
		return nil, fmt.Errorf("price map too large to encode: %d entries", length)
	}
}

// UnmarshalCBOR decodes a CBOR map into an ordered pair sequence. Both
// definite and indefinite-length maps are accepted, and duplicate keys are
// preserved in encounter order.
func (m *PriceMap) UnmarshalCBOR(cborData []byte) error {
	count, headerSize, indefinite := cbor.MapInfo(cborData)
	if count < 0 {
		return errors.New("price map is not a CBOR map")
	}
	tmpMap := PriceMap{}
	offset := int(headerSize)
	for {
		if indefinite {
			if offset >= len(cborData) {
				return errors.New("price map missing indefinite-length break")
			}
			if cborData[offset] == 0xff {
				break
			}
		} else if len(tmpMap) == count {
			break
		}
		var tmpPair PricePair
		n, err := cbor.Decode(cborData[offset:], &tmpPair.Key)
		if err != nil {
			return fmt.Errorf("decode price map key: %w", err)
		}
		offset += n
		n, err = cbor.Decode(cborData[offset:], &tmpPair.Value)
		if err != nil {
			return fmt.Errorf("decode price map value: %w", err)
		}
		offset += n
		tmpMap = append(tmpMap, tmpPair)
	}
	*m = tmpMap
	return nil
}

func (m PriceMap) ToPlutusData() data.PlutusData {
	tmpPairs := make([][2]data.PlutusData, 0, len(m))
	for _, pair := range m {
		tmpPairs = append(
			tmpPairs,
			[2]data.PlutusData{
				data.NewInteger(big.NewInt(pair.Key)),
				data.NewInteger(big.NewInt(pair.Value)),
			},
		)
	}
	return data.NewMap(tmpPairs)
}

func priceMapFromPlutusData(pd data.PlutusData) (PriceMap, error) {
	tmpMap, ok := pd.(*data.Map)
	if !ok {
		return nil, fmt.Errorf("price map: expected map, got %T", pd)
	}
	ret := make(PriceMap, 0, len(tmpMap.Pairs))
	for _, pair := range tmpMap.Pairs {
		key, err := integerFromPlutusData(pair[0])
		if err != nil {
			return nil, fmt.Errorf("price map key: %w", err)
		}
		value, err := integerFromPlutusData(pair[1])
		if err != nil {
			return nil, fmt.Errorf("price map value: %w", err)
		}
		ret = append(ret, PricePair{Key: key, Value: value})
	}
	return ret, nil
}

func integerFromPlutusData(pd data.PlutusData) (int64, error) {
	tmpInt, ok := pd.(*data.Integer)
	if !ok {
		return 0, fmt.Errorf("expected integer, got %T", pd)
	}
	if !tmpInt.Inner.IsInt64() {
		return 0, fmt.Errorf("integer out of range: %s", tmpInt.Inner.String())
	}
	return tmpInt.Inner.Int64(), nil
}
