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
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const DatumHashSize = 32

// DatumHash is the Blake2b-256 hash of a datum's canonical CBOR bytes
type DatumHash [DatumHashSize]byte

func NewDatumHash(data []byte) DatumHash {
	h := DatumHash{}
	copy(h[:], data)
	return h
}

func (h DatumHash) String() string {
	return hex.EncodeToString(h[:])
}

func (h DatumHash) Bytes() []byte {
	return h[:]
}

func (h DatumHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// Bech32 encodes the hash as a CIP-0005 bech32 string with "datum" prefix
func (h DatumHash) Bech32() string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(h[:], 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode("datum", convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

// blake2b256Hash generates a Blake2b-256 hash from the provided data
func blake2b256Hash(data []byte) DatumHash {
	tmpHash, err := blake2b.New(DatumHashSize, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return DatumHash(tmpHash.Sum(nil))
}
