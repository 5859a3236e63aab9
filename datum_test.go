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

package oracledatum_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	oracledatum "github.com/blinklabs-io/oracle-datum"
	"github.com/blinklabs-io/oracle-datum/cbor"
	"github.com/blinklabs-io/oracle-datum/internal/test"
	"github.com/blinklabs-io/plutigo/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// Interoperability vector: the exact byte layout consumed by external
// on-chain programs
const (
	canonicalDatumHex       = "d8799fd87b9fa3001a00077d62011b0000018d7b69e768021b0000018d7ba0d5e8ffff"
	canonicalDatumPrice     = int64(490850)
	canonicalDatumCreatedAt = int64(1707172554600)
	canonicalDatumExpiryAt  = int64(1707176154600)

	// Same values with the price map entries reordered (1, 0, 2)
	reorderedDatumHex = "d8799fd87b9fa3011b0000018d7b69e768001a00077d62021b0000018d7ba0d5e8ffff"

	// Canonical datum with an indefinite-length price map
	indefiniteMapDatumHex = "d8799fd87b9fbf001a00077d62011b0000018d7b69e768021b0000018d7ba0d5e8ffffff"

	// Blake2b-256 of the canonical datum bytes
	canonicalDatumHashHex    = "6826c1e788a70a23bd764bff1cf5d33ae6ae5e89b726cab7423891d1c4fff249"
	canonicalDatumHashBech32 = "datum1dqnvreug5u9z80tkf0l3eawn8tn2uh5fkunv4d6z8zgar38l7fysm2lqx8"
)

func TestNewOracleDatumEncode(t *testing.T) {
	defer goleak.VerifyNone(t)
	datum := oracledatum.NewOracleDatum(
		canonicalDatumPrice,
		canonicalDatumCreatedAt,
		canonicalDatumExpiryAt,
	)
	cborData, err := cbor.Encode(&datum)
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumHex, hex.EncodeToString(cborData))
}

func TestOracleDatumDecode(t *testing.T) {
	var datum oracledatum.OracleDatum
	_, err := cbor.Decode(test.DecodeHexString(canonicalDatumHex), &datum)
	require.NoError(t, err)

	price, err := datum.Price()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumPrice, price)

	createdAt, err := datum.CreatedAt()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumCreatedAt, createdAt)

	expiryAt, err := datum.ExpiryAt()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumExpiryAt, expiryAt)
}

func TestOracleDatumRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)
	origDatum := oracledatum.NewOracleDatum(
		canonicalDatumPrice,
		canonicalDatumCreatedAt,
		canonicalDatumExpiryAt,
	)
	cborData, err := cbor.Encode(&origDatum)
	require.NoError(t, err)

	var newDatum oracledatum.OracleDatum
	_, err = cbor.Decode(cborData, &newDatum)
	require.NoError(t, err)

	// Accessor equivalence with the original inputs
	price, err := newDatum.Price()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumPrice, price)
	createdAt, err := newDatum.CreatedAt()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumCreatedAt, createdAt)
	expiryAt, err := newDatum.ExpiryAt()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumExpiryAt, expiryAt)

	// Re-encode must reproduce the same bytes
	reEncoded, err := cbor.Encode(&newDatum)
	require.NoError(t, err)
	assert.Equal(t, cborData, reEncoded)
}

func TestOracleDatumScenario(t *testing.T) {
	datum := oracledatum.NewOracleDatum(2723, 1720056807332, 1720078407332)

	price, err := datum.Price()
	require.NoError(t, err)
	assert.Equal(t, int64(2723), price)
	createdAt, err := datum.CreatedAt()
	require.NoError(t, err)
	assert.Equal(t, int64(1720056807332), createdAt)
	expiryAt, err := datum.ExpiryAt()
	require.NoError(t, err)
	assert.Equal(t, int64(1720078407332), expiryAt)

	valid, err := datum.IsValid(1720056807332)
	require.NoError(t, err)
	assert.True(t, valid)
	valid, err = datum.IsValid(1720078407333)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestIsValidBoundaryInclusive(t *testing.T) {
	expiryAt := int64(1707176154600)
	datum := oracledatum.NewOracleDatum(490850, 1707172554600, expiryAt)

	valid, err := datum.IsValid(expiryAt)
	require.NoError(t, err)
	assert.True(t, valid, "datum should be valid at exactly the expiry time")

	valid, err = datum.IsValid(expiryAt + 1)
	require.NoError(t, err)
	assert.False(t, valid, "datum should be invalid past the expiry time")
}

func TestIsValidUndetermined(t *testing.T) {
	// A validity check against a marker variant must fail rather than
	// report the datum invalid
	datum := oracledatum.OracleDatum{
		PriceData: oracledatum.SharedData{},
	}
	_, err := datum.IsValid(1707176154600)
	require.Error(t, err)
	var variantErr oracledatum.InvalidVariantError
	assert.ErrorAs(t, err, &variantErr)
}

func TestOracleDatumReorderedMapEncoding(t *testing.T) {
	// First-match lookup is order independent, but the encoded bytes are not
	var datum oracledatum.OracleDatum
	_, err := cbor.Decode(test.DecodeHexString(reorderedDatumHex), &datum)
	require.NoError(t, err)

	price, err := datum.Price()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumPrice, price)
	createdAt, err := datum.CreatedAt()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumCreatedAt, createdAt)

	reEncoded, err := cbor.Encode(&datum)
	require.NoError(t, err)
	assert.Equal(t, reorderedDatumHex, hex.EncodeToString(reEncoded))
	assert.NotEqual(t, canonicalDatumHex, hex.EncodeToString(reEncoded))
}

func TestOracleDatumDecodeIndefiniteMap(t *testing.T) {
	cborData := test.DecodeHexString(indefiniteMapDatumHex)
	var datum oracledatum.OracleDatum
	_, err := cbor.Decode(cborData, &datum)
	require.NoError(t, err)

	price, err := datum.Price()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumPrice, price)

	// Original bytes are preserved even for non-canonical input
	reEncoded, err := cbor.Encode(&datum)
	require.NoError(t, err)
	assert.Equal(t, cborData, reEncoded)
}

func TestOracleDatumNegativePrice(t *testing.T) {
	// No range validation at this layer
	datum := oracledatum.NewOracleDatum(-42, 10, 20)
	cborData, err := cbor.Encode(&datum)
	require.NoError(t, err)
	assert.Equal(
		t,
		"d8799fd87b9fa3003829010a0214ffff",
		hex.EncodeToString(cborData),
	)

	var newDatum oracledatum.OracleDatum
	_, err = cbor.Decode(cborData, &newDatum)
	require.NoError(t, err)
	price, err := newDatum.Price()
	require.NoError(t, err)
	assert.Equal(t, int64(-42), price)
}

func TestOracleDatumHash(t *testing.T) {
	var datum oracledatum.OracleDatum
	_, err := cbor.Decode(test.DecodeHexString(canonicalDatumHex), &datum)
	require.NoError(t, err)

	hash, err := datum.Hash()
	require.NoError(t, err)
	assert.Equal(
		t,
		oracledatum.NewDatumHash(test.DecodeHexString(canonicalDatumHashHex)),
		hash,
	)
	assert.Equal(t, canonicalDatumHashHex, hash.String())
	assert.Equal(t, canonicalDatumHashBech32, hash.Bech32())

	// A freshly constructed datum hashes to the same value
	newDatum := oracledatum.NewOracleDatum(
		canonicalDatumPrice,
		canonicalDatumCreatedAt,
		canonicalDatumExpiryAt,
	)
	newHash, err := newDatum.Hash()
	require.NoError(t, err)
	assert.Equal(t, hash, newHash)
}

func TestOracleDatumToPlutusData(t *testing.T) {
	defer goleak.VerifyNone(t)
	datum := oracledatum.NewOracleDatum(
		canonicalDatumPrice,
		canonicalDatumCreatedAt,
		canonicalDatumExpiryAt,
	)
	pd := datum.ToPlutusData()
	tmpConstr, ok := pd.(*data.Constr)
	require.True(t, ok)
	assert.Equal(t, uint(0), tmpConstr.Tag)
	require.Len(t, tmpConstr.Fields, 1)

	// The Plutus data encoder must agree with our own codec byte for byte
	pdCbor, err := data.Encode(pd)
	require.NoError(t, err)
	ownCbor, err := cbor.Encode(&datum)
	require.NoError(t, err)
	assert.Equal(t, ownCbor, pdCbor)
	assert.Equal(t, canonicalDatumHex, hex.EncodeToString(pdCbor))
}

func TestOracleDatumFromPlutusData(t *testing.T) {
	pd, err := data.Decode(test.DecodeHexString(canonicalDatumHex))
	require.NoError(t, err)

	datum, err := oracledatum.OracleDatumFromPlutusData(pd)
	require.NoError(t, err)

	price, err := datum.Price()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumPrice, price)
	createdAt, err := datum.CreatedAt()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumCreatedAt, createdAt)
	expiryAt, err := datum.ExpiryAt()
	require.NoError(t, err)
	assert.Equal(t, canonicalDatumExpiryAt, expiryAt)
}

func TestOracleDatumFromPlutusDataWrongShape(t *testing.T) {
	// Not a constructor at all
	_, err := oracledatum.OracleDatumFromPlutusData(
		data.NewInteger(big.NewInt(42)),
	)
	assert.Error(t, err)

	// Wrong constructor number
	_, err = oracledatum.OracleDatumFromPlutusData(data.NewConstr(1))
	assert.Error(t, err)
}

func TestOracleDatumMarshalWithoutPriceData(t *testing.T) {
	var datum oracledatum.OracleDatum
	_, err := cbor.Encode(&datum)
	assert.Error(t, err)
}
