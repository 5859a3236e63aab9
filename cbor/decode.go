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

package cbor

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
	"github.com/jinzhu/copier"
)

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
// Uses sync.Once for thread-safe lazy initialization.
// Returns the cached error if initialization failed.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			ExtraReturnErrors: _cbor.ExtraDecErrorUnknownField,
			// This defaults to 32, but datums embedded in scripts have been
			// seen in the wild with deeper nesting
			MaxNestedLevels: 256,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	if decMode == nil {
		return 0, errors.New("CBOR decoder mode not initialized")
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

var (
	decodeGenericTypeCache      = map[reflect.Type]reflect.Type{}
	decodeGenericTypeCacheMutex sync.RWMutex
)

// DecodeGeneric decodes the specified CBOR into the destination object without using the
// destination object's UnmarshalCBOR() function
func DecodeGeneric(cborData []byte, dest any) error {
	// Get destination type
	valueDest := reflect.ValueOf(dest)
	typeDest := valueDest.Elem().Type()
	// Check type cache
	decodeGenericTypeCacheMutex.RLock()
	tmpTypeDest, ok := decodeGenericTypeCache[typeDest]
	decodeGenericTypeCacheMutex.RUnlock()
	if !ok {
		// Create a duplicate(-ish) struct from the destination
		// We do this so that we can bypass any custom UnmarshalCBOR() function on the
		// destination object
		if valueDest.Kind() != reflect.Pointer ||
			valueDest.Elem().Kind() != reflect.Struct {
			return errors.New("destination must be a pointer to a struct")
		}
		destTypeFields := []reflect.StructField{}
		for i := range typeDest.NumField() {
			tmpField := typeDest.Field(i)
			if tmpField.IsExported() && tmpField.Name != "DecodeStoreCbor" {
				destTypeFields = append(destTypeFields, tmpField)
			}
		}
		tmpTypeDest = reflect.StructOf(destTypeFields)
		// Populate cache
		decodeGenericTypeCacheMutex.Lock()
		decodeGenericTypeCache[typeDest] = tmpTypeDest
		decodeGenericTypeCacheMutex.Unlock()
	}
	// Create temporary object with the type created above
	tmpDest := reflect.New(tmpTypeDest)
	// Decode CBOR into temporary object
	if _, err := Decode(cborData, tmpDest.Interface()); err != nil {
		return err
	}
	// Copy values from temporary object into destination object
	if err := copier.Copy(dest, tmpDest.Interface()); err != nil {
		return err
	}
	return nil
}

// MapInfo extracts map item count and header size from CBOR map data.
// Returns (count, headerSize, isIndefinite). Count is -1 for invalid headers.
func MapInfo(data []byte) (int, uint32, bool) {
	if len(data) == 0 {
		return -1, 0, false
	}
	firstByte := data[0]

	// Check it's a map (major type 5)
	if firstByte&CborTypeMask != CborTypeMap {
		return -1, 0, false
	}

	additional := firstByte & 0x1f
	switch {
	case additional <= 23:
		return int(additional), 1, false
	case additional == 24 && len(data) >= 2:
		return int(data[1]), 2, false
	case additional == 25 && len(data) >= 3:
		return int(uint16(data[1])<<8 | uint16(data[2])), 3, false
	case additional == 26 && len(data) >= 5:
		// 4-byte length - check for overflow before converting to int
		len32 := uint32(data[1])<<24 | uint32(data[2])<<16 | uint32(data[3])<<8 | uint32(data[4])
		if len32 > uint32(math.MaxInt32) {
			return -1, 0, false // Too large to handle
		}
		return int(len32), 5, false
	case additional == 27 && len(data) >= 9:
		// 8-byte length (unlikely for typical data but handle for completeness)
		len64 := uint64(data[1])<<56 | uint64(data[2])<<48 |
			uint64(data[3])<<40 | uint64(data[4])<<32 |
			uint64(data[5])<<24 | uint64(data[6])<<16 |
			uint64(data[7])<<8 | uint64(data[8])
		if len64 > uint64(math.MaxInt32) {
			return -1, 0, false // Too large to handle
		}
		return int(len64), 9, false
	case additional == 31:
		return 0, 1, true // Indefinite length
	default:
		return -1, 0, false
	}
}
