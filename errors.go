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
)

// InvalidVariantError is returned by the field accessors when the price data
// is not the payload-bearing GenericData variant. A validator must treat this
// as outright rejection of the datum.
type InvalidVariantError struct {
	Variant PriceData
}

func (e InvalidVariantError) Error() string {
	return fmt.Sprintf("invalid price data variant: %T", e.Variant)
}

// FieldNotFoundError is returned by the field accessors when the price map
// lacks the requested key. This is a distinct condition from
// InvalidVariantError and the two are never conflated.
type FieldNotFoundError struct {
	Key int64
}

func (e FieldNotFoundError) Error() string {
	return fmt.Sprintf("field not found in price map: key %d", e.Key)
}
