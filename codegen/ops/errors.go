// Copyright 2025 Google LLC
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

package ops

import (
	"fmt"
	"reflect"
)

// UnsupportedError is returned when resolving an operator type with no
// registered variant. The caller can act on it by registering a variant for
// the missing type; it is never substituted with a default.
type UnsupportedError struct {
	// OpType is the operator type name that failed to resolve.
	OpType string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("operator type %s is not supported", e.OpType)
}

// ContractError reports a variant breaking the signature contract: one of
// its signature methods returned (or declared) a value that cannot index
// the canonicalization cache. This is a defect in the variant, not a
// condition the caller can recover from.
type ContractError struct {
	// Variant is the concrete type of the offending variant.
	Variant string
	// Method is the signature method breaking the contract.
	Method string
	// Type is the incomparable type returned or declared by Method.
	Type reflect.Type
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s.%s must return a comparable value to serve as a cache key, got %v", e.Variant, e.Method, e.Type)
}

// UnimplementedError reports a call to an emission method the variant did
// not provide. It signals an incomplete variant implementation.
type UnimplementedError struct {
	// Variant is the concrete type of the incomplete variant.
	Variant string
	// Method is the emission method missing from the variant.
	Method string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s does not implement %s", e.Variant, e.Method)
}
