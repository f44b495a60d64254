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

// SignatureTypes is implemented by variants that declare the concrete types
// returned by their signature methods. Declared types are checked for
// comparability once, when the variant is registered, and the per-call
// check on signature values is skipped.
//
// A nil type leaves the corresponding method on the checked-per-call path.
type SignatureTypes interface {
	// SignatureTypes returns the types produced by TypeSignature and
	// ConstructorSignature.
	SignatureTypes() (typeSig, ctorSig reflect.Type)
}

// declaredSignatures records, per signature method, whether the variant
// declared a return type that was verified at registration. A method with
// no declared type stays on the checked-per-call path.
type declaredSignatures struct {
	typeSig bool
	ctorSig bool
}

// checkDeclaredSignatures validates the signature types a variant declares.
// Registration must fail on a non-nil error.
func checkDeclaredSignatures(v Variant) (declaredSignatures, error) {
	st, ok := v.(SignatureTypes)
	if !ok {
		return declaredSignatures{}, nil
	}
	typeSig, ctorSig := st.SignatureTypes()
	if err := checkSignatureType(v, "TypeSignature", typeSig); err != nil {
		return declaredSignatures{}, err
	}
	if err := checkSignatureType(v, "ConstructorSignature", ctorSig); err != nil {
		return declaredSignatures{}, err
	}
	return declaredSignatures{
		typeSig: typeSig != nil,
		ctorSig: ctorSig != nil,
	}, nil
}

func checkSignatureType(v Variant, method string, t reflect.Type) error {
	if t == nil {
		return nil
	}
	if !t.Comparable() {
		return &ContractError{
			Variant: fmt.Sprintf("%T", v),
			Method:  method,
			Type:    t,
		}
	}
	return nil
}

// ensureComparable validates a signature value returned at run time by a
// variant that did not declare its signature types. The canonicalization
// cache indexes instances by signature: an incomparable value would either
// panic on insertion or defeat deduplication, so it is rejected here before
// it can reach the cache.
func ensureComparable(v Variant, method string, sig any) error {
	if sig == nil {
		return nil
	}
	t := reflect.TypeOf(sig)
	if !t.Comparable() {
		return &ContractError{
			Variant: fmt.Sprintf("%T", v),
			Method:  method,
			Type:    t,
		}
	}
	return nil
}
