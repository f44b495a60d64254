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

package ops_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gx-org/backend/dtype"

	"github.com/utensor/ucgen/codegen/ops"
	"github.com/utensor/ucgen/graph"
)

// badSigOp returns a slice as its type signature: a slice can never index
// the canonicalization cache.
type badSigOp struct {
	testOp
}

func (v badSigOp) TypeSignature(op *graph.OpInfo) (any, error) {
	return []string{"not", "hashable"}, nil
}

// declaredBadOp declares upfront that its constructor signature is a
// slice.
type declaredBadOp struct {
	testOp
}

func (v declaredBadOp) ConstructorSignature(op *graph.OpInfo) (any, error) {
	return []int{1, 2}, nil
}

func (v declaredBadOp) SignatureTypes() (typeSig, ctorSig reflect.Type) {
	return nil, reflect.TypeOf([]int{})
}

// partialDeclaredOp declares only its constructor signature type. Its type
// signature has no declared type and must stay on the per-call check, even
// though the constructor side was verified at registration.
type partialDeclaredOp struct {
	testOp
}

func (v partialDeclaredOp) TypeSignature(op *graph.OpInfo) (any, error) {
	return []string{"not", "hashable"}, nil
}

func (v partialDeclaredOp) ConstructorSignature(op *graph.OpInfo) (any, error) {
	return [2]int{1, 2}, nil
}

func (v partialDeclaredOp) SignatureTypes() (typeSig, ctorSig reflect.Type) {
	return nil, reflect.TypeOf([2]int{})
}

// declaredGoodOp declares a comparable constructor signature type,
// opting out of the per-call check.
type declaredGoodOp struct {
	testOp
}

func (v declaredGoodOp) ConstructorSignature(op *graph.OpInfo) (any, error) {
	return [2]int{1, 2}, nil
}

func (v declaredGoodOp) SignatureTypes() (typeSig, ctorSig reflect.Type) {
	return nil, reflect.TypeOf([2]int{})
}

func TestContractViolationAtFirstCall(t *testing.T) {
	r := ops.NewRegistry()
	r.Register(badSigOp{testOp{opType: "Bad"}})

	_, err := r.Resolve(node("bad", "Bad", tensors("x", dtype.Float32), tensors("y", dtype.Float32)))
	if err == nil {
		t.Fatal("resolving a variant with an unhashable signature succeeded but must fail")
	}
	violation := &ops.ContractError{}
	if !errors.As(err, &violation) {
		t.Fatalf("got error %v but want a ContractError", err)
	}
	if violation.Method != "TypeSignature" {
		t.Errorf("violation reports method %q but want TypeSignature", violation.Method)
	}
	if !strings.Contains(err.Error(), "badSigOp") {
		t.Errorf("error %q does not name the offending variant", err)
	}
}

func TestUndeclaredMethodKeepsRuntimeCheck(t *testing.T) {
	r := ops.NewRegistry()
	r.Register(partialDeclaredOp{testOp{opType: "Partial"}})

	_, err := r.Resolve(node("p", "Partial", tensors("x", dtype.Float32), tensors("y", dtype.Float32)))
	if err == nil {
		t.Fatal("resolving a variant with an unhashable type signature succeeded but must fail")
	}
	violation := &ops.ContractError{}
	if !errors.As(err, &violation) {
		t.Fatalf("got error %v but want a ContractError", err)
	}
	if violation.Method != "TypeSignature" {
		t.Errorf("violation reports method %q but want TypeSignature", violation.Method)
	}
}

func TestContractViolationAtRegistration(t *testing.T) {
	r := ops.NewRegistry()
	err := r.AddVariant(declaredBadOp{testOp{opType: "Bad"}})
	if err == nil {
		t.Fatal("registering a variant declaring an unhashable signature type succeeded but must fail")
	}
	violation := &ops.ContractError{}
	if !errors.As(err, &violation) {
		t.Fatalf("got error %v but want a ContractError", err)
	}
	if violation.Method != "ConstructorSignature" {
		t.Errorf("violation reports method %q but want ConstructorSignature", violation.Method)
	}
	if r.IsSupported("Bad") {
		t.Errorf("a rejected variant must not be registered")
	}
}

func TestRegisterPanicsOnContractViolation(t *testing.T) {
	r := ops.NewRegistry()
	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatal("registering a variant declaring an unhashable signature type must panic")
		}
		if _, ok := recovered.(error); !ok {
			t.Fatalf("got panic value %v but want an error", recovered)
		}
	}()
	r.Register(declaredBadOp{testOp{opType: "Bad"}})
}

func TestDeclaredSignatureSkipsRuntimeCheck(t *testing.T) {
	r := ops.NewRegistry()
	r.Register(declaredGoodOp{testOp{opType: "Good"}})

	g1, err := r.Resolve(node("g1", "Good", tensors("x", dtype.Float32), tensors("y", dtype.Float32)))
	if err != nil {
		t.Fatal(err)
	}
	g2, err := r.Resolve(node("g2", "Good", tensors("u", dtype.Float32), tensors("v", dtype.Float32)))
	if err != nil {
		t.Fatal(err)
	}
	if g1 != g2 {
		t.Errorf("got two instances for equal declared signatures but want one")
	}
	if got := g1.ConstructParams(); got != any([2]int{1, 2}) {
		t.Errorf("got construct params %v but want [2]int{1, 2}", got)
	}
}
