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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"

	"github.com/utensor/ucgen/codegen/ops"
	"github.com/utensor/ucgen/graph"
)

func TestResolveUnsupported(t *testing.T) {
	r := ops.NewRegistry()
	r.Register(testOp{opType: "Add"})

	_, err := r.Resolve(node("div", "Div", tensors("x", dtype.Float32), tensors("y", dtype.Float32)))
	if err == nil {
		t.Fatal("resolving an unregistered operator type succeeded but must fail")
	}
	unsupported := &ops.UnsupportedError{}
	if !errors.As(err, &unsupported) {
		t.Fatalf("got error %v but want an UnsupportedError", err)
	}
	if unsupported.OpType != "Div" {
		t.Errorf("error reports type %q but want Div", unsupported.OpType)
	}
	if !strings.Contains(err.Error(), "Div") {
		t.Errorf("error %q does not name the unsupported type", err)
	}
}

func TestSupportedTypes(t *testing.T) {
	r := ops.NewRegistry()
	r.Register(testOp{opType: "Mul"})
	r.Register(testOp{opType: "Add"})

	got := r.SupportedTypes()
	want := []string{"Add", "Mul"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("supported types mismatch (-want +got):\n%s", diff)
	}

	for _, test := range []struct {
		opType string
		want   bool
	}{
		{opType: "Add", want: true},
		{opType: "Mul", want: true},
		{opType: "Div", want: false},
		{opType: graph.Placeholder, want: true},
	} {
		if got := r.IsSupported(test.opType); got != test.want {
			t.Errorf("IsSupported(%q) = %v but want %v", test.opType, got, test.want)
		}
	}

	// The snapshot does not see later registrations.
	r.Register(testOp{opType: "Div"})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot changed after registration (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Add", "Div", "Mul"}, r.SupportedTypes()); diff != "" {
		t.Errorf("supported types after registration mismatch (-want +got):\n%s", diff)
	}
}

func TestLastRegistrationWins(t *testing.T) {
	r := ops.NewRegistry()
	first := r.Register(testOp{opType: "Add"})
	second := r.Register(attrOp{testOp{opType: "Add"}})

	add, err := r.Resolve(node("add", "Add",
		tensors("x", dtype.Float32, dtype.Float32),
		tensors("y", dtype.Float32)))
	if err != nil {
		t.Fatal(err)
	}
	if add.Variant() == first {
		t.Errorf("resolution used the first registration but the last must win")
	}
	if add.Variant() != second {
		t.Errorf("resolution did not use the latest registered variant")
	}
}

func TestRegisterReturnsVariant(t *testing.T) {
	r := ops.NewRegistry()
	v := testOp{opType: "Add"}
	if got := r.Register(v); got != ops.Variant(v) {
		t.Errorf("Register returned %v but must return its argument unchanged", got)
	}
}
