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

package graph_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"

	"github.com/utensor/ucgen/graph"
)

func TestOpInfoDTypes(t *testing.T) {
	op := &graph.OpInfo{
		Name:   "matmul0",
		OpType: "MatrixMult",
		Inputs: []*graph.TensorInfo{
			{Name: "a", Shape: &shape.Shape{DType: dtype.Float32, AxisLengths: []int{2, 3}}},
			{Name: "b", Shape: &shape.Shape{DType: dtype.Float32, AxisLengths: []int{3, 4}}},
		},
		Outputs: []*graph.TensorInfo{
			{Name: "c", Shape: &shape.Shape{DType: dtype.Float64, AxisLengths: []int{2, 4}}},
		},
	}
	if diff := cmp.Diff([]dtype.DataType{dtype.Float32, dtype.Float32}, op.InDTypes()); diff != "" {
		t.Errorf("input dtypes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]dtype.DataType{dtype.Float64}, op.OutDTypes()); diff != "" {
		t.Errorf("output dtypes mismatch (-want +got):\n%s", diff)
	}
}

func TestOpInfoAttribute(t *testing.T) {
	op := &graph.OpInfo{
		Name:       "pool0",
		OpType:     "MaxPool",
		Attributes: map[string]any{"padding": "SAME"},
	}
	padding, ok := op.Attribute("padding")
	if !ok || padding != "SAME" {
		t.Errorf("Attribute(padding) = %v, %v but want SAME, true", padding, ok)
	}
	if _, ok := op.Attribute("strides"); ok {
		t.Errorf("Attribute(strides) reported present on a node without it")
	}
}
