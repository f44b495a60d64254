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

// Package graph describes operator nodes of a computation graph as seen by
// the code generator. The types in this package are descriptors: they carry
// the name, tensor types, and construction attributes of a node but none of
// its runtime data.
package graph

import (
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
)

// Placeholder is the reserved operator type name marking a graph input.
// Inputs are structural nodes: they have no registered variant and emit no
// code, but are always reported as supported.
const Placeholder = "Placeholder"

// TensorInfo describes one tensor flowing between operator nodes.
type TensorInfo struct {
	// Name of the tensor, unique within its graph.
	Name string
	// Shape of the tensor. The shape also carries the data type.
	Shape *shape.Shape
}

// DType returns the data type of the tensor.
func (t *TensorInfo) DType() dtype.DataType {
	return t.Shape.DType
}

// OpInfo describes one operator node of a computation graph. An OpInfo is
// read-only once handed to the code generator: the dispatch layer keeps
// references to it and assumes it never changes.
type OpInfo struct {
	// Name of the node, unique within its graph.
	Name string
	// OpType is the operator type name used to resolve a variant.
	OpType string
	// Inputs are the input tensors of the node, in call order.
	Inputs []*TensorInfo
	// Outputs are the output tensors of the node, in call order.
	Outputs []*TensorInfo
	// Attributes are extra construction parameters attached to the node
	// by the frontend (for example pooling window sizes or padding).
	Attributes map[string]any
}

// InDTypes returns the data types of the input tensors, in order.
func (op *OpInfo) InDTypes() []dtype.DataType {
	return tensorDTypes(op.Inputs)
}

// OutDTypes returns the data types of the output tensors, in order.
func (op *OpInfo) OutDTypes() []dtype.DataType {
	return tensorDTypes(op.Outputs)
}

// Attribute returns the construction attribute stored under name.
func (op *OpInfo) Attribute(name string) (any, bool) {
	v, ok := op.Attributes[name]
	return v, ok
}

func tensorDTypes(tensors []*TensorInfo) []dtype.DataType {
	dtypes := make([]dtype.DataType, len(tensors))
	for i, tensor := range tensors {
		dtypes[i] = tensor.DType()
	}
	return dtypes
}
