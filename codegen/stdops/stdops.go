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

// Package stdops provides the standard uTensor operator variants.
package stdops

import (
	"github.com/gx-org/backend/dtype"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/utensor/ucgen/codegen/ops"
	"github.com/utensor/ucgen/codegen/snippets"
	"github.com/utensor/ucgen/graph"
)

// SimpleOp implements a variant with no construction parameters and fixed
// evaluation ports. Most uTensor operators fit this shape.
type SimpleOp struct {
	ops.Base
	// Type is the operator type name the variant registers under.
	Type string
	// Class is the C++ operator class of the uTensor runtime.
	Class string
	// Inputs and Outputs are the port names of the C++ class, in the
	// order the graph node lists its tensors.
	Inputs  []string
	Outputs []string
	// TemplDTypes picks the template dtype parameters of the C++ class
	// for an instance. nil defaults to the dtype of the first input.
	TemplDTypes func(op *ops.Operator) ([]dtype.DataType, error)
}

// OpType returns the operator type name handled by the variant.
func (v SimpleOp) OpType() string {
	return v.Type
}

func (v SimpleOp) templDTypes(op *ops.Operator) ([]dtype.DataType, error) {
	if v.TemplDTypes != nil {
		return v.TemplDTypes(op)
	}
	return inDTypes(op)
}

// DeclareSnippet emits the declaration of the operator instance.
func (v SimpleOp) DeclareSnippet(op *ops.Operator, opVar string, tensorVars map[string]string, opts *ops.EmitOptions) (*snippets.Snippet, error) {
	dtypes, err := v.templDTypes(op)
	if err != nil {
		return nil, err
	}
	return snippets.DeclareOp(v.Class, dtypes, nil, opVar, opts.Namespaces())
}

// EvalSnippet emits the evaluation call of the operator instance on node.
func (v SimpleOp) EvalSnippet(op *ops.Operator, opVar string, node *graph.OpInfo, tensorVars map[string]string, opts *ops.EmitOptions) (*snippets.Snippet, error) {
	dtypes, err := v.templDTypes(op)
	if err != nil {
		return nil, err
	}
	return snippets.EvalOp(&snippets.EvalOpSpec{
		Class:       v.Class,
		TemplDTypes: dtypes,
		Inputs:      v.Inputs,
		Outputs:     v.Outputs,
	}, opVar, node, tensorVars, opts.Namespaces())
}

// inDTypes returns the dtype of the instance's first input tensor, the
// default template parameter of most operator classes.
func inDTypes(op *ops.Operator) ([]dtype.DataType, error) {
	dts := op.InDTypes()
	if len(dts) == 0 {
		return nil, errors.Errorf("node %s: operator %s has no input tensors", op.Info().Name, op.OpType())
	}
	return dts[:1], nil
}

func allVariants() []ops.Variant {
	return []ops.Variant{
		Add, Mul, MatrixMult,
		Min, Max,
		ReLU, ReLU6,
		ArgMax, ArgMin,
		Quantize, Dequantize, QuantizedFullyConnected,
		ReshapeOp{},
		MaxPool, MinPool,
		Conv2dOp{}, DepthwiseSeparableConv,
	}
}

// RegisterAll registers every standard operator variant into r. All
// registration failures are reported together.
func RegisterAll(r *ops.Registry) error {
	var errs error
	for _, v := range allVariants() {
		errs = multierr.Append(errs, r.AddVariant(v))
	}
	return errs
}

// NewRegistry returns a registry with every standard variant registered.
func NewRegistry() *ops.Registry {
	r := ops.NewRegistry()
	if err := RegisterAll(r); err != nil {
		panic(err)
	}
	return r
}

func intsAttr(op *graph.OpInfo, name string) ([]int, error) {
	v, ok := op.Attribute(name)
	if !ok {
		return nil, errors.Errorf("node %s: missing attribute %s", op.Name, name)
	}
	ints, ok := v.([]int)
	if !ok {
		return nil, errors.Errorf("node %s: attribute %s must hold integers, got %T", op.Name, name, v)
	}
	return ints, nil
}

func intPairAttr(op *graph.OpInfo, name string) ([2]int, error) {
	ints, err := intsAttr(op, name)
	if err != nil {
		return [2]int{}, err
	}
	if len(ints) != 2 {
		return [2]int{}, errors.Errorf("node %s: attribute %s must hold two integers, got %d", op.Name, name, len(ints))
	}
	return [2]int{ints[0], ints[1]}, nil
}

func stringAttr(op *graph.OpInfo, name string) (string, error) {
	v, ok := op.Attribute(name)
	if !ok {
		return "", errors.Errorf("node %s: missing attribute %s", op.Name, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Errorf("node %s: attribute %s must hold a string, got %T", op.Name, name, v)
	}
	return s, nil
}
