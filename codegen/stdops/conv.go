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

package stdops

import (
	"fmt"
	"reflect"

	"github.com/utensor/ucgen/codegen/ops"
	"github.com/utensor/ucgen/codegen/snippets"
	"github.com/utensor/ucgen/graph"
)

type convParams struct {
	Strides [2]int
	Padding string
}

func (p convParams) constructArgs() []string {
	return []string{
		fmt.Sprintf("{%d, %d}", p.Strides[0], p.Strides[1]),
		p.Padding,
	}
}

// Conv2dOp emits the two dimensional convolution operator. Strides and
// padding are constructor arguments of the C++ class and therefore part of
// the constructor signature.
type Conv2dOp struct{ ops.Base }

// OpType returns the operator type name handled by the variant.
func (Conv2dOp) OpType() string {
	return "Conv2D"
}

// ConstructorSignature returns the strides and padding of the node.
func (Conv2dOp) ConstructorSignature(op *graph.OpInfo) (any, error) {
	strides, err := intPairAttr(op, "strides")
	if err != nil {
		return nil, err
	}
	padding, err := stringAttr(op, "padding")
	if err != nil {
		return nil, err
	}
	return convParams{Strides: strides, Padding: padding}, nil
}

// SignatureTypes declares the signature types so the registry verifies
// them once at registration.
func (Conv2dOp) SignatureTypes() (typeSig, ctorSig reflect.Type) {
	return nil, reflect.TypeOf(convParams{})
}

// DeclareSnippet emits the declaration of the convolution instance with
// its strides and padding as constructor arguments.
func (Conv2dOp) DeclareSnippet(op *ops.Operator, opVar string, tensorVars map[string]string, opts *ops.EmitOptions) (*snippets.Snippet, error) {
	params := op.ConstructParams().(convParams)
	dtypes, err := inDTypes(op)
	if err != nil {
		return nil, err
	}
	return snippets.DeclareOp("Conv2dOperator", dtypes, params.constructArgs(), opVar, opts.Namespaces())
}

// EvalSnippet emits the evaluation call of the convolution instance on
// node.
func (Conv2dOp) EvalSnippet(op *ops.Operator, opVar string, node *graph.OpInfo, tensorVars map[string]string, opts *ops.EmitOptions) (*snippets.Snippet, error) {
	dtypes, err := inDTypes(op)
	if err != nil {
		return nil, err
	}
	return snippets.EvalOp(&snippets.EvalOpSpec{
		Class:       "Conv2dOperator",
		TemplDTypes: dtypes,
		Inputs:      []string{"in", "filter"},
		Outputs:     []string{"out"},
	}, opVar, node, tensorVars, opts.Namespaces())
}

// DepthwiseSeparableConv is the depthwise separable convolution variant.
// The depthwise and pointwise filters are separate input tensors of the
// node.
var DepthwiseSeparableConv = SimpleOp{
	Type:    "DepthwiseSeparableConv",
	Class:   "DepthwiseSeparableConvOperator",
	Inputs:  []string{"in", "depthwise_filter", "pointwise_filter"},
	Outputs: []string{"out"},
}
