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

// poolParams disambiguate pooling instances: two pools over equal dtypes
// but different windows must not share a canonical instance.
type poolParams struct {
	KSize   [2]int
	Strides [2]int
	Padding string
}

func poolParamsOf(op *graph.OpInfo) (poolParams, error) {
	ksize, err := intPairAttr(op, "ksize")
	if err != nil {
		return poolParams{}, err
	}
	strides, err := intPairAttr(op, "strides")
	if err != nil {
		return poolParams{}, err
	}
	padding, err := stringAttr(op, "padding")
	if err != nil {
		return poolParams{}, err
	}
	return poolParams{KSize: ksize, Strides: strides, Padding: padding}, nil
}

func (p poolParams) constructArgs() []string {
	return []string{
		fmt.Sprintf("{%d, %d}", p.KSize[0], p.KSize[1]),
		fmt.Sprintf("{%d, %d}", p.Strides[0], p.Strides[1]),
		p.Padding,
	}
}

// PoolOp emits a windowed pooling operator. The window, strides, and
// padding come from node attributes and are part of the constructor
// signature.
type PoolOp struct {
	ops.Base
	// Type is the operator type name the variant registers under.
	Type string
	// Class is the C++ operator class of the uTensor runtime.
	Class string
}

// MaxPool is the max pooling variant.
var MaxPool = PoolOp{Type: "MaxPool", Class: "MaxPoolOperator"}

// MinPool is the min pooling variant.
var MinPool = PoolOp{Type: "MinPool", Class: "MinPoolOperator"}

// OpType returns the operator type name handled by the variant.
func (v PoolOp) OpType() string {
	return v.Type
}

// ConstructorSignature returns the pooling parameters of the node.
func (v PoolOp) ConstructorSignature(op *graph.OpInfo) (any, error) {
	params, err := poolParamsOf(op)
	if err != nil {
		return nil, err
	}
	return params, nil
}

// SignatureTypes declares the signature types so the registry verifies
// them once at registration.
func (v PoolOp) SignatureTypes() (typeSig, ctorSig reflect.Type) {
	return nil, reflect.TypeOf(poolParams{})
}

// DeclareSnippet emits the declaration of the pooling instance with its
// window, strides, and padding as constructor arguments.
func (v PoolOp) DeclareSnippet(op *ops.Operator, opVar string, tensorVars map[string]string, opts *ops.EmitOptions) (*snippets.Snippet, error) {
	params := op.ConstructParams().(poolParams)
	dtypes, err := inDTypes(op)
	if err != nil {
		return nil, err
	}
	return snippets.DeclareOp(v.Class, dtypes, params.constructArgs(), opVar, opts.Namespaces())
}

// EvalSnippet emits the evaluation call of the pooling instance on node.
func (v PoolOp) EvalSnippet(op *ops.Operator, opVar string, node *graph.OpInfo, tensorVars map[string]string, opts *ops.EmitOptions) (*snippets.Snippet, error) {
	dtypes, err := inDTypes(op)
	if err != nil {
		return nil, err
	}
	return snippets.EvalOp(&snippets.EvalOpSpec{
		Class:       v.Class,
		TemplDTypes: dtypes,
		Inputs:      []string{"in"},
		Outputs:     []string{"out"},
	}, opVar, node, tensorVars, opts.Namespaces())
}
