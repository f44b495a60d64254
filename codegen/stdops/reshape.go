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
	"strings"

	"github.com/utensor/ucgen/codegen/ops"
	"github.com/utensor/ucgen/codegen/snippets"
	"github.com/utensor/ucgen/graph"
)

// ReshapeOp emits the reshape operator. The target shape is a constructor
// argument of the C++ class, so instances with different target shapes
// must not be shared: the shape is part of the constructor signature.
type ReshapeOp struct{ ops.Base }

// OpType returns the operator type name handled by the variant.
func (ReshapeOp) OpType() string {
	return "Reshape"
}

// ConstructorSignature returns the target shape of the node, encoded as a
// comparable string.
func (ReshapeOp) ConstructorSignature(op *graph.OpInfo) (any, error) {
	shape, err := intsAttr(op, "new_shape")
	if err != nil {
		return nil, err
	}
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprint(d)
	}
	return strings.Join(dims, ","), nil
}

// DeclareSnippet emits the declaration of the reshape instance with its
// target shape as the constructor argument.
func (ReshapeOp) DeclareSnippet(op *ops.Operator, opVar string, tensorVars map[string]string, opts *ops.EmitOptions) (*snippets.Snippet, error) {
	shape := op.ConstructParams().(string)
	arg := fmt.Sprintf("{%s}", strings.ReplaceAll(shape, ",", ", "))
	dtypes, err := inDTypes(op)
	if err != nil {
		return nil, err
	}
	return snippets.DeclareOp("ReshapeOperator", dtypes, []string{arg}, opVar, opts.Namespaces())
}

// EvalSnippet emits the evaluation call of the reshape instance on node.
func (ReshapeOp) EvalSnippet(op *ops.Operator, opVar string, node *graph.OpInfo, tensorVars map[string]string, opts *ops.EmitOptions) (*snippets.Snippet, error) {
	dtypes, err := inDTypes(op)
	if err != nil {
		return nil, err
	}
	return snippets.EvalOp(&snippets.EvalOpSpec{
		Class:       "ReshapeOperator",
		TemplDTypes: dtypes,
		Inputs:      []string{"input"},
		Outputs:     []string{"output"},
	}, opVar, node, tensorVars, opts.Namespaces())
}
