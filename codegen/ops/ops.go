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

// Package ops dispatches operator descriptors to code emitting variants.
//
// A variant implements code emission for one operator type name. Variants
// are registered into a Registry, which resolves descriptors to canonical
// operator instances: two descriptors agreeing on their full signature
// (tensor dtypes plus construction parameters) share one *Operator, so
// downstream generation can deduplicate by pointer identity.
package ops

import (
	"fmt"
	"strings"

	"github.com/gx-org/backend/dtype"
	"github.com/utensor/ucgen/codegen/snippets"
	"github.com/utensor/ucgen/graph"
)

type (
	// Variant implements code emission for one operator type. Variants
	// embed Base and override the methods they support; a variant whose
	// instantiation depends on more than its tensor dtypes also
	// implements TypeSigner or CtorSigner.
	Variant interface {
		// OpType returns the operator type name handled by this variant.
		OpType() string

		// DeclareSnippet emits the declaration of an operator instance.
		// opVar is the emitted variable name chosen for the operator and
		// tensorVars maps graph tensor names to emitted variable names.
		DeclareSnippet(op *Operator, opVar string, tensorVars map[string]string, opts *EmitOptions) (*snippets.Snippet, error)

		// EvalSnippet emits the evaluation call of an operator instance.
		// node is the graph node being evaluated: the canonical instance
		// is shared across nodes, so tensor names always come from node,
		// never from the descriptor cached on op.
		EvalSnippet(op *Operator, opVar string, node *graph.OpInfo, tensorVars map[string]string, opts *EmitOptions) (*snippets.Snippet, error)
	}

	// TypeSigner replaces the default type signature computation of a
	// variant. The returned value is used as a cache key and must be
	// comparable; see SignatureTypes for checking this once at
	// registration instead of on every call.
	TypeSigner interface {
		TypeSignature(op *graph.OpInfo) (any, error)
	}

	// CtorSigner computes the construction parameters a variant
	// disambiguates its instances by. The default is no parameters. The
	// returned value is used as a cache key and must be comparable.
	CtorSigner interface {
		ConstructorSignature(op *graph.OpInfo) (any, error)
	}

	// EmitOptions tunes snippet emission.
	EmitOptions struct {
		// NestedNamespaces are the C++ namespaces qualifying the
		// operator class in emitted code.
		NestedNamespaces []string
	}
)

// Namespaces returns the namespaces qualifying the operator class.
// A nil options value means no namespaces.
func (o *EmitOptions) Namespaces() []string {
	if o == nil {
		return nil
	}
	return o.NestedNamespaces
}

// TypeSignature is the default hashable summary of an instantiation's
// tensor types: the ordered input dtypes and the ordered output dtypes.
type TypeSignature struct {
	// In is the canonical encoding of the input dtypes, in order.
	In string
	// Out is the canonical encoding of the output dtypes, in order.
	Out string
}

// TypeSignatureOf computes the default type signature of a descriptor from
// the dtype of every input and output tensor, in order.
func TypeSignatureOf(op *graph.OpInfo) TypeSignature {
	return TypeSignature{
		In:  dtypesKey(op.InDTypes()),
		Out: dtypesKey(op.OutDTypes()),
	}
}

func dtypesKey(dtypes []dtype.DataType) string {
	keys := make([]string, len(dtypes))
	for i, dt := range dtypes {
		keys[i] = dt.String()
	}
	return strings.Join(keys, ",")
}

// fullSignature is the canonicalization key of one instantiation. Both
// fields hold comparable values: the signature contract rejects anything
// else before it reaches a cache.
type fullSignature struct {
	typeSig any
	ctorSig any
}

// Operator is the canonical instance of a variant for one full signature.
// Within one registry, resolving two descriptors with equal signatures
// returns the same pointer, so identity can stand in for semantic equality.
// Operators are immutable once cached.
type Operator struct {
	variant   Variant
	info      *graph.OpInfo
	inDTypes  []dtype.DataType
	outDTypes []dtype.DataType
	ctorSig   any
}

// Variant that emits code for this instance.
func (op *Operator) Variant() Variant {
	return op.variant
}

// OpType returns the operator type name of the instance.
func (op *Operator) OpType() string {
	return op.variant.OpType()
}

// Info returns the descriptor the instance was first built from. Other
// descriptors sharing the instance differ from it only in signature-neutral
// details such as tensor names.
func (op *Operator) Info() *graph.OpInfo {
	return op.info
}

// InDTypes returns the input dtypes of the instance, in order.
// Callers must not mutate the returned slice.
func (op *Operator) InDTypes() []dtype.DataType {
	return op.inDTypes
}

// OutDTypes returns the output dtypes of the instance, in order.
// Callers must not mutate the returned slice.
func (op *Operator) OutDTypes() []dtype.DataType {
	return op.outDTypes
}

// ConstructParams returns the construction parameters the instance was
// canonicalized under, or nil for variants with no parameters.
func (op *Operator) ConstructParams() any {
	return op.ctorSig
}

// Declare emits the declaration snippet of this instance.
func (op *Operator) Declare(opVar string, tensorVars map[string]string, opts *EmitOptions) (*snippets.Snippet, error) {
	return op.variant.DeclareSnippet(op, opVar, tensorVars, opts)
}

// Evaluate emits the evaluation snippet of this instance for the given
// graph node.
func (op *Operator) Evaluate(opVar string, node *graph.OpInfo, tensorVars map[string]string, opts *EmitOptions) (*snippets.Snippet, error) {
	return op.variant.EvalSnippet(op, opVar, node, tensorVars, opts)
}

// Base provides the default emission behavior for variants to embed: both
// emission methods fail until the variant overrides them. Calling them on a
// variant that overrode neither reveals an incomplete implementation.
type Base struct{}

// DeclareSnippet fails with an UnimplementedError naming the variant.
func (Base) DeclareSnippet(op *Operator, opVar string, tensorVars map[string]string, opts *EmitOptions) (*snippets.Snippet, error) {
	return nil, unimplemented(op, "DeclareSnippet")
}

// EvalSnippet fails with an UnimplementedError naming the variant.
func (Base) EvalSnippet(op *Operator, opVar string, node *graph.OpInfo, tensorVars map[string]string, opts *EmitOptions) (*snippets.Snippet, error) {
	return nil, unimplemented(op, "EvalSnippet")
}

func unimplemented(op *Operator, method string) error {
	name := "ops.Base"
	if op != nil && op.variant != nil {
		name = fmt.Sprintf("%T", op.variant)
	}
	return &UnimplementedError{Variant: name, Method: method}
}
