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
	"sort"
	"sync"

	"golang.org/x/exp/maps"
	"k8s.io/klog/v2"

	"github.com/utensor/ucgen/graph"
)

// entry is the registry slot of one variant. Each entry owns its private
// canonicalization cache: two variants computing equal signatures can never
// collide.
type entry struct {
	variant Variant
	// declared records which signature methods had their return types
	// verified at registration, making the per-call comparability check
	// redundant for those methods only.
	declared declaredSignatures
	cache    map[fullSignature]*Operator
}

// Registry maps operator type names to registered variants and
// canonicalizes operator instances. A Registry value is self-contained:
// tests and independent generation sessions each build their own.
//
// The expected usage is phase-separated: registration at startup, then
// resolution during a generation run. Both phases are nevertheless guarded
// by a mutex, so concurrent resolutions with equal signatures still
// converge to one instance.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds a variant under its operator type name and returns the
// variant unchanged so registrations can be chained at initialization
// time. Registering a second variant for the same name silently replaces
// the first: last registration wins, along with a fresh cache.
//
// Register panics if the variant declares an incomparable signature type
// (see SignatureTypes). Such a variant can never canonicalize correctly,
// and the defect belongs to its implementer, not to the caller resolving
// descriptors.
func (r *Registry) Register(v Variant) Variant {
	if err := r.AddVariant(v); err != nil {
		panic(err)
	}
	return v
}

// AddVariant registers v like Register but returns a ContractError instead
// of panicking when the variant declares an incomparable signature type.
// Callers registering variants they do not control, or aggregating
// registration failures, use this form.
func (r *Registry) AddVariant(v Variant) error {
	declared, err := checkDeclaredSignatures(v)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	opType := v.OpType()
	if _, replaced := r.entries[opType]; replaced {
		klog.Warningf("operator type %q registered twice: keeping the latest variant %T", opType, v)
	}
	r.entries[opType] = &entry{
		variant:  v,
		declared: declared,
		cache:    make(map[fullSignature]*Operator),
	}
	return nil
}

// Resolve looks up the variant registered for the descriptor's operator
// type and returns the canonical instance for the descriptor's signature,
// building and caching a fresh instance on first encounter.
func (r *Registry) Resolve(op *graph.OpInfo) (*Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[op.OpType]
	if !ok {
		return nil, &UnsupportedError{OpType: op.OpType}
	}
	return e.instantiate(op)
}

// IsSupported reports whether a variant is registered for the operator
// type name. The reserved graph.Placeholder name is always supported:
// placeholders are structural and emit no code.
func (r *Registry) IsSupported(opType string) bool {
	if opType == graph.Placeholder {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[opType]
	return ok
}

// SupportedTypes returns a sorted snapshot of all registered operator type
// names. Later registrations do not show through the returned slice.
func (r *Registry) SupportedTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := maps.Keys(r.entries)
	sort.Strings(types)
	return types
}

// instantiate resolves the canonicalization cache for op. Lookup and
// insertion happen under the registry mutex held by the caller.
func (e *entry) instantiate(op *graph.OpInfo) (*Operator, error) {
	typeSig, err := e.typeSignature(op)
	if err != nil {
		return nil, err
	}
	ctorSig, err := e.ctorSignature(op)
	if err != nil {
		return nil, err
	}
	sig := fullSignature{typeSig: typeSig, ctorSig: ctorSig}
	if inst, ok := e.cache[sig]; ok {
		klog.V(2).Infof("reusing canonical %s instance for node %s", op.OpType, op.Name)
		return inst, nil
	}
	inst := &Operator{
		variant:   e.variant,
		info:      op,
		inDTypes:  op.InDTypes(),
		outDTypes: op.OutDTypes(),
		ctorSig:   ctorSig,
	}
	e.cache[sig] = inst
	return inst, nil
}

func (e *entry) typeSignature(op *graph.OpInfo) (any, error) {
	signer, ok := e.variant.(TypeSigner)
	if !ok {
		return TypeSignatureOf(op), nil
	}
	sig, err := signer.TypeSignature(op)
	if err != nil {
		return nil, err
	}
	if !e.declared.typeSig {
		if err := ensureComparable(e.variant, "TypeSignature", sig); err != nil {
			return nil, err
		}
	}
	return sig, nil
}

func (e *entry) ctorSignature(op *graph.OpInfo) (any, error) {
	signer, ok := e.variant.(CtorSigner)
	if !ok {
		return nil, nil
	}
	sig, err := signer.ConstructorSignature(op)
	if err != nil {
		return nil, err
	}
	if !e.declared.ctorSig {
		if err := ensureComparable(e.variant, "ConstructorSignature", sig); err != nil {
			return nil, err
		}
	}
	return sig, nil
}
