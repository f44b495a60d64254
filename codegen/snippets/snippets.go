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

// Package snippets renders fragments of uTensor C++ source from templates.
//
// A snippet pairs a template with the data to render it and the header
// files the rendered fragment depends on. Snippets compose into larger
// fragments with Composite, which deduplicates headers across its parts.
package snippets

import (
	"embed"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/gx-org/backend/dtype"
	"github.com/utensor/ucgen/base/ordered"
	"github.com/utensor/ucgen/graph"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("snippets").ParseFS(templateFS, "templates/*.tmpl"))

// UTensorHeader is the include directive required by every operator and
// tensor declaration.
const UTensorHeader = `"uTensor.h"`

// Snippet is one renderable fragment of generated source, together with
// the header files the fragment depends on.
type Snippet struct {
	template string
	data     any
	headers  []string
}

func newSnippet(template string, data any) *Snippet {
	return &Snippet{
		template: template,
		data:     data,
		headers:  []string{UTensorHeader},
	}
}

// Render executes the snippet's template and returns the source fragment.
func (s *Snippet) Render() (string, error) {
	buf := strings.Builder{}
	if err := templates.ExecuteTemplate(&buf, s.template, s.data); err != nil {
		return "", errors.Errorf("cannot render snippet %s: %v", s.template, err)
	}
	return buf.String(), nil
}

// Headers returns the include directives required by the snippet.
func (s *Snippet) Headers() []string {
	return s.headers
}

type declareOpData struct {
	OpClass         string
	OpVar           string
	ConstructParams []string
}

// DeclareOp returns the snippet declaring one operator instance. class is
// the C++ operator class, templated on templDTypes when non-empty and
// qualified by namespaces when non-empty. constructParams are the already
// rendered constructor arguments.
func DeclareOp(class string, templDTypes []dtype.DataType, constructParams []string, opVar string, namespaces []string) (*Snippet, error) {
	qualified, err := OpClass(class, templDTypes, namespaces)
	if err != nil {
		return nil, err
	}
	return newSnippet("declare_op.cpp.tmpl", declareOpData{
		OpClass:         qualified,
		OpVar:           opVar,
		ConstructParams: constructParams,
	}), nil
}

// TensorBinding binds an abstract operator port name to the emitted
// variable holding a graph tensor.
type TensorBinding struct {
	Port string
	Var  string
}

type evalOpData struct {
	OpClass string
	OpVar   string
	Inputs  []TensorBinding
	Outputs []TensorBinding
}

// EvalOpSpec describes the evaluation call of one operator class: its C++
// class, its template dtype parameters, and the abstract port names of its
// inputs and outputs in the order the graph node lists its tensors.
type EvalOpSpec struct {
	Class       string
	TemplDTypes []dtype.DataType
	Inputs      []string
	Outputs     []string
}

// EvalOp returns the snippet evaluating one operator instance on the
// tensors of a graph node. tensorVars maps graph tensor names to emitted
// variable names.
func EvalOp(spec *EvalOpSpec, opVar string, node *graph.OpInfo, tensorVars map[string]string, namespaces []string) (*Snippet, error) {
	qualified, err := OpClass(spec.Class, spec.TemplDTypes, namespaces)
	if err != nil {
		return nil, err
	}
	inputs, err := bindTensors(spec.Class, spec.Inputs, node.Inputs, tensorVars)
	if err != nil {
		return nil, err
	}
	outputs, err := bindTensors(spec.Class, spec.Outputs, node.Outputs, tensorVars)
	if err != nil {
		return nil, err
	}
	return newSnippet("eval_op.cpp.tmpl", evalOpData{
		OpClass: qualified,
		OpVar:   opVar,
		Inputs:  inputs,
		Outputs: outputs,
	}), nil
}

func bindTensors(class string, ports []string, tensors []*graph.TensorInfo, tensorVars map[string]string) ([]TensorBinding, error) {
	if len(tensors) < len(ports) {
		return nil, errors.Errorf("%s binds %d tensors but the node only has %d", class, len(ports), len(tensors))
	}
	bindings := make([]TensorBinding, len(ports))
	for i, port := range ports {
		tensorVar, ok := tensorVars[tensors[i].Name]
		if !ok {
			return nil, errors.Errorf("no emitted variable for tensor %s", tensors[i].Name)
		}
		bindings[i] = TensorBinding{Port: port, Var: tensorVar}
	}
	return bindings, nil
}

type declareTensorData struct {
	TensorVar string
	Shape     []int
	TypeCode  string
	BufferVar string
	Static    bool
}

// DeclareRomTensor returns the snippet declaring a tensor backed by a
// constant buffer compiled into the binary. bufferVar names the buffer
// symbol; static restricts the tensor to the translation unit.
func DeclareRomTensor(tensor *graph.TensorInfo, tensorVar, bufferVar string, static bool) (*Snippet, error) {
	code, err := TypeCode(tensor.DType())
	if err != nil {
		return nil, err
	}
	return newSnippet("declare_rom_tensor.cpp.tmpl", declareTensorData{
		TensorVar: tensorVar,
		Shape:     tensorShape(tensor),
		TypeCode:  code,
		BufferVar: bufferVar,
		Static:    static,
	}), nil
}

// DeclareRamTensor returns the snippet declaring a tensor allocated from
// the runtime arena.
func DeclareRamTensor(tensor *graph.TensorInfo, tensorVar string) (*Snippet, error) {
	code, err := TypeCode(tensor.DType())
	if err != nil {
		return nil, err
	}
	return newSnippet("declare_ram_tensor.cpp.tmpl", declareTensorData{
		TensorVar: tensorVar,
		Shape:     tensorShape(tensor),
		TypeCode:  code,
	}), nil
}

// Scalar tensors declare with a single axis of length one.
func tensorShape(tensor *graph.TensorInfo) []int {
	if len(tensor.Shape.AxisLengths) == 0 {
		return []int{1}
	}
	return tensor.Shape.AxisLengths
}

// Composite concatenates snippets into one fragment.
type Composite struct {
	snippets []*Snippet
}

// Add appends snippets to the composite.
func (c *Composite) Add(snips ...*Snippet) {
	c.snippets = append(c.snippets, snips...)
}

// Headers returns the include directives required by all the snippets of
// the composite, deduplicated, in first-required order.
func (c *Composite) Headers() []string {
	seen := ordered.NewMap[string, struct{}]()
	for _, s := range c.snippets {
		for _, header := range s.Headers() {
			seen.Store(header, struct{}{})
		}
	}
	headers := make([]string, 0, seen.Size())
	for header := range seen.Keys() {
		headers = append(headers, header)
	}
	return headers
}

// Render renders every snippet of the composite, joined by newlines.
// Rendering continues past a failing snippet so that one error report
// covers all defective templates at once.
func (c *Composite) Render() (string, error) {
	var errs error
	parts := make([]string, 0, len(c.snippets))
	for _, s := range c.snippets {
		part, err := s.Render()
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		parts = append(parts, part)
	}
	if errs != nil {
		return "", errs
	}
	return strings.Join(parts, "\n"), nil
}
