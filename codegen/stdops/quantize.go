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
	"github.com/gx-org/backend/dtype"
	"github.com/pkg/errors"

	"github.com/utensor/ucgen/codegen/ops"
)

// Quantize converts a float tensor to its quantized representation. The
// C++ class is templated on the quantized output dtype.
var Quantize = SimpleOp{
	Type:        "Quantize",
	Class:       "QuantizeOperator",
	Inputs:      []string{"input"},
	Outputs:     []string{"output"},
	TemplDTypes: outDTypes,
}

// Dequantize converts a quantized tensor back to floats. The C++ class is
// templated on the float output dtype.
var Dequantize = SimpleOp{
	Type:        "Dequantize",
	Class:       "DequantizeOperator",
	Inputs:      []string{"input"},
	Outputs:     []string{"output"},
	TemplDTypes: outDTypes,
}

// QuantizedFullyConnected is the quantized dense layer variant.
var QuantizedFullyConnected = SimpleOp{
	Type:        "QuantizedFullyConnected",
	Class:       "QuantizedFullyConnectedOperator",
	Inputs:      []string{"input", "filter", "bias"},
	Outputs:     []string{"output"},
	TemplDTypes: outDTypes,
}

func outDTypes(op *ops.Operator) ([]dtype.DataType, error) {
	dts := op.OutDTypes()
	if len(dts) == 0 {
		return nil, errors.Errorf("node %s: operator %s has no output tensors", op.Info().Name, op.OpType())
	}
	return dts[:1], nil
}
