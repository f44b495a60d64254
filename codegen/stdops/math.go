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

// Add is the element wise addition variant.
var Add = SimpleOp{
	Type:    "Add",
	Class:   "AddOperator",
	Inputs:  []string{"a", "b"},
	Outputs: []string{"c"},
}

// Mul is the element wise multiplication variant.
var Mul = SimpleOp{
	Type:    "Mul",
	Class:   "MulOperator",
	Inputs:  []string{"a", "b"},
	Outputs: []string{"c"},
}

// MatrixMult is the matrix multiplication variant.
var MatrixMult = SimpleOp{
	Type:    "MatrixMult",
	Class:   "MatrixMultOperator",
	Inputs:  []string{"a", "b"},
	Outputs: []string{"c"},
}

// Min is the minimum reduction variant.
var Min = SimpleOp{
	Type:    "Min",
	Class:   "MinOperator",
	Inputs:  []string{"in"},
	Outputs: []string{"out"},
}

// Max is the maximum reduction variant.
var Max = SimpleOp{
	Type:    "Max",
	Class:   "MaxOperator",
	Inputs:  []string{"in"},
	Outputs: []string{"out"},
}
