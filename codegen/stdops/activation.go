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

// ReLU is the rectified linear unit variant.
var ReLU = SimpleOp{
	Type:    "ReLU",
	Class:   "ReLUOperator",
	Inputs:  []string{"in"},
	Outputs: []string{"out"},
}

// ReLU6 is the rectified linear unit variant clipped at six.
var ReLU6 = SimpleOp{
	Type:    "ReLU6",
	Class:   "ReLU6Operator",
	Inputs:  []string{"in"},
	Outputs: []string{"out"},
}

// ArgMax is the index-of-maximum reduction variant.
var ArgMax = SimpleOp{
	Type:    "ArgMax",
	Class:   "ArgMaxOperator",
	Inputs:  []string{"input"},
	Outputs: []string{"output"},
}

// ArgMin is the index-of-minimum reduction variant.
var ArgMin = SimpleOp{
	Type:    "ArgMin",
	Class:   "ArgMinOperator",
	Inputs:  []string{"input"},
	Outputs: []string{"output"},
}
