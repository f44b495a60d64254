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

package snippets

import (
	"fmt"
	"strings"

	"github.com/gx-org/backend/dtype"
	"github.com/pkg/errors"
)

// CppType returns the C++ scalar type representing dt in emitted code.
func CppType(dt dtype.DataType) (string, error) {
	switch dt {
	case dtype.Bool:
		return "bool", nil
	case dtype.Int32:
		return "int32_t", nil
	case dtype.Int64:
		return "int64_t", nil
	case dtype.Uint32:
		return "uint32_t", nil
	case dtype.Uint64:
		return "uint64_t", nil
	case dtype.Float32:
		return "float", nil
	case dtype.Float64:
		return "double", nil
	}
	return "", errors.Errorf("no C++ type for data type %s", dt)
}

// TypeCode returns the uTensor runtime type code of dt, used when
// declaring tensors.
func TypeCode(dt dtype.DataType) (string, error) {
	switch dt {
	case dtype.Int32:
		return "i32", nil
	case dtype.Int64:
		return "i64", nil
	case dtype.Uint32:
		return "u32", nil
	case dtype.Uint64:
		return "u64", nil
	case dtype.Float32:
		return "flt", nil
	}
	return "", errors.Errorf("the uTensor runtime has no type code for data type %s", dt)
}

// OpClass returns the C++ class of an operator: class templated on the C++
// types of templDTypes when non-empty, qualified by namespaces when
// non-empty.
func OpClass(class string, templDTypes []dtype.DataType, namespaces []string) (string, error) {
	if len(templDTypes) > 0 {
		params := make([]string, len(templDTypes))
		for i, dt := range templDTypes {
			param, err := CppType(dt)
			if err != nil {
				return "", err
			}
			params[i] = param
		}
		class = fmt.Sprintf("%s<%s>", class, strings.Join(params, ", "))
	}
	if len(namespaces) > 0 {
		class = strings.Join(append(append([]string{}, namespaces...), class), "::")
	}
	return class, nil
}
