// Copyright 2026 Blink Labs Software
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

package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// MaxFuncNameSize is the maximum size of init and receive names
	MaxFuncNameSize = 100
	// MaxContractNameSize leaves room for the "init_" prefix
	MaxContractNameSize = MaxFuncNameSize - len(initPrefix)
	// MaxEntrypointNameSize leaves room for the "." separator
	MaxEntrypointNameSize = MaxFuncNameSize - 1
	// MaxParameterSize is the largest parameter accepted by the chain
	MaxParameterSize = 65535

	initPrefix = "init_"
)

// NameError is returned when a contract or function name is malformed
type NameError struct {
	Kind   string
	Name   string
	Reason string
}

func (e NameError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Name, e.Reason)
}

func checkNameChars(kind string, name string, maxSize int, allowDot bool) error {
	if len(name) > maxSize {
		return NameError{
			Kind:   kind,
			Name:   name,
			Reason: fmt.Sprintf("longer than %d bytes", maxSize),
		}
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		// ASCII alphanumerics and punctuation only
		if c < 0x21 || c > 0x7e {
			return NameError{
				Kind:   kind,
				Name:   name,
				Reason: fmt.Sprintf("invalid character at position %d", i),
			}
		}
		if c == '.' && !allowDot {
			return NameError{Kind: kind, Name: name, Reason: "contains '.'"}
		}
	}
	return nil
}

// ContractName is the name of a contract without the "init_" prefix
type ContractName string

func NewContractName(name string) (ContractName, error) {
	if err := checkNameChars("contract name", name, MaxContractNameSize, false); err != nil {
		return "", err
	}
	return ContractName(name), nil
}

// InitName returns the name of the contract's init function
func (c ContractName) InitName() InitName {
	return InitName(initPrefix + string(c))
}

// ReceiveName returns the name of the given entrypoint of the contract
func (c ContractName) ReceiveName(entrypoint EntrypointName) ReceiveName {
	return ReceiveName(string(c) + "." + string(entrypoint))
}

func (c ContractName) String() string {
	return string(c)
}

// InitName is the "init_<contract>" name of a contract's init function
type InitName string

func NewInitName(name string) (InitName, error) {
	if !strings.HasPrefix(name, initPrefix) {
		return "", NameError{Kind: "init name", Name: name, Reason: "missing \"init_\" prefix"}
	}
	if err := checkNameChars("init name", name, MaxFuncNameSize, false); err != nil {
		return "", err
	}
	return InitName(name), nil
}

func (n InitName) ContractName() ContractName {
	return ContractName(strings.TrimPrefix(string(n), initPrefix))
}

func (n InitName) String() string {
	return string(n)
}

// EntrypointName is the name of a receive function without the contract prefix
type EntrypointName string

func NewEntrypointName(name string) (EntrypointName, error) {
	if err := checkNameChars("entrypoint name", name, MaxEntrypointNameSize, true); err != nil {
		return "", err
	}
	return EntrypointName(name), nil
}

func (e EntrypointName) String() string {
	return string(e)
}

// ReceiveName is the "<contract>.<entrypoint>" name of a receive function
type ReceiveName string

func NewReceiveName(name string) (ReceiveName, error) {
	if err := checkNameChars("receive name", name, MaxFuncNameSize, true); err != nil {
		return "", err
	}
	if !strings.Contains(name, ".") {
		return "", NameError{Kind: "receive name", Name: name, Reason: "missing '.' separator"}
	}
	return ReceiveName(name), nil
}

// ContractName returns the part before the first '.'
func (r ReceiveName) ContractName() ContractName {
	contract, _, _ := strings.Cut(string(r), ".")
	return ContractName(contract)
}

// EntrypointName returns the part after the first '.'
func (r ReceiveName) EntrypointName() EntrypointName {
	_, entrypoint, _ := strings.Cut(string(r), ".")
	return EntrypointName(entrypoint)
}

func (r ReceiveName) String() string {
	return string(r)
}

// Parameter is a serialized contract parameter
type Parameter []byte

func NewParameter(data []byte) (Parameter, error) {
	if len(data) > MaxParameterSize {
		return nil, fmt.Errorf(
			"parameter of %d bytes exceeds the maximum of %d",
			len(data),
			MaxParameterSize,
		)
	}
	return Parameter(data), nil
}

func (p Parameter) String() string {
	return hex.EncodeToString(p)
}

func (p Parameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Parameter) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(tmp)
	if err != nil {
		return err
	}
	param, err := NewParameter(decoded)
	if err != nil {
		return err
	}
	*p = param
	return nil
}
