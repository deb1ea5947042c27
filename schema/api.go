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

package schema

// Contract returns the schema of the named contract
func (m *ModuleSchema) Contract(contract string) (*ContractSchema, error) {
	c, ok := m.Contracts[contract]
	if !ok || c == nil {
		return nil, UnknownContractError{Contract: contract}
	}
	return c, nil
}

func (m *ModuleSchema) initFunction(contract string) (*FunctionSchema, error) {
	c, err := m.Contract(contract)
	if err != nil {
		return nil, err
	}
	if c.Init == nil {
		return nil, MissingTypeError{Contract: contract, Kind: "init function"}
	}
	return c.Init, nil
}

func (m *ModuleSchema) receiveFunction(contract string, entrypoint string) (*FunctionSchema, error) {
	c, err := m.Contract(contract)
	if err != nil {
		return nil, err
	}
	fn, ok := c.Receive[entrypoint]
	if !ok || fn == nil {
		return nil, UnknownEntrypointError{Contract: contract, Entrypoint: entrypoint}
	}
	return fn, nil
}

func pick(t Type, contract string, function string, kind string) (Type, error) {
	if t == nil {
		return nil, MissingTypeError{Contract: contract, Function: function, Kind: kind}
	}
	return t, nil
}

// InitParameter returns the parameter type of the contract's init function
func (m *ModuleSchema) InitParameter(contract string) (Type, error) {
	fn, err := m.initFunction(contract)
	if err != nil {
		return nil, err
	}
	return pick(fn.Parameter, contract, "init", "parameter")
}

// InitError returns the error type of the contract's init function
func (m *ModuleSchema) InitError(contract string) (Type, error) {
	fn, err := m.initFunction(contract)
	if err != nil {
		return nil, err
	}
	return pick(fn.Error, contract, "init", "error")
}

// ReceiveParameter returns the parameter type of an entrypoint
func (m *ModuleSchema) ReceiveParameter(contract string, entrypoint string) (Type, error) {
	fn, err := m.receiveFunction(contract, entrypoint)
	if err != nil {
		return nil, err
	}
	return pick(fn.Parameter, contract, entrypoint, "parameter")
}

// ReturnValue returns the return value type of an entrypoint
func (m *ModuleSchema) ReturnValue(contract string, entrypoint string) (Type, error) {
	fn, err := m.receiveFunction(contract, entrypoint)
	if err != nil {
		return nil, err
	}
	return pick(fn.ReturnValue, contract, entrypoint, "return value")
}

// ReceiveError returns the error type of an entrypoint
func (m *ModuleSchema) ReceiveError(contract string, entrypoint string) (Type, error) {
	fn, err := m.receiveFunction(contract, entrypoint)
	if err != nil {
		return nil, err
	}
	return pick(fn.Error, contract, entrypoint, "error")
}

// Event returns the event type of the contract
func (m *ModuleSchema) Event(contract string) (Type, error) {
	c, err := m.Contract(contract)
	if err != nil {
		return nil, err
	}
	return pick(c.Event, contract, "", "event")
}

// State returns the state type of the contract
func (m *ModuleSchema) State(contract string) (Type, error) {
	c, err := m.Contract(contract)
	if err != nil {
		return nil, err
	}
	return pick(c.State, contract, "", "state")
}

func decodeWith(
	moduleSchema []byte,
	version []SchemaVersion,
	lookup func(*ModuleSchema) (Type, error),
	data []byte,
) (any, error) {
	m, err := ParseModuleSchema(moduleSchema, version...)
	if err != nil {
		return nil, err
	}
	t, err := lookup(m)
	if err != nil {
		return nil, err
	}
	return DecodeValue(t, data)
}

func encodeWith(
	moduleSchema []byte,
	version []SchemaVersion,
	lookup func(*ModuleSchema) (Type, error),
	value any,
) ([]byte, error) {
	m, err := ParseModuleSchema(moduleSchema, version...)
	if err != nil {
		return nil, err
	}
	t, err := lookup(m)
	if err != nil {
		return nil, err
	}
	return EncodeValue(t, value)
}

// DecodeReturnValue decodes the return value of an entrypoint using a serialized module
// schema
func DecodeReturnValue(
	returnValue []byte,
	moduleSchema []byte,
	contract string,
	entrypoint string,
	version ...SchemaVersion,
) (any, error) {
	return decodeWith(moduleSchema, version, func(m *ModuleSchema) (Type, error) {
		return m.ReturnValue(contract, entrypoint)
	}, returnValue)
}

// DecodeReceiveError decodes the error returned by an entrypoint
func DecodeReceiveError(
	errorBytes []byte,
	moduleSchema []byte,
	contract string,
	entrypoint string,
	version ...SchemaVersion,
) (any, error) {
	return decodeWith(moduleSchema, version, func(m *ModuleSchema) (Type, error) {
		return m.ReceiveError(contract, entrypoint)
	}, errorBytes)
}

// DecodeInitError decodes the error returned by a contract's init function
func DecodeInitError(
	errorBytes []byte,
	moduleSchema []byte,
	contract string,
	version ...SchemaVersion,
) (any, error) {
	return decodeWith(moduleSchema, version, func(m *ModuleSchema) (Type, error) {
		return m.InitError(contract)
	}, errorBytes)
}

// DecodeEvent decodes an event logged by the contract
func DecodeEvent(
	event []byte,
	moduleSchema []byte,
	contract string,
	version ...SchemaVersion,
) (any, error) {
	return decodeWith(moduleSchema, version, func(m *ModuleSchema) (Type, error) {
		return m.Event(contract)
	}, event)
}

// DecodeContractState decodes the state of a V0 contract
func DecodeContractState(
	state []byte,
	moduleSchema []byte,
	contract string,
	version ...SchemaVersion,
) (any, error) {
	return decodeWith(moduleSchema, version, func(m *ModuleSchema) (Type, error) {
		return m.State(contract)
	}, state)
}

// SerializeUpdateParameter serializes the parameter of an entrypoint
func SerializeUpdateParameter(
	value any,
	moduleSchema []byte,
	contract string,
	entrypoint string,
	version ...SchemaVersion,
) ([]byte, error) {
	return encodeWith(moduleSchema, version, func(m *ModuleSchema) (Type, error) {
		return m.ReceiveParameter(contract, entrypoint)
	}, value)
}

// SerializeInitParameter serializes the parameter of a contract's init function
func SerializeInitParameter(
	value any,
	moduleSchema []byte,
	contract string,
	version ...SchemaVersion,
) ([]byte, error) {
	return encodeWith(moduleSchema, version, func(m *ModuleSchema) (Type, error) {
		return m.InitParameter(contract)
	}, value)
}

// DecodeTypeValue decodes data using a serialized type schema
func DecodeTypeValue(data []byte, typeSchema []byte) (any, error) {
	t, err := ParseType(typeSchema)
	if err != nil {
		return nil, err
	}
	return DecodeValue(t, data)
}

// SerializeTypeValue serializes value using a serialized type schema
func SerializeTypeValue(value any, typeSchema []byte) ([]byte, error) {
	t, err := ParseType(typeSchema)
	if err != nil {
		return nil, err
	}
	return EncodeValue(t, value)
}
