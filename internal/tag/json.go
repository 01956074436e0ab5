package tag

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// JSON codec for the type model.
//
// Encoding is externally tagged and produces only canonical spellings:
// primitives as lowercase strings ("bool"), composites as single-key
// objects ({"vector": ...}, {"struct": {...}}), struct type arguments
// under "type_args", addresses as full-width lowercase hex.
//
// Decoding additionally accepts historical spellings for compatibility
// with old serialized data: case-insensitive variant names ("Bool",
// "Vector"), "type_params" as an alias for "type_args", and addresses
// with or without "0x" prefix or zero padding. Only the canonical
// spelling is ever produced on encode.

// MarshalJSON encodes the address as a full-width lowercase hex string
// without prefix.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.CanonicalString(false))
}

// UnmarshalJSON decodes a hex string, accepting "0x"-prefixed and short
// forms.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := AddressFromHex(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UnmarshalJSON decodes and validates an identifier.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewIdentifier(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// structTagJSON is the wire shape of a StructTag. Decode looks at both
// TypeArgs and TypeParams; encode fills only TypeArgs.
type structTagJSON struct {
	Address    Address           `json:"address"`
	Module     Identifier        `json:"module"`
	Name       Identifier        `json:"name"`
	TypeArgs   []json.RawMessage `json:"type_args"`
	TypeParams []json.RawMessage `json:"type_params,omitempty"`
}

// MarshalJSON encodes the struct tag with canonical field spellings.
func (s *StructTag) MarshalJSON() ([]byte, error) {
	args := make([]json.RawMessage, len(s.TypeParams))
	for i, p := range s.TypeParams {
		b, err := MarshalTypeTag(p)
		if err != nil {
			return nil, fmt.Errorf("type_args[%d]: %w", i, err)
		}
		args[i] = b
	}
	out := structTagJSON{
		Address:  s.Address,
		Module:   s.Module,
		Name:     s.Name,
		TypeArgs: args,
	}
	// Always emit type_args, even when empty.
	if out.TypeArgs == nil {
		out.TypeArgs = []json.RawMessage{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a struct tag, accepting "type_params" as an alias
// for "type_args".
func (s *StructTag) UnmarshalJSON(data []byte) error {
	var raw structTagJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// Absent fields never pass through Identifier.UnmarshalJSON, so
	// re-validate here to reject a missing module or name.
	if _, err := NewIdentifier(string(raw.Module)); err != nil {
		return fmt.Errorf("struct tag module: %w", err)
	}
	if _, err := NewIdentifier(string(raw.Name)); err != nil {
		return fmt.Errorf("struct tag name: %w", err)
	}
	args := raw.TypeArgs
	if args == nil {
		args = raw.TypeParams
	}
	params := make([]TypeTag, len(args))
	for i, rawArg := range args {
		p, err := UnmarshalTypeTag(rawArg)
		if err != nil {
			return fmt.Errorf("type_args[%d]: %w", i, err)
		}
		params[i] = p
	}
	s.Address = raw.Address
	s.Module = raw.Module
	s.Name = raw.Name
	s.TypeParams = params
	return nil
}

// MarshalJSON encodes the module id as {"address": ..., "name": ...}.
func (m ModuleID) MarshalJSON() ([]byte, error) {
	type moduleIDJSON struct {
		Address Address    `json:"address"`
		Name    Identifier `json:"name"`
	}
	return json.Marshal(moduleIDJSON{Address: m.Address, Name: m.Name})
}

// UnmarshalJSON decodes a module id.
func (m *ModuleID) UnmarshalJSON(data []byte) error {
	var raw struct {
		Address Address    `json:"address"`
		Name    Identifier `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if _, err := NewIdentifier(string(raw.Name)); err != nil {
		return fmt.Errorf("module id name: %w", err)
	}
	m.Address = raw.Address
	m.Name = raw.Name
	return nil
}

// primitiveJSONNames maps canonical variant spellings to primitive tags.
var primitiveJSONNames = map[string]TypeTag{
	"bool":    BoolTag{},
	"u8":      U8Tag{},
	"u16":     U16Tag{},
	"u32":     U32Tag{},
	"u64":     U64Tag{},
	"u128":    U128Tag{},
	"u256":    U256Tag{},
	"address": AddressTag{},
	"signer":  SignerTag{},
}

// MarshalTypeTag encodes a type tag to JSON.
// Uses type-switch dispatch to handle all variants.
func MarshalTypeTag(t TypeTag) ([]byte, error) {
	switch v := t.(type) {
	case VectorTag:
		inner, err := MarshalTypeTag(v.Elem)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteString(`{"vector":`)
		buf.Write(inner)
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case *StructTag:
		inner, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteString(`{"struct":`)
		buf.Write(inner)
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return json.Marshal(CanonicalString(t, false))
	}
}

// UnmarshalTypeTag decodes a type tag from JSON.
func UnmarshalTypeTag(data []byte) (TypeTag, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return nil, err
		}
		t, ok := primitiveJSONNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown type tag variant %q", name)
		}
		return t, nil

	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		if len(raw) != 1 {
			return nil, fmt.Errorf("type tag object must have exactly one variant key, got %d", len(raw))
		}
		for key, inner := range raw {
			switch strings.ToLower(key) {
			case "vector":
				elem, err := UnmarshalTypeTag(inner)
				if err != nil {
					return nil, fmt.Errorf("vector: %w", err)
				}
				return VectorTag{Elem: elem}, nil
			case "struct":
				var s StructTag
				if err := s.UnmarshalJSON(inner); err != nil {
					return nil, fmt.Errorf("struct: %w", err)
				}
				return &s, nil
			default:
				return nil, fmt.Errorf("unknown type tag variant %q", key)
			}
		}
		return nil, fmt.Errorf("unreachable")

	default:
		return nil, fmt.Errorf("invalid type tag JSON: %s", string(data))
	}
}
