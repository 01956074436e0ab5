package tag

import (
	"encoding/binary"
	"fmt"
)

// Binary wire codec: a tagged union with the fixed append-only
// discriminant order of the TypeTag declaration. Layout:
//
//	tag      := uvarint discriminant ∥ payload
//	vector   := tag                      (the element type)
//	struct   := address bytes (32) ∥ ident ∥ ident ∥ uvarint n ∥ n tags
//	ident    := uvarint length ∥ bytes
//
// Primitives carry no payload. The decoder rejects discriminants beyond
// the known set with a typed error rather than guessing, so data written
// by a future version with appended variants can never be misread as an
// existing variant.

// AppendTypeTag appends the wire encoding of t to buf and returns the
// extended buffer.
func AppendTypeTag(buf []byte, t TypeTag) []byte {
	buf = appendUvarint(buf, uint64(discriminant(t)))
	switch v := t.(type) {
	case VectorTag:
		buf = AppendTypeTag(buf, v.Elem)
	case *StructTag:
		buf = appendStructTag(buf, v)
	}
	return buf
}

// EncodeTypeTag returns the wire encoding of t.
func EncodeTypeTag(t TypeTag) []byte {
	return AppendTypeTag(nil, t)
}

func appendStructTag(buf []byte, s *StructTag) []byte {
	buf = append(buf, s.Address[:]...)
	buf = appendIdentifier(buf, s.Module)
	buf = appendIdentifier(buf, s.Name)
	buf = appendUvarint(buf, uint64(len(s.TypeParams)))
	for _, p := range s.TypeParams {
		buf = AppendTypeTag(buf, p)
	}
	return buf
}

func appendIdentifier(buf []byte, id Identifier) []byte {
	buf = appendUvarint(buf, uint64(len(id)))
	return append(buf, id...)
}

func appendUvarint(buf []byte, x uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], x)
	return append(buf, tmp[:n]...)
}

// DecodeTypeTag decodes a wire-encoded type tag, requiring the whole
// input to be consumed.
func DecodeTypeTag(data []byte) (TypeTag, error) {
	t, rest, err := decodeTypeTag(data, 0)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decode type tag: %d trailing bytes", len(rest))
	}
	return t, nil
}

func decodeTypeTag(data []byte, depth int) (TypeTag, []byte, error) {
	if depth >= maxNestingDepth {
		return nil, nil, fmt.Errorf("decode type tag: nesting exceeds %d levels", maxNestingDepth)
	}
	disc, data, err := decodeUvarint(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode type tag discriminant: %w", err)
	}
	switch disc {
	case WireBool:
		return BoolTag{}, data, nil
	case WireU8:
		return U8Tag{}, data, nil
	case WireU64:
		return U64Tag{}, data, nil
	case WireU128:
		return U128Tag{}, data, nil
	case WireAddress:
		return AddressTag{}, data, nil
	case WireSigner:
		return SignerTag{}, data, nil
	case WireVector:
		elem, rest, err := decodeTypeTag(data, depth+1)
		if err != nil {
			return nil, nil, err
		}
		return VectorTag{Elem: elem}, rest, nil
	case WireStruct:
		s, rest, err := decodeStructTag(data, depth)
		if err != nil {
			return nil, nil, err
		}
		return s, rest, nil
	case WireU16:
		return U16Tag{}, data, nil
	case WireU32:
		return U32Tag{}, data, nil
	case WireU256:
		return U256Tag{}, data, nil
	default:
		return nil, nil, fmt.Errorf("decode type tag: unknown discriminant %d", disc)
	}
}

func decodeStructTag(data []byte, depth int) (*StructTag, []byte, error) {
	if len(data) < AddressLength {
		return nil, nil, fmt.Errorf("decode struct tag: truncated address")
	}
	var s StructTag
	copy(s.Address[:], data[:AddressLength])
	data = data[AddressLength:]

	var err error
	if s.Module, data, err = decodeIdentifier(data); err != nil {
		return nil, nil, fmt.Errorf("decode struct tag module: %w", err)
	}
	if s.Name, data, err = decodeIdentifier(data); err != nil {
		return nil, nil, fmt.Errorf("decode struct tag name: %w", err)
	}

	count, data, err := decodeUvarint(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode struct tag param count: %w", err)
	}
	if count > uint64(len(data)) {
		// Each encoded param is at least one byte.
		return nil, nil, fmt.Errorf("decode struct tag: param count %d exceeds remaining input", count)
	}
	for i := uint64(0); i < count; i++ {
		var p TypeTag
		if p, data, err = decodeTypeTag(data, depth+1); err != nil {
			return nil, nil, fmt.Errorf("decode struct tag param %d: %w", i, err)
		}
		s.TypeParams = append(s.TypeParams, p)
	}
	return &s, data, nil
}

func decodeIdentifier(data []byte) (Identifier, []byte, error) {
	n, data, err := decodeUvarint(data)
	if err != nil {
		return "", nil, err
	}
	if n > uint64(len(data)) {
		return "", nil, fmt.Errorf("truncated identifier: need %d bytes, have %d", n, len(data))
	}
	id, err := NewIdentifier(string(data[:n]))
	if err != nil {
		return "", nil, err
	}
	return id, data[n:], nil
}

func decodeUvarint(data []byte) (uint64, []byte, error) {
	x, n := binary.Uvarint(data)
	if n <= 0 {
		return 0, nil, fmt.Errorf("invalid uvarint")
	}
	return x, data[n:], nil
}
