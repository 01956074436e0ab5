package tag

import "strings"

// CanonicalString produces the stable textual form of a type.
// CRITICAL: for a fixed value the output bytes must never change across
// software versions - the string is a hashing and addressing input and may
// be committed to effects recorded by the chain. Any change here is a
// consensus break.
//
// Rules:
//   - Primitives render as fixed lowercase keywords ("bool", "u8", ...,
//     "address", "signer").
//   - vector<inner> with no whitespace.
//   - Structs as addr::module::Name with comma-joined type arguments and
//     no space after commas.
//   - Addresses as full-width lowercase hex; withPrefix controls the "0x".
//
// For human-facing output use DisplayString instead.
func CanonicalString(t TypeTag, withPrefix bool) string {
	var b strings.Builder
	writeCanonical(&b, t, withPrefix)
	return b.String()
}

func writeCanonical(b *strings.Builder, t TypeTag, withPrefix bool) {
	switch v := t.(type) {
	case BoolTag:
		b.WriteString("bool")
	case U8Tag:
		b.WriteString("u8")
	case U16Tag:
		b.WriteString("u16")
	case U32Tag:
		b.WriteString("u32")
	case U64Tag:
		b.WriteString("u64")
	case U128Tag:
		b.WriteString("u128")
	case U256Tag:
		b.WriteString("u256")
	case AddressTag:
		b.WriteString("address")
	case SignerTag:
		b.WriteString("signer")
	case VectorTag:
		b.WriteString("vector<")
		writeCanonical(b, v.Elem, withPrefix)
		b.WriteByte('>')
	case *StructTag:
		v.writeCanonical(b, withPrefix)
	}
}

// CanonicalString produces the stable textual form of the struct tag,
// e.g. "0x000...0001::string::String". Same stability contract as the
// package-level CanonicalString.
func (s *StructTag) CanonicalString(withPrefix bool) string {
	var b strings.Builder
	s.writeCanonical(&b, withPrefix)
	return b.String()
}

func (s *StructTag) writeCanonical(b *strings.Builder, withPrefix bool) {
	b.WriteString(s.Address.CanonicalString(withPrefix))
	b.WriteString("::")
	b.WriteString(string(s.Module))
	b.WriteString("::")
	b.WriteString(string(s.Name))
	if len(s.TypeParams) > 0 {
		b.WriteByte('<')
		for i, p := range s.TypeParams {
			if i > 0 {
				// No space after the comma, unlike the display form.
				b.WriteByte(',')
			}
			writeCanonical(b, p, withPrefix)
		}
		b.WriteByte('>')
	}
}

// CanonicalString produces the stable textual form of the module id,
// e.g. "0x000...0002::coin". Same stability contract as CanonicalString
// on TypeTag.
func (m ModuleID) CanonicalString(withPrefix bool) string {
	var b strings.Builder
	b.WriteString(m.Address.CanonicalString(withPrefix))
	b.WriteString("::")
	b.WriteString(string(m.Name))
	return b.String()
}
