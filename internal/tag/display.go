package tag

import "strings"

// DisplayString produces the human-oriented rendering of a type: short
// addresses without zero padding, and a space after commas in generic
// argument lists.
//
// NOTE: this output is NOT stable and may change between versions. Never
// use it for hashing, persistence, or cross-version comparison - that is
// what CanonicalString is for.
func DisplayString(t TypeTag) string {
	var b strings.Builder
	writeDisplay(&b, t)
	return b.String()
}

func writeDisplay(b *strings.Builder, t TypeTag) {
	switch v := t.(type) {
	case VectorTag:
		b.WriteString("vector<")
		writeDisplay(b, v.Elem)
		b.WriteByte('>')
	case *StructTag:
		v.writeDisplay(b)
	default:
		// Primitives share one spelling between the two renderings.
		writeCanonical(b, t, false)
	}
}

// DisplayString produces the human-oriented rendering of the struct tag.
// Unstable; see DisplayString on TypeTag.
func (s *StructTag) DisplayString() string {
	var b strings.Builder
	s.writeDisplay(&b)
	return b.String()
}

func (s *StructTag) writeDisplay(b *strings.Builder) {
	b.WriteString(s.Address.ShortString())
	b.WriteString("::")
	b.WriteString(string(s.Module))
	b.WriteString("::")
	b.WriteString(string(s.Name))
	if len(s.TypeParams) > 0 {
		b.WriteByte('<')
		for i, p := range s.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			writeDisplay(b, p)
		}
		b.WriteByte('>')
	}
}

// String implements fmt.Stringer using the display form.
func (s *StructTag) String() string {
	return s.DisplayString()
}

// DisplayString produces the human-oriented rendering of the module id.
// Unstable; see DisplayString on TypeTag.
func (m ModuleID) DisplayString() string {
	return m.Address.ShortString() + "::" + string(m.Name)
}

// String implements fmt.Stringer using the display form.
func (m ModuleID) String() string {
	return m.DisplayString()
}
