package tag

// AbstractSize is a deterministic, platform-independent abstract memory
// cost used for gas metering. It is an abstract unit, not real bytes.
type AbstractSize uint64

// Abstract cost constants. These are fixed literals: they model a
// discriminant word and a box pointer but must never be derived from
// unsafe.Sizeof, because every validating node has to compute identical
// gas costs regardless of architecture.
const (
	// EnumBaseAbstractSize is the cost of a sum-type discriminant.
	EnumBaseAbstractSize AbstractSize = 8

	// BoxAbstractSize is the cost of one owned heap indirection.
	BoxAbstractSize AbstractSize = 8

	// typeTagBaseAbstractSize is charged once per tag node.
	typeTagBaseAbstractSize = EnumBaseAbstractSize + BoxAbstractSize
)

// AbstractSizeForGasMetering returns the abstract memory cost of a type
// tag for the execution cost model. The estimate is rough but must be
// consistent across platforms.
//
// The function is a total structural fold: it never fails and enforces no
// recursion limit. Callers handling untrusted input bound nesting depth
// before constructing the value (the parser and wire decoder both do).
func AbstractSizeForGasMetering(t TypeTag) AbstractSize {
	size := typeTagBaseAbstractSize
	switch v := t.(type) {
	case VectorTag:
		size += AbstractSizeForGasMetering(v.Elem)
	case *StructTag:
		size += v.AbstractSizeForGasMetering()
	}
	// Bare primitives add nothing beyond the base.
	return size
}

// AbstractSizeForGasMetering returns the abstract memory cost of the
// struct tag: address width plus both identifier lengths plus the cost of
// every type argument.
func (s *StructTag) AbstractSizeForGasMetering() AbstractSize {
	size := s.Address.AbstractSizeForGasMetering() +
		s.Module.AbstractSizeForGasMetering() +
		s.Name.AbstractSizeForGasMetering()
	for _, p := range s.TypeParams {
		size += AbstractSizeForGasMetering(p)
	}
	return size
}
