package tag

import "fmt"

// TypeTag is a sealed interface representing any storable or runtime type.
// Only the variant types in this file implement it: BoolTag, U8Tag, U64Tag,
// U128Tag, AddressTag, SignerTag, VectorTag, *StructTag, U16Tag, U32Tag,
// and U256Tag.
//
// The declaration order above is the wire discriminant order. It is
// append-only: new variants may only be added after U256Tag, and existing
// discriminants must never be permuted, because every validating node must
// decode historical data identically. TestVariantOrderPinned enforces this
// against a checked-in fixture.
type TypeTag interface {
	typeTag() // Sealed - only these types implement it
}

// BoolTag is the boolean primitive type.
type BoolTag struct{}

// U8Tag is the 8-bit unsigned integer primitive type.
type U8Tag struct{}

// U64Tag is the 64-bit unsigned integer primitive type.
type U64Tag struct{}

// U128Tag is the 128-bit unsigned integer primitive type.
type U128Tag struct{}

// AddressTag is the account address primitive type.
type AddressTag struct{}

// SignerTag is the transaction signer primitive type.
type SignerTag struct{}

// VectorTag is a homogeneous vector of Elem.
// It owns Elem exclusively; the structure is a tree, never a graph.
type VectorTag struct {
	Elem TypeTag
}

// U16Tag is the 16-bit unsigned integer primitive type.
// Added after the original variant set; wire discriminant 8.
type U16Tag struct{}

// U32Tag is the 32-bit unsigned integer primitive type.
// Added after the original variant set; wire discriminant 9.
type U32Tag struct{}

// U256Tag is the 256-bit unsigned integer primitive type.
// Added after the original variant set; wire discriminant 10.
type U256Tag struct{}

func (BoolTag) typeTag()    {}
func (U8Tag) typeTag()      {}
func (U64Tag) typeTag()     {}
func (U128Tag) typeTag()    {}
func (AddressTag) typeTag() {}
func (SignerTag) typeTag()  {}
func (VectorTag) typeTag()  {}
func (U16Tag) typeTag()     {}
func (U32Tag) typeTag()     {}
func (U256Tag) typeTag()    {}

// Wire discriminants, in the fixed append-only order.
const (
	WireBool    = 0
	WireU8      = 1
	WireU64     = 2
	WireU128    = 3
	WireAddress = 4
	WireSigner  = 5
	WireVector  = 6
	WireStruct  = 7
	WireU16     = 8
	WireU32     = 9
	WireU256    = 10
)

// discriminant returns the wire discriminant of t.
func discriminant(t TypeTag) int {
	switch t.(type) {
	case BoolTag:
		return WireBool
	case U8Tag:
		return WireU8
	case U64Tag:
		return WireU64
	case U128Tag:
		return WireU128
	case AddressTag:
		return WireAddress
	case SignerTag:
		return WireSigner
	case VectorTag:
		return WireVector
	case *StructTag:
		return WireStruct
	case U16Tag:
		return WireU16
	case U32Tag:
		return WireU32
	case U256Tag:
		return WireU256
	default:
		panic(fmt.Sprintf("unknown TypeTag variant %T", t))
	}
}

// StructTag identifies a fully-instantiated generic struct type, e.g.
// 0xa::m::T<u64, 0xb::n::U>. TypeParams order is generic-argument position
// and is significant. A *StructTag is itself a TypeTag variant.
type StructTag struct {
	Address    Address
	Module     Identifier
	Name       Identifier
	TypeParams []TypeTag
}

func (*StructTag) typeTag() {}

// ModuleID returns the coordinate of the module defining the struct.
func (s *StructTag) ModuleID() ModuleID {
	return ModuleID{Address: s.Address, Name: s.Module}
}

// IsStdString reports whether s is the std::string::String struct published
// at stdAddr.
func (s *StructTag) IsStdString(stdAddr Address) bool {
	return s.Address == stdAddr && s.Module == "string" && s.Name == "String"
}

// IsASCIIString reports whether s is the std::ascii::String struct
// published at stdAddr.
func (s *StructTag) IsASCIIString(stdAddr Address) bool {
	return s.Address == stdAddr && s.Module == "ascii" && s.Name == "String"
}

// StructTagFromTypeTag projects a TypeTag back to its StructTag.
// Fails on any non-struct variant.
func StructTagFromTypeTag(t TypeTag) (*StructTag, error) {
	s, ok := t.(*StructTag)
	if !ok {
		return nil, fmt.Errorf("type %s is not a struct", DisplayString(t))
	}
	return s, nil
}

// ModuleID is the addressing coordinate of a published module:
// the publishing address plus the module name.
type ModuleID struct {
	Address Address
	Name    Identifier
}

// NewModuleID constructs a ModuleID.
func NewModuleID(address Address, name Identifier) ModuleID {
	return ModuleID{Address: address, Name: name}
}
