package tag

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goldenTags are the representative values whose canonical renderings are
// pinned in testdata/golden. The renderings are consensus-visible: if one
// of these tests fails, the codec changed meaning, which forks the
// network. Fix the code, never the golden file.
func goldenTags() []TypeTag {
	return []TypeTag{
		BoolTag{},
		U8Tag{},
		U16Tag{},
		U32Tag{},
		U64Tag{},
		U128Tag{},
		U256Tag{},
		AddressTag{},
		SignerTag{},
		VectorTag{Elem: U8Tag{}},
		VectorTag{Elem: VectorTag{Elem: AddressTag{}}},
		&StructTag{Address: AddressOne, Module: "string", Name: "String"},
		&StructTag{
			Address: MustAddressFromHex("0xa"),
			Module:  "m",
			Name:    "T",
			TypeParams: []TypeTag{
				&StructTag{Address: MustAddressFromHex("0xb"), Module: "n", Name: "U"},
				U64Tag{},
			},
		},
		VectorTag{Elem: &StructTag{
			Address:    AddressOne,
			Module:     "option",
			Name:       "Option",
			TypeParams: []TypeTag{U128Tag{}},
		}},
		&StructTag{
			Address: AddressTwo,
			Module:  "coin",
			Name:    "Coin",
			TypeParams: []TypeTag{
				&StructTag{Address: AddressTwo, Module: "sui", Name: "SUI"},
			},
		},
		// Top nibble a-f: the no-prefix rendering leads with a letter
		// and must still re-parse as an address literal.
		&StructTag{
			Address: MustAddressFromHex("0xa000000000000000000000000000000000000000000000000000000000000001"),
			Module:  "m",
			Name:    "T",
		},
	}
}

func TestCanonicalStringGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	var withPrefix, noPrefix strings.Builder
	for _, tg := range goldenTags() {
		withPrefix.WriteString(CanonicalString(tg, true))
		withPrefix.WriteByte('\n')
		noPrefix.WriteString(CanonicalString(tg, false))
		noPrefix.WriteByte('\n')
	}

	g.Assert(t, "canonical_with_prefix", []byte(withPrefix.String()))
	g.Assert(t, "canonical_no_prefix", []byte(noPrefix.String()))
}

// TestCanonicalStringStability pins literal outputs independently of the
// golden files, so a careless goldie -update cannot silently rewrite the
// contract.
func TestCanonicalStringStability(t *testing.T) {
	st := &StructTag{Address: AddressOne, Module: "string", Name: "String"}
	assert.Equal(t,
		"0x0000000000000000000000000000000000000000000000000000000000000001::string::String",
		st.CanonicalString(true))
	assert.Equal(t,
		"0000000000000000000000000000000000000000000000000000000000000001::string::String",
		st.CanonicalString(false))

	nested := &StructTag{
		Address: MustAddressFromHex("0xa"),
		Module:  "m",
		Name:    "T",
		TypeParams: []TypeTag{
			U64Tag{},
			VectorTag{Elem: U8Tag{}},
		},
	}
	// No space after the comma in canonical form.
	assert.Equal(t,
		"0x000000000000000000000000000000000000000000000000000000000000000a::m::T<u64,vector<u8>>",
		nested.CanonicalString(true))

	id := NewModuleID(AddressOne, "foo")
	assert.Equal(t,
		"0x0000000000000000000000000000000000000000000000000000000000000001::foo",
		id.CanonicalString(true))
	assert.Equal(t,
		"0000000000000000000000000000000000000000000000000000000000000001::foo",
		id.CanonicalString(false))
}

func TestDisplayStringDiffersFromCanonical(t *testing.T) {
	st := &StructTag{
		Address: MustAddressFromHex("0xa"),
		Module:  "m",
		Name:    "T",
		TypeParams: []TypeTag{
			&StructTag{Address: MustAddressFromHex("0xb"), Module: "n", Name: "U"},
			U64Tag{},
		},
	}

	// Short address, space after comma.
	assert.Equal(t, "0xa::m::T<0xb::n::U, u64>", st.DisplayString())
	assert.Equal(t, st.DisplayString(), st.String())
	assert.Equal(t, "vector<0xa::m::T<0xb::n::U, u64>>", DisplayString(VectorTag{Elem: st}))

	id := NewModuleID(AddressOne, "foo")
	assert.Equal(t, "0x1::foo", id.DisplayString())

	// Primitives share one spelling.
	for _, prim := range []TypeTag{BoolTag{}, U8Tag{}, U16Tag{}, U32Tag{}, U64Tag{}, U128Tag{}, U256Tag{}, AddressTag{}, SignerTag{}} {
		assert.Equal(t, CanonicalString(prim, true), DisplayString(prim))
	}
}

func TestAddressRenderings(t *testing.T) {
	a := MustAddressFromHex("0xABC")
	// Canonical hex is always lowercase.
	require.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000abc", a.CanonicalString(true))
	require.Equal(t, "0xabc", a.ShortString())

	assert.Equal(t, "0x0", AddressZero.ShortString())
	assert.Equal(t, strings.Repeat("0", 64), AddressZero.CanonicalString(false))
}
