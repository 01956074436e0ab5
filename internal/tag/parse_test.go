package tag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, tg := range goldenTags() {
		for _, withPrefix := range []bool{true, false} {
			s := CanonicalString(tg, withPrefix)
			t.Run(s, func(t *testing.T) {
				parsed, err := ParseTypeTag(s)
				require.NoError(t, err)
				assert.True(t, Equal(tg, parsed), "round trip changed value: %s", s)
			})
		}
	}
}

func TestParseDisplayForm(t *testing.T) {
	// The parser accepts the looser display rendering too: short
	// addresses and spaces after commas.
	st, err := ParseStructTag("0xa::m::T<0xb::n::U, u64>")
	require.NoError(t, err)
	assert.Equal(t, MustAddressFromHex("0xa"), st.Address)
	require.Len(t, st.TypeParams, 2)
	assert.True(t, Equal(st.TypeParams[1], U64Tag{}))
}

func TestParsePrimitives(t *testing.T) {
	tests := map[string]TypeTag{
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
	for in, want := range tests {
		got, err := ParseTypeTag(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseKeywordAsNamedAddress(t *testing.T) {
	// A primitive keyword followed by "::" is a struct path, not a
	// primitive.
	resolve := func(name string) (Address, bool) {
		if name == "signer" {
			return AddressTwo, true
		}
		var zero Address
		return zero, false
	}
	st, err := ParseStructTagWithResolver("signer::m::T", resolve)
	require.NoError(t, err)
	assert.Equal(t, AddressTwo, st.Address)
}

func TestParseNamedAddressResolution(t *testing.T) {
	resolve := func(name string) (Address, bool) {
		switch name {
		case "std":
			return AddressOne, true
		case "sui":
			return AddressTwo, true
		default:
			var zero Address
			return zero, false
		}
	}

	tt, err := ParseTypeTagWithResolver("sui::coin::Coin<std::string::String>", resolve)
	require.NoError(t, err)
	st := tt.(*StructTag)
	assert.Equal(t, AddressTwo, st.Address)
	assert.Equal(t, AddressOne, st.TypeParams[0].(*StructTag).Address)

	_, err = ParseTypeTagWithResolver("unknown::m::T", resolve)
	require.Error(t, err)
	assert.True(t, IsParseError(err, ErrCodeUnresolvedNamedAddress), "got %v", err)

	// Without a resolver every named address is unresolved.
	_, err = ParseTypeTag("std::string::String")
	assert.True(t, IsParseError(err, ErrCodeUnresolvedNamedAddress), "got %v", err)
}

func TestParseLetterLeadingAddressLiteral(t *testing.T) {
	// An address with a top nibble of a-f renders without a leading
	// digit in no-prefix canonical form; it must still parse as a
	// literal, not a named address.
	addr := MustAddressFromHex("0xa000000000000000000000000000000000000000000000000000000000000001")
	st := &StructTag{Address: addr, Module: "m", Name: "T"}

	for _, withPrefix := range []bool{true, false} {
		parsed, err := ParseStructTag(st.CanonicalString(withPrefix))
		require.NoError(t, err, "withPrefix=%v", withPrefix)
		assert.Equal(t, addr, parsed.Address)
	}

	m, err := ParseModuleID(NewModuleID(addr, "coin").CanonicalString(false))
	require.NoError(t, err)
	assert.Equal(t, addr, m.Address)

	// Below full width a letter-leading word is still a named address.
	_, err = ParseTypeTag("abc::m::T")
	assert.True(t, IsParseError(err, ErrCodeUnresolvedNamedAddress), "got %v", err)
	_, err = ParseTypeTag(strings.Repeat("a", 63) + "::m::T")
	assert.True(t, IsParseError(err, ErrCodeUnresolvedNamedAddress), "got %v", err)
}

func TestParseModuleID(t *testing.T) {
	m, err := ParseModuleID("0x2::coin")
	require.NoError(t, err)
	assert.Equal(t, NewModuleID(AddressTwo, "coin"), m)

	m, err = ParseModuleID("0x0000000000000000000000000000000000000000000000000000000000000002::coin")
	require.NoError(t, err)
	assert.Equal(t, NewModuleID(AddressTwo, "coin"), m)

	for _, bad := range []string{"0x2", "0x2::", "0x2::coin::Coin", "::coin", "0xzz::coin"} {
		_, err := ParseModuleID(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  ParseErrorCode
	}{
		{"unbalanced vector", "vector<u64", ErrCodeUnbalancedGenerics},
		{"unbalanced struct generics", "0x1::m::T<u64", ErrCodeUnbalancedGenerics},
		{"stray closing angle", "u64>", ErrCodeUnbalancedGenerics},
		{"malformed address", "0xzz::m::T", ErrCodeMalformedAddress},
		{"address too long", "0x" + strings.Repeat("1", 65) + "::m::T", ErrCodeMalformedAddress},
		{"invalid module identifier", "0x1::2bad::T", ErrCodeInvalidIdentifier},
		{"invalid struct identifier", "0x1::m::_", ErrCodeInvalidIdentifier},
		{"empty input", "", ErrCodeUnexpectedToken},
		{"bare address literal", "0x1", ErrCodeUnexpectedToken},
		{"trailing garbage", "u64 u64", ErrCodeUnexpectedToken},
		{"missing argument", "0x1::m::T<>", ErrCodeUnexpectedToken},
		{"double comma", "0x1::m::T<u8,,u8>", ErrCodeUnexpectedToken},
		{"illegal character", "vector<u64*>", ErrCodeUnexpectedToken},
		{"single colon", "0x1:m:T", ErrCodeUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTypeTag(tt.input)
			require.Error(t, err)
			assert.True(t, IsParseError(err, tt.code), "want %s, got %v", tt.code, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.input, pe.Input)
		})
	}
}

func TestParseErrorReportsOffendingToken(t *testing.T) {
	_, err := ParseTypeTag("0x1::m::T<0xzz::n::U>")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeMalformedAddress, pe.Code)
	assert.Equal(t, "0xzz", pe.Token)
	assert.Equal(t, 10, pe.Offset)
}

func TestParseNestingDepthBound(t *testing.T) {
	deep := strings.Repeat("vector<", maxNestingDepth+1) + "u8" + strings.Repeat(">", maxNestingDepth+1)
	_, err := ParseTypeTag(deep)
	require.Error(t, err)
	assert.True(t, IsParseError(err, ErrCodeNestingTooDeep), "got %v", err)

	// One level under the bound still parses.
	ok := strings.Repeat("vector<", maxNestingDepth-1) + "u8" + strings.Repeat(">", maxNestingDepth-1)
	_, err = ParseTypeTag(ok)
	assert.NoError(t, err)
}

func TestParseNeverPanics(t *testing.T) {
	// Adversarial junk must produce errors, not panics.
	inputs := []string{
		"<", ">", ",", "::", ":::", "vector", "vector<", "vector<>",
		"0x", "0x::m::T", "vector<u8>>", "0x1::m::T<<u8>", "\x00",
		"0x1::m::T<u8>extra", "vector<signer::>",
	}
	for _, in := range inputs {
		_, err := ParseTypeTag(in)
		assert.Error(t, err, "input %q", in)
	}
}
