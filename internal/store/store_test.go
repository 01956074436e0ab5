package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/movecore/internal/tag"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func coinTag(t *testing.T) tag.TypeTag {
	t.Helper()
	tt, err := tag.ParseTypeTag("0x2::coin::Coin<0x2::sui::SUI>")
	require.NoError(t, err)
	return tt
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestIndexAndGetType(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	tt := coinTag(t)

	require.NoError(t, s.IndexType(ctx, tt, "batch-1"))

	canonical := tag.CanonicalString(tt, true)
	got, err := s.GetType(ctx, canonical)
	require.NoError(t, err)
	assert.True(t, tag.Equal(tt, got), "stored type must round-trip")

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGetTypeNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetType(context.Background(), "u64")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndexTypeIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	tt := coinTag(t)

	require.NoError(t, s.IndexType(ctx, tt, "batch-1"))
	// Second write with a different batch id is silently ignored.
	require.NoError(t, s.IndexType(ctx, tt, "batch-2"))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	addrs, err := s.Addresses(ctx, tag.CanonicalString(tt, true))
	require.NoError(t, err)
	assert.Equal(t, []tag.Address{tag.AddressTwo}, addrs, "address rows must not duplicate")
}

func TestAddressesPreserveTraversalOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tt, err := tag.ParseTypeTag("0xb::m::T<0xa::n::U,0xc::o::V>")
	require.NoError(t, err)
	require.NoError(t, s.IndexType(ctx, tt, "batch-1"))

	addrs, err := s.Addresses(ctx, tag.CanonicalString(tt, true))
	require.NoError(t, err)
	assert.Equal(t, []tag.Address{
		tag.MustAddressFromHex("0xb"),
		tag.MustAddressFromHex("0xa"),
		tag.MustAddressFromHex("0xc"),
	}, addrs, "first-seen pre-order, not sorted")
}

func TestTypesReferencing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	gen := NewFixedGenerator("batch-1")
	batch := gen.Generate()

	coin := coinTag(t)
	str, err := tag.ParseTypeTag("0x1::string::String")
	require.NoError(t, err)
	vec, err := tag.ParseTypeTag("vector<0x2::sui::SUI>")
	require.NoError(t, err)

	for _, tt := range []tag.TypeTag{coin, str, vec} {
		require.NoError(t, s.IndexType(ctx, tt, batch))
	}

	keys, err := s.TypesReferencing(ctx, tag.AddressTwo)
	require.NoError(t, err)
	assert.Equal(t, []string{
		tag.CanonicalString(coin, true),
		tag.CanonicalString(vec, true),
	}, keys)

	keys, err = s.TypesReferencing(ctx, tag.AddressOne)
	require.NoError(t, err)
	assert.Equal(t, []string{tag.CanonicalString(str, true)}, keys)

	// Unreferenced address yields an empty, non-nil slice.
	keys, err = s.TypesReferencing(ctx, tag.MustAddressFromHex("0xdead"))
	require.NoError(t, err)
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
}

func TestFixedGeneratorSequence(t *testing.T) {
	gen := NewFixedGenerator("a", "b")
	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestUUIDv7GeneratorProducesDistinctIDs(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
