package tag

import (
	"crypto/sha256"
	"encoding/hex"
)

// Compare imposes a total order over TypeTags: wire discriminant order
// first (Bool < U8 < U64 < U128 < Address < Signer < Vector < Struct <
// U16 < U32 < U256), then structural comparison within a variant. Storage
// layers rely on this order for use of tags as ordered map keys, so it
// must stay consistent with Equal: Compare(a, b) == 0 iff Equal(a, b).
func Compare(a, b TypeTag) int {
	da, db := discriminant(a), discriminant(b)
	switch {
	case da < db:
		return -1
	case da > db:
		return 1
	}
	switch va := a.(type) {
	case VectorTag:
		return Compare(va.Elem, b.(VectorTag).Elem)
	case *StructTag:
		return va.Compare(b.(*StructTag))
	default:
		// Same primitive variant.
		return 0
	}
}

// Equal reports structural equality of two tags.
func Equal(a, b TypeTag) bool {
	return Compare(a, b) == 0
}

// Compare orders struct tags lexicographically over
// (address, module, name, type_params); type-param order is significant.
func (s *StructTag) Compare(other *StructTag) int {
	if c := s.Address.Compare(other.Address); c != 0 {
		return c
	}
	if c := s.Module.Compare(other.Module); c != 0 {
		return c
	}
	if c := s.Name.Compare(other.Name); c != 0 {
		return c
	}
	for i := 0; i < len(s.TypeParams) && i < len(other.TypeParams); i++ {
		if c := Compare(s.TypeParams[i], other.TypeParams[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(s.TypeParams) < len(other.TypeParams):
		return -1
	case len(s.TypeParams) > len(other.TypeParams):
		return 1
	default:
		return 0
	}
}

// Equal reports structural equality of two struct tags.
func (s *StructTag) Equal(other *StructTag) bool {
	return s.Compare(other) == 0
}

// Compare orders module ids lexicographically over (address, name).
func (m ModuleID) Compare(other ModuleID) int {
	if c := m.Address.Compare(other.Address); c != 0 {
		return c
	}
	return m.Name.Compare(other.Name)
}

// Domain prefixes for value hashing. Version suffix enables future
// algorithm migration.
const (
	domainTypeTag   = "movecore/typetag/v1"
	domainStructTag = "movecore/structtag/v1"
	domainModuleID  = "movecore/moduleid/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns a stable value hash of t, computed over the canonical
// string. Structurally equal tags always hash identically.
func Hash(t TypeTag) string {
	return hashWithDomain(domainTypeTag, []byte(CanonicalString(t, true)))
}

// Hash returns a stable value hash of the struct tag.
func (s *StructTag) Hash() string {
	return hashWithDomain(domainStructTag, []byte(s.CanonicalString(true)))
}

// Hash returns a stable value hash of the module id.
func (m ModuleID) Hash() string {
	return hashWithDomain(domainModuleID, []byte(m.CanonicalString(true)))
}
