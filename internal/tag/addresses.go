package tag

// addressSet collects addresses preserving first-seen order.
// A duplicate is counted once, at its first occurrence.
type addressSet struct {
	seen  map[Address]struct{}
	order []Address
}

func newAddressSet() *addressSet {
	return &addressSet{seen: make(map[Address]struct{})}
}

func (s *addressSet) add(a Address) {
	if _, ok := s.seen[a]; ok {
		return
	}
	s.seen[a] = struct{}{}
	s.order = append(s.order, a)
}

// AllAddresses returns every address transitively referenced inside t, in
// first-seen pre-order with duplicates removed. Dependency analysis uses
// this to discover which packages a type touches.
func AllAddresses(t TypeTag) []Address {
	set := newAddressSet()
	collectAddresses(t, set)
	return set.order
}

func collectAddresses(t TypeTag, set *addressSet) {
	switch v := t.(type) {
	case VectorTag:
		collectAddresses(v.Elem, set)
	case *StructTag:
		v.collectAddresses(set)
	}
	// Primitives reference no addresses; the "address" primitive is a
	// value type, not a reference to a published package.
}

// AllAddresses returns every address transitively referenced by the struct
// tag: its own address first, then each type argument's addresses in
// pre-order, deduplicated at first occurrence.
func (s *StructTag) AllAddresses() []Address {
	set := newAddressSet()
	s.collectAddresses(set)
	return set.order
}

func (s *StructTag) collectAddresses(set *addressSet) {
	set.add(s.Address)
	for _, p := range s.TypeParams {
		collectAddresses(p, set)
	}
}
