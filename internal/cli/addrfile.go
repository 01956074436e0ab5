package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/movecore/internal/tag"
)

// LoadNamedAddresses reads a CUE file binding named addresses and returns
// a resolver for the type-string parser. The expected shape is:
//
//	addresses: {
//		std: "0x1"
//		sui: "0x2"
//	}
//
// Every binding is validated eagerly: a bad name or address fails the
// load rather than surfacing later as a confusing parse error.
func LoadNamedAddresses(path string) (tag.AddressResolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read addresses file: %w", err)
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compile addresses file %s: %w", path, err)
	}

	addrsVal := value.LookupPath(cue.ParsePath("addresses"))
	if !addrsVal.Exists() {
		return nil, fmt.Errorf("addresses file %s: no \"addresses\" field", path)
	}

	iter, err := addrsVal.Fields()
	if err != nil {
		return nil, fmt.Errorf("addresses file %s: %w", path, err)
	}

	bindings := make(map[string]tag.Address)
	for iter.Next() {
		name := iter.Label()
		if !tag.IsValidIdentifier(name) {
			return nil, fmt.Errorf("addresses file %s: %q is not a valid address name", path, name)
		}
		hexAddr, err := iter.Value().String()
		if err != nil {
			return nil, fmt.Errorf("addresses file %s: binding %q: %w", path, name, err)
		}
		addr, err := tag.AddressFromHex(hexAddr)
		if err != nil {
			return nil, fmt.Errorf("addresses file %s: binding %q: %w", path, name, err)
		}
		bindings[name] = addr
	}

	return func(name string) (tag.Address, bool) {
		addr, ok := bindings[name]
		return addr, ok
	}, nil
}

// resolverFromOptions builds the parser's resolver from the global
// --addresses flag; with no file every named address is unresolved.
func resolverFromOptions(opts *RootOptions) (tag.AddressResolver, error) {
	if opts.AddrsFile == "" {
		return func(string) (tag.Address, bool) {
			var zero tag.Address
			return zero, false
		}, nil
	}
	return LoadNamedAddresses(opts.AddrsFile)
}
