package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/movecore/internal/tag"
)

// ParseResult holds the renderings of a parsed type string.
type ParseResult struct {
	Canonical         string          `json:"canonical"`
	CanonicalNoPrefix string          `json:"canonical_no_prefix"`
	Display           string          `json:"display"`
	Hash              string          `json:"hash"`
	AbstractSize      uint64          `json:"abstract_size"`
	Addresses         []string        `json:"addresses"`
	JSON              json.RawMessage `json:"json"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <type-string>",
		Short: "Parse a type string and print its renderings",
		Long: `Parse a type string and print its canonical and display renderings,
value hash, abstract gas size, and referenced addresses.

Named addresses resolve through the file given with --addresses.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runParse(opts *RootOptions, input string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	resolve, err := resolverFromOptions(opts)
	if err != nil {
		return outputParseError(formatter, "LOAD_ADDRESSES", err)
	}

	t, err := tag.ParseTypeTagWithResolver(input, resolve)
	if err != nil {
		var pe *tag.ParseError
		if errors.As(err, &pe) {
			return outputParseError(formatter, string(pe.Code), err)
		}
		return outputParseError(formatter, "PARSE", err)
	}

	result, err := buildParseResult(t)
	if err != nil {
		return outputParseError(formatter, "ENCODE", err)
	}

	formatter.VerboseLog("parsed %q as %s variant", input, variantName(t))

	return formatter.SuccessText(result,
		"canonical: "+result.Canonical,
		"display:   "+result.Display,
		"hash:      "+result.Hash,
		fmt.Sprintf("size:      %d", result.AbstractSize),
		"addresses: "+fmt.Sprint(result.Addresses),
	)
}

func buildParseResult(t tag.TypeTag) (*ParseResult, error) {
	jsonForm, err := tag.MarshalTypeTag(t)
	if err != nil {
		return nil, err
	}

	addrs := tag.AllAddresses(t)
	short := make([]string, len(addrs))
	for i, a := range addrs {
		short[i] = a.ShortString()
	}

	return &ParseResult{
		Canonical:         tag.CanonicalString(t, true),
		CanonicalNoPrefix: tag.CanonicalString(t, false),
		Display:           tag.DisplayString(t),
		Hash:              tag.Hash(t),
		AbstractSize:      uint64(tag.AbstractSizeForGasMetering(t)),
		Addresses:         short,
		JSON:              jsonForm,
	}, nil
}

func variantName(t tag.TypeTag) string {
	switch t.(type) {
	case tag.VectorTag:
		return "vector"
	case *tag.StructTag:
		return "struct"
	default:
		return "primitive"
	}
}

func outputParseError(f *OutputFormatter, code string, err error) error {
	if outErr := f.Error(code, err.Error(), nil); outErr != nil {
		return outErr
	}
	return err
}
