package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/movecore/internal/store"
	"github.com/roach88/movecore/internal/tag"
)

// IndexAddResult reports an indexing run.
type IndexAddResult struct {
	BatchID string   `json:"batch_id"`
	Indexed []string `json:"indexed"` // canonical keys
}

// IndexDepsResult lists the types referencing an address.
type IndexDepsResult struct {
	Address string   `json:"address"`
	Types   []string `json:"types"` // canonical keys
}

// NewIndexCommand creates the index command group.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Maintain and query the type index",
	}
	cmd.AddCommand(newIndexAddCommand(rootOpts))
	cmd.AddCommand(newIndexDepsCommand(rootOpts))
	return cmd
}

func newIndexAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <db> <type-string>...",
		Short: "Parse type strings and record them in the index",
		Long: `Parse one or more type strings and record them in the index database,
keyed by canonical string, together with every address each type
references. Re-adding a known type is a no-op.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndexAdd(rootOpts, args[0], args[1:], cmd, store.UUIDv7Generator{})
		},
	}
}

func newIndexDepsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "deps <db> <address>",
		Short:         "List indexed types that reference an address",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndexDeps(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runIndexAdd(opts *RootOptions, dbPath string, inputs []string, cmd *cobra.Command, gen store.BatchIDGenerator) error {
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

	// Parse everything before touching the database: a bad argument must
	// not leave a half-written batch behind.
	tags := make([]tag.TypeTag, len(inputs))
	for i, in := range inputs {
		t, err := tag.ParseTypeTagWithResolver(in, resolve)
		if err != nil {
			return outputParseError(formatter, "PARSE", fmt.Errorf("argument %d: %w", i+1, err))
		}
		tags[i] = t
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return outputParseError(formatter, "OPEN_DB", err)
	}
	defer s.Close()

	batchID := gen.Generate()
	formatter.VerboseLog("indexing %d type(s) under batch %s", len(tags), batchID)

	result := &IndexAddResult{BatchID: batchID}
	for _, t := range tags {
		if err := s.IndexType(cmd.Context(), t, batchID); err != nil {
			return outputParseError(formatter, "INDEX", err)
		}
		result.Indexed = append(result.Indexed, tag.CanonicalString(t, true))
	}

	lines := make([]string, 0, len(result.Indexed)+1)
	lines = append(lines, "batch "+batchID)
	lines = append(lines, result.Indexed...)
	return formatter.SuccessText(result, lines...)
}

func runIndexDeps(opts *RootOptions, dbPath, addrLit string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	addr, err := tag.AddressFromHex(addrLit)
	if err != nil {
		return outputParseError(formatter, string(tag.ErrCodeMalformedAddress), err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return outputParseError(formatter, "OPEN_DB", err)
	}
	defer s.Close()

	keys, err := s.TypesReferencing(cmd.Context(), addr)
	if err != nil {
		return outputParseError(formatter, "QUERY", err)
	}

	result := &IndexDepsResult{Address: addr.ShortString(), Types: keys}
	return formatter.SuccessText(result, keys...)
}
