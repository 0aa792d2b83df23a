package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/libraryhub/internal/metadata"
)

// ImportDraftsCommand turns a file of scanned ISBNs and barcodes into intake drafts.
type ImportDraftsCommand struct {
	Path    string
	Enrich  bool
	DryRun  bool
	Verbose bool
}

func newImportDraftsCommand() *cobra.Command {
	opts := &ImportDraftsCommand{}

	cmd := &cobra.Command{
		Use:   "import-drafts <file>",
		Short: "Create book drafts from a file of ISBNs or barcodes",
		Long: `Reads one or more codes per line (separated by spaces or commas) and adds a draft for
each. Blank lines and lines starting with # are skipped. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			return opts.Run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVar(&opts.Enrich, "enrich", false, "Look up title, author and cover for each ISBN after importing")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Show the codes that would be imported without saving them")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print every created draft")
	return cmd
}

func (c *ImportDraftsCommand) Run(ctx context.Context, stdin io.Reader) error {
	in := stdin
	if c.Path != "-" {
		file, err := os.Open(c.Path)
		if err != nil {
			return fmt.Errorf("failed to open codes file: %w", err)
		}
		defer file.Close()
		in = file
	}

	codes, err := ReadCodes(in)
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		fmt.Println("No codes found")
		return nil
	}
	fmt.Printf("Found %d codes\n", len(codes))

	if c.DryRun {
		for _, code := range codes {
			fmt.Printf("  %s\n", code)
		}
		fmt.Println("\nDry run complete. Use without --dry-run to import.")
		return nil
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	created := app.Drafts.AddBatch(codes)
	fmt.Printf("Created %d drafts\n", len(created))
	if c.Verbose {
		for _, d := range created {
			fmt.Printf("  %s  isbn=%q barcode=%q\n", d.ID, d.ISBN, d.Barcode)
		}
	}

	if !c.Enrich {
		return nil
	}

	cfg := app.Config.Metadata
	enricher := metadata.NewEnricher(metadata.NewOpenLibraryClient(cfg.BaseURL, cfg.RequestSpacing), app.Drafts)
	enriched, failed, err := enricher.EnrichPending(ctx)
	if err != nil {
		return fmt.Errorf("enrichment stopped: %w", err)
	}
	fmt.Printf("Enriched %d drafts, %d failed\n", enriched, failed)
	return nil
}

// ReadCodes collects the codes in r. Codes are separated by whitespace or commas; blank lines and
// # comments are ignored.
func ReadCodes(r io.Reader) ([]string, error) {
	var codes []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		codes = append(codes, fields...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read codes: %w", err)
	}
	return codes, nil
}
