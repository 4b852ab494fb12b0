package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/mokkicalc/internal/export"
	"github.com/mmynk/mokkicalc/internal/storage"
	"github.com/mmynk/mokkicalc/internal/trip"
)

var exportCmd = LeafCommand{
	Use:   "export TRIP",
	Short: "Export a trip breakdown as an XLSX workbook or a PDF",
	Args:  cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "format", Usage: "xlsx or pdf", Default: string(export.FormatXLSX)},
		{Name: "output", Usage: "output file (default: <trip name>.<format>)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		return withStore(cmd, func(ctx context.Context, store storage.TripStore) error {
			return runExport(ctx, cmd, store, args[0], format, output)
		})
	},
}.Build()

func runExport(ctx context.Context, cmd *cobra.Command, store storage.TripStore, ref, formatArg, output string) error {
	format, ok := export.ParseFormat(formatArg)
	if !ok {
		return fmt.Errorf("unsupported format '%s': use xlsx or pdf", formatArg)
	}

	t, err := findTrip(ctx, store, ref)
	if err != nil {
		return err
	}
	summary := trip.NewSession(t).Summary()

	if output == "" {
		output = fileName(t.Name) + "." + string(format)
	}

	switch format {
	case export.FormatPDF:
		data, err := export.RenderPDF(t, summary)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
	default:
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		if err := export.WriteXLSX(f, t, summary); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("exported '%s' to %s", Primary(t.Name), output)))
	return nil
}

// fileName turns a trip name into a safe file name.
func fileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '.':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "trip"
	}
	return b.String()
}
