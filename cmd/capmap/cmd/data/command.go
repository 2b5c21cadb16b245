// Package data provides commands that manage collection overlays and
// catalog reloads.
package data

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/internal/cmd/output"
	"github.com/agentstation/capmap/internal/sources/csvrows"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/normalize"
	"github.com/agentstation/capmap/pkg/sources"
)

// NewCommand creates the data command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "data",
		GroupID: "management",
		Short:   "Manage saved collections and reload the catalog",
		Long: `Data manages collection overlays. A saved collection takes precedence
over external and embedded data on every load until it is cleared.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newSaveCommand(app))
	cmd.AddCommand(newClearCommand(app))
	cmd.AddCommand(newReloadCommand(app))
	return cmd
}

func newSaveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "save <collection> <file.csv>",
		Short: "Save a CSV file as a collection overlay",
		Long: `Save normalizes the rows of a CSV file and stores them as the overlay of
one collection. The collection is named by kind (businessProcesses) or
file stem (business_processes).`,
		Example: `  capmap data save vendors ./vendors.csv --store-driver file`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(args[1])
			if err != nil {
				return errors.WrapIO("open", args[1], err)
			}
			defer func() { _ = f.Close() }()

			rows, err := csvrows.Decode(f, args[1])
			if err != nil {
				return err
			}
			c := normalize.Collection(kind, rows)
			if c.Len(kind) == 0 {
				return errors.NewValidationError("file", args[1], "no records with an id")
			}

			store, err := app.KV(cmd.Context())
			if err != nil {
				return err
			}
			if err := sources.SaveCollection(cmd.Context(), store, kind, c); err != nil {
				return err
			}
			cmd.Printf("Saved %d %s\n", c.Len(kind), kind)
			return nil
		},
	}
}

func newClearCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every saved collection overlay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.KV(cmd.Context())
			if err != nil {
				return err
			}
			if err := sources.ClearOverlays(cmd.Context(), store); err != nil {
				return err
			}
			cmd.Println("Cleared saved collections")
			return nil
		},
	}
}

func newReloadCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the catalog and show where each collection came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			report := client.Reload(cmd.Context())
			if report.ExternalErr != nil {
				app.Logger().Warn().Err(report.ExternalErr).Msg("External data unavailable, using fallbacks")
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), report, func(bool) output.Data {
				return reportTable(report)
			})
		},
	}
}

func reportTable(r *sources.Report) output.Data {
	rows := make([][]string, 0, len(catalog.Kinds()))
	for _, k := range catalog.Kinds() {
		c := r.Collections[k]
		rows = append(rows, []string{k.String(), c.Origin.String(), strconv.Itoa(c.Records)})
	}
	return output.Data{
		Headers:         []string{"Collection", "Origin", "Records"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignRight},
	}
}

func parseKind(s string) (catalog.Kind, error) {
	for _, k := range catalog.Kinds() {
		if string(k) == s || k.FileStem() == s {
			return k, nil
		}
	}
	return "", errors.NewValidationError("collection", s, "unknown collection")
}
