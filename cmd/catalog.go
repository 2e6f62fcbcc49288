package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/blockcraft/internal/registry"
)

var catalogFormat string

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"ls"},
	Short:   "List the component catalog",
	Long: `List the blocks that can be placed on the canvas.

Examples:
  blockcraft catalog               # Table of kinds and labels
  blockcraft catalog -f json       # Full entries including default props
  blockcraft catalog -f yaml`,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	addFormatFlag(catalogCmd, &catalogFormat, FormatTable, FormatJSON, FormatYAML)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	return writeCatalog(cmd.OutOrStdout(), catalogFormat)
}

func writeCatalog(w io.Writer, format string) error {
	entries := registry.Catalog()

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(entries)
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TYPE\tLABEL\tDESCRIPTION\tPROPS")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Kind, e.Label, e.Description, strings.Join(e.Keys, ","))
		}
		return tw.Flush()
	}
}
