package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/blockcraft/internal/parity"
)

var checkBlocks []string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare preview and exported markup for each block",
	Long: `Render every block both as the live preview and as exported HTML and
report any difference in visible text, links, images, form controls or
icons. Exits non-zero when a block diverges.

Examples:
  blockcraft check
  blockcraft check --blocks hero,pricing`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringSliceVarP(&checkBlocks, "blocks", "b", nil, "Blocks to check (default every catalog block)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	project := buildProject("check", parseBlocks(checkBlocks))

	reports, err := parity.CompareAll(commandContext(cmd), project.Components)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range reports {
		if r.OK() {
			fmt.Fprintf(out, "✓ %s\n", r.Kind)
			continue
		}
		failed++
		fmt.Fprintf(out, "✗ %s\n", r.Kind)
		for _, d := range r.Divergences {
			fmt.Fprintf(out, "    %s\n", d)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d blocks diverge", failed, len(reports))
	}
	fmt.Fprintf(out, "All %d blocks match\n", len(reports))
	return nil
}
