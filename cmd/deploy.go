package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/blockcraft/internal/deploy"
	"github.com/conneroisu/blockcraft/internal/types"
)

var (
	deployName        string
	deployTimeScale   float64
	deploySuccessRate float64
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Run a simulated deployment",
	Long: `Walk through the deployment stages and print a preview URL. Nothing is
built or uploaded.

Examples:
  blockcraft deploy --name "Acme Launch"
  blockcraft deploy --time-scale 0      # Skip the waits`,
	RunE: runDeploy,
}

func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().StringVarP(&deployName, "name", "n", "", "Project name (default from config)")
	deployCmd.Flags().Float64Var(&deployTimeScale, "time-scale", -1, "Multiplier for stage durations (default from config)")
	deployCmd.Flags().Float64Var(&deploySuccessRate, "success-rate", -1, "Probability of success (default from config)")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	name := deployName
	if name == "" {
		name = cfg.Project.Name
	}
	scale := cfg.Deploy.TimeScale
	if deployTimeScale >= 0 {
		scale = deployTimeScale
	}
	rate := cfg.Deploy.SuccessRate
	if deploySuccessRate >= 0 {
		rate = deploySuccessRate
	}

	sim := deploy.NewSimulator(
		deploy.WithSuccessRate(rate),
		deploy.WithTimeScale(scale),
		deploy.WithLogger(logger),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Deploying %s\n", name)
	result, err := sim.Run(commandContext(cmd), types.Project{Name: name}, func(p deploy.Progress) {
		fmt.Fprintf(out, "[%d/%d] %s (%.0f%%)\n", p.Index+1, p.Total, p.Stage, p.Percent)
	})
	if err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("deployment failed")
	}
	fmt.Fprintf(out, "✓ Deployed to %s\n", result.URL)
	return nil
}
