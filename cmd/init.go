package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/blockcraft/internal/config"
)

var (
	initName  string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:     "init [dir]",
	Aliases: []string{"i"},
	Short:   "Write a default .blockcraft.yml",
	Long: `Write a .blockcraft.yml holding every setting at its default value.
An existing file is left alone unless --force is given.

Examples:
  blockcraft init
  blockcraft init ./site --name "Acme"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initName, "name", "n", "", "Project name")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.DefaultConfigFile)
	out := cmd.OutOrStdout()
	if _, err := os.Stat(path); err == nil && !initForce {
		fmt.Fprintf(out, "⚠ %s already exists, skipping\n", path)
		return nil
	}

	cfg := config.Defaults()
	if initName != "" {
		cfg.Project.Name = initName
	}

	var buf bytes.Buffer
	buf.WriteString("# Blockcraft configuration file\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	fmt.Fprintf(out, "✓ Created %s\n", path)
	return nil
}
