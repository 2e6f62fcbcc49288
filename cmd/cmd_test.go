package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/blockcraft/internal/config"
	"github.com/conneroisu/blockcraft/internal/types"
	"github.com/conneroisu/blockcraft/internal/version"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return cmd, &out
}

func TestWriteCatalog(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCatalog(&buf, FormatTable))
		assert.Contains(t, buf.String(), "TYPE")
		assert.Contains(t, buf.String(), "hero")
		assert.Contains(t, buf.String(), "testimonial")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCatalog(&buf, FormatJSON))
		var entries []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
		require.Len(t, entries, len(types.Kinds))
		assert.Equal(t, string(types.Kinds[0]), entries[0]["type"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCatalog(&buf, FormatYAML))
		assert.Contains(t, buf.String(), "type: hero")
		assert.NotContains(t, buf.String(), "defaults:")
	})
}

func TestParseBlocks(t *testing.T) {
	assert.Equal(t, types.Kinds, parseBlocks(nil))
	assert.Equal(t, []types.Kind{"hero", "footer"}, parseBlocks([]string{"hero", " footer "}))
	assert.Equal(t, []types.Kind{"hero", "cta", "navbar"}, parseBlocks([]string{"hero,cta", "", "navbar"}))
}

func TestFlagValidation(t *testing.T) {
	var format string
	cmd := &cobra.Command{}
	addFormatFlag(cmd, &format, FormatTable, FormatJSON)

	assert.Equal(t, FormatTable, format)
	require.NoError(t, cmd.Flags().Set("format", "json"))
	assert.Equal(t, FormatJSON, format)
	assert.Error(t, cmd.Flags().Set("format", "xml"))
	assert.Equal(t, FormatJSON, format)
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort("8080"))
	assert.Error(t, ValidatePort("0"))
	assert.Error(t, ValidatePort("70000"))
	assert.Error(t, ValidatePort("http"))
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	initName, initForce = "Acme", false
	t.Cleanup(func() { initName, initForce = "", false })

	cmd, out := newTestCommand()
	require.NoError(t, runInit(cmd, []string{dir}))

	path := filepath.Join(dir, config.DefaultConfigFile)
	assert.Contains(t, out.String(), "✓ Created")
	require.FileExists(t, path)

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "Acme", cfg.Project.Name)
	assert.Equal(t, 60*time.Second, cfg.Assistant.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Assistant.History.TTL)
	assert.Empty(t, cfg.Assistant.APIKey)

	t.Run("existing file is kept", func(t *testing.T) {
		initName = "Other"
		cmd, out := newTestCommand()
		require.NoError(t, runInit(cmd, []string{dir}))
		assert.Contains(t, out.String(), "already exists")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "name: Acme")
	})

	t.Run("force overwrites", func(t *testing.T) {
		initName, initForce = "Other", true
		cmd, _ := newTestCommand()
		require.NoError(t, runInit(cmd, []string{dir}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "name: Other")
	})
}

func TestRunExport(t *testing.T) {
	t.Cleanup(func() {
		exportName, exportBlocks, exportTarget, exportOut = "", nil, "static", ""
	})

	t.Run("static", func(t *testing.T) {
		dir := t.TempDir()
		exportName, exportBlocks, exportTarget, exportOut = "Acme", []string{"navbar,hero"}, "static", dir

		cmd, out := newTestCommand()
		require.NoError(t, runExport(cmd, nil))
		assert.Contains(t, out.String(), "index.html")

		data, err := os.ReadFile(filepath.Join(dir, "index.html"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "<title>Acme</title>")
		assert.Contains(t, string(data), "Welcome to Our Website")
	})

	t.Run("scaffold", func(t *testing.T) {
		dir := t.TempDir()
		exportName, exportBlocks, exportTarget, exportOut = "Acme Launch", nil, "scaffold", dir

		cmd, _ := newTestCommand()
		require.NoError(t, runExport(cmd, nil))

		for _, name := range []string{"App.jsx", "server.js", "package.json"} {
			assert.FileExists(t, filepath.Join(dir, name))
		}
		data, err := os.ReadFile(filepath.Join(dir, "package.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "acme-launch")
	})
}

func TestRunCheck(t *testing.T) {
	t.Cleanup(func() { checkBlocks = nil })

	cmd, out := newTestCommand()
	require.NoError(t, runCheck(cmd, nil))
	assert.Contains(t, out.String(), fmt.Sprintf("All %d blocks match", len(types.Kinds)))

	checkBlocks = []string{"pricing", "carousel"}
	cmd, out = newTestCommand()
	require.NoError(t, runCheck(cmd, nil))
	assert.Contains(t, out.String(), "✓ pricing")
	assert.Contains(t, out.String(), "✓ carousel")
}

func TestRunDeploy(t *testing.T) {
	deployName, deployTimeScale, deploySuccessRate = "Acme Launch", 0, 1
	t.Cleanup(func() { deployName, deployTimeScale, deploySuccessRate = "", -1, -1 })

	cmd, out := newTestCommand()
	require.NoError(t, runDeploy(cmd, nil))

	assert.Contains(t, out.String(), "[2/8] Installing dependencies (25%)")
	assert.Contains(t, out.String(), "[8/8] Verifying deployment (100%)")
	assert.Regexp(t, `✓ Deployed to https://acme-launch-[0-9a-z]{5}\.vercel\.app`, out.String())

	deploySuccessRate = 0
	cmd, _ = newTestCommand()
	assert.EqualError(t, runDeploy(cmd, nil), "deployment failed")
}

func TestWriteVersion(t *testing.T) {
	info := version.Info{Version: "v1.2.3", GitCommit: "abcdef123", GoVersion: "go1.24.4", Platform: "linux/amd64"}

	var buf bytes.Buffer
	require.NoError(t, writeVersion(&buf, info, FormatText, true))
	assert.Equal(t, "v1.2.3 (abcdef1)\n", buf.String())

	buf.Reset()
	require.NoError(t, writeVersion(&buf, info, FormatText, false))
	assert.Contains(t, buf.String(), "Platform: linux/amd64")

	buf.Reset()
	require.NoError(t, writeVersion(&buf, info, FormatJSON, false))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "v1.2.3", decoded["version"])
	assert.Equal(t, true, decoded["is_release"])

	buf.Reset()
	require.NoError(t, writeVersion(&buf, info, FormatYAML, false))
	assert.Contains(t, buf.String(), "version: v1.2.3")
}
