package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newFlagSet(cfg *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.AddFlags(fs)
	return fs
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, []string{filepath.Join("MainFile", "MainData.xlsx")}, cfg.Main)
	require.Equal(t, []string{filepath.Join("InputFolder", "Data_Vendor.xlsx")}, cfg.Vendor)
	require.Equal(t, "OutputFolder", cfg.OutputDir)
	require.Equal(t, "InnerJoinResult", cfg.OutputPrefix)
	require.Equal(t, 11, cfg.HeaderScanRows)
	require.True(t, cfg.Verify)
	require.False(t, cfg.AllowEmpty)
	require.Equal(t, ReportJSON, cfg.Report)
}

func TestAddFlags(t *testing.T) {
	cfg := Default()
	fs := newFlagSet(&cfg)
	require.NoError(t, fs.Parse([]string{
		"--main", "a.xlsx,b.xlsx",
		"--vendor", "v.xlsx",
		"-o", "out",
		"--max-row", "10",
		"--verify=false",
		"--report", "text",
	}))
	require.Equal(t, []string{"a.xlsx", "b.xlsx"}, cfg.Main)
	require.Equal(t, []string{"v.xlsx"}, cfg.Vendor)
	require.Equal(t, "out", cfg.OutputDir)
	require.Equal(t, 10, cfg.MaxRowPerFile)
	require.False(t, cfg.Verify)
	require.Equal(t, ReportText, cfg.Report)
}

func TestLoadFile_FlagsWin(t *testing.T) {
	path := writeConfig(t, `
main: [from-file.xlsx]
vendor: [vendor-file.xlsx]
output_dir: file-out
header_scan_rows: 5
allow_empty: true
`)
	cfg := Default()
	fs := newFlagSet(&cfg)
	require.NoError(t, fs.Parse([]string{"--main", "cli.xlsx", "-o", "cli-out"}))
	require.NoError(t, cfg.LoadFile(path, fs))

	require.Equal(t, []string{"cli.xlsx"}, cfg.Main)
	require.Equal(t, "cli-out", cfg.OutputDir)
	require.Equal(t, []string{"vendor-file.xlsx"}, cfg.Vendor)
	require.Equal(t, 5, cfg.HeaderScanRows)
	require.True(t, cfg.AllowEmpty)
	// Не указанные в файле поля остаются по умолчанию.
	require.Equal(t, "InnerJoinResult", cfg.OutputPrefix)
}

func TestLoadFile_Errors(t *testing.T) {
	cfg := Default()
	require.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), nil))
	require.Error(t, cfg.LoadFile(writeConfig(t, "main: {"), nil))
}

func TestValidate(t *testing.T) {
	for _, tt := range []struct {
		Name   string
		Modify func(*Config)
	}{
		{"NoMain", func(c *Config) { c.Main = []string{""} }},
		{"NoVendor", func(c *Config) { c.Vendor = nil }},
		{"NoPrefix", func(c *Config) { c.OutputPrefix = "" }},
		{"ScanRows", func(c *Config) { c.HeaderScanRows = 0 }},
		{"MaxRow", func(c *Config) { c.MaxRowPerFile = -1 }},
		{"Report", func(c *Config) { c.Report = "xml" }},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			cfg := Default()
			tt.Modify(&cfg)
			require.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.OutputDir = ""
	cfg.Main = []string{"dir/../main.xlsx", ""}
	require.NoError(t, cfg.Validate())
	require.Equal(t, ".", cfg.OutputDir)
	require.Equal(t, []string{"main.xlsx"}, cfg.Main)
}
