package mteb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwiater/mteb/internal/appconfig"
	"github.com/mwiater/mteb/internal/logging"
	"github.com/spf13/viper"
)

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func useConfigFile(t *testing.T, path string) {
	t.Helper()
	prevCfgFile := cfgFile
	prevConfig := currentConfig
	cfgFile = path
	viper.SetConfigFile(path)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		currentConfig = prevConfig
		viper.SetConfigFile(prevCfgFile)
		_ = logging.Close()
		for _, name := range append(append([]string{}, boolFlags...), valueFlags...) {
			resetFlag(name)
		}
	})
	for _, name := range append(append([]string{}, boolFlags...), valueFlags...) {
		resetFlag(name)
	}
}

func TestPersistentPreRunEMergesFlagsOverConfig(t *testing.T) {
	dataDir := t.TempDir()
	logPath := filepath.Join(t.TempDir(), "mteb.log")
	useConfigFile(t, writeTempConfig(t, `{"source":"local","dataDir":"from-config","seed":7,"pageSize":50,"export":"cfg.json"}`))

	_ = rootCmd.PersistentFlags().Set("jsonMode", "true")
	_ = rootCmd.PersistentFlags().Set("dataDir", dataDir)
	_ = rootCmd.PersistentFlags().Set("logFile", logPath)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	cfg := GetConfig()
	if cfg.DataDir != dataDir {
		t.Fatalf("expected flag dataDir %q, got %q", dataDir, cfg.DataDir)
	}
	if cfg.Seed != 7 || cfg.PageSize != 50 {
		t.Fatalf("expected seed/pageSize from config, got %d/%d", cfg.Seed, cfg.PageSize)
	}
	if !cfg.JSONMode || cfg.Debug {
		t.Fatalf("expected jsonMode on and debug off, got %v/%v", cfg.JSONMode, cfg.Debug)
	}
	if cfg.ExportPath != "cfg.json" {
		t.Fatalf("expected export path from config, got %q", cfg.ExportPath)
	}
	if cfg.LogFilePath() != logPath {
		t.Fatalf("expected log file %q, got %q", logPath, cfg.LogFilePath())
	}
	if !JSONModeEnabled() || DebugEnabled() {
		t.Fatalf("expected viper accessors to reflect merged state")
	}

	logging.LogEvent("root test")
	_ = logging.Close()
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file to be created: %v", err)
	}
}

func TestPersistentPreRunEMissingConfigUsesDefaults(t *testing.T) {
	useConfigFile(t, filepath.Join(t.TempDir(), "missing.json"))
	_ = rootCmd.PersistentFlags().Set("logFile", filepath.Join(t.TempDir(), "mteb.log"))

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("expected missing config to be tolerated, got %v", err)
	}
	if got := GetConfig().Source; got != appconfig.SourceLocal {
		t.Fatalf("expected local source, got %q", got)
	}
}

func TestPersistentPreRunERejectsInvalidSource(t *testing.T) {
	useConfigFile(t, writeTempConfig(t, `{}`))
	_ = rootCmd.PersistentFlags().Set("source", "ftp")
	_ = rootCmd.PersistentFlags().Set("logFile", filepath.Join(t.TempDir(), "mteb.log"))

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatal("expected invalid source to be rejected")
	}
}

func TestGetConfigDefaultsBeforeRun(t *testing.T) {
	prev := currentConfig
	currentConfig = nil
	t.Cleanup(func() { currentConfig = prev })

	cfg := GetConfig()
	if cfg.Seed != 42 || cfg.Source != appconfig.SourceLocal {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}
