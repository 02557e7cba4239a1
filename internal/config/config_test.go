package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	be.Err(t, os.WriteFile(path, []byte(content), 0o644), nil)
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	be.Equal(t, cfg.Prompt, "ready> ")
	be.Equal(t, cfg.Format, FormatSummary)
	be.Equal(t, cfg.Eval, true)
	be.Equal(t, cfg.MaxCallDepth, 10000)
	be.Err(t, cfg.Validate(), nil)
	be.Equal(t, cfg.SlogLevel(), slog.LevelWarn)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	be.Err(t, err, nil)
	be.Equal(t, cfg.Format, FormatSummary)
	be.Equal(t, cfg.Path(), "")
}

func TestLoadDefaultFileFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	be.Err(t, os.WriteFile(filepath.Join(home, DefaultFile), []byte(`format = "sexpr"`), 0o644), nil)

	cfg, err := Load("")
	be.Err(t, err, nil)
	be.Equal(t, cfg.Format, FormatSExpr)
	be.Equal(t, cfg.Path(), filepath.Join(home, DefaultFile))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	be.Err(t, err)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "scribbit.toml", `
prompt = "> "
history_file = ""
color = false
format = "json"
log_level = "debug"
eval = false
max_call_depth = 50
`)
	cfg, err := Load(path)
	be.Err(t, err, nil)
	be.Equal(t, cfg.Prompt, "> ")
	be.Equal(t, cfg.HistoryFile, "")
	be.Equal(t, cfg.Color, false)
	be.Equal(t, cfg.Format, FormatJSON)
	be.Equal(t, cfg.Eval, false)
	be.Equal(t, cfg.MaxCallDepth, 50)
	be.Equal(t, cfg.SlogLevel(), slog.LevelDebug)
}

func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	path := writeFile(t, "scribbit.toml", `format = "yaml"`)
	cfg, err := Load(path)
	be.Err(t, err, nil)
	be.Equal(t, cfg.Format, FormatYAML)
	be.Equal(t, cfg.Prompt, "ready> ")
	be.Equal(t, cfg.Eval, true)
}

func TestLoadYAML(t *testing.T) {
	for _, name := range []string{"scribbit.yaml", "scribbit.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, "prompt: \"kal> \"\nformat: sexpr\nlog_level: error\n")
			cfg, err := Load(path)
			be.Err(t, err, nil)
			be.Equal(t, cfg.Prompt, "kal> ")
			be.Equal(t, cfg.Format, FormatSExpr)
			be.Equal(t, cfg.SlogLevel(), slog.LevelError)
		})
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	be.Err(t, err, nil)
	be.Equal(t, cfg.Format, FormatSummary)
}

func TestLoadExpandsHistoryFile(t *testing.T) {
	t.Setenv("SCRIBBIT_TEST_DIR", "/tmp/scribbit")
	cfg, err := Load(writeFile(t, "c.toml", `history_file = "$SCRIBBIT_TEST_DIR/history"`))
	be.Err(t, err, nil)
	be.Equal(t, cfg.HistoryFile, "/tmp/scribbit/history")
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown toml key", "c.toml", "colour = true"},
		{"unknown yaml key", "c.yaml", "colour: true\n"},
		{"bad toml", "c.toml", "format = "},
		{"bad format", "c.toml", `format = "xml"`},
		{"bad level", "c.toml", `log_level = "loud"`},
		{"bad depth", "c.yaml", "max_call_depth: 0\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(writeFile(t, test.file, test.content))
			be.Err(t, err)
		})
	}
}

func TestSlogLevelFallsBackToWarn(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "chatty"
	be.Equal(t, cfg.SlogLevel(), slog.LevelWarn)
}

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{FormatSummary, FormatSExpr, FormatJSON, FormatYAML} {
		be.Err(t, CheckFormat(f), nil)
	}
	be.Err(t, CheckFormat("xml"))
	be.Err(t, CheckFormat(""))
}
