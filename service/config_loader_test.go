package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/config"
)

func TestConfigurationLoader_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rulescan.yaml")
	content := `threshold:
  multiplier: 1.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := NewConfigurationLoader().LoadConfig(path, "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Threshold.Multiplier != 1.5 {
		t.Errorf("Expected multiplier 1.5, got %v", cfg.Threshold.Multiplier)
	}
}

func TestConfigurationLoader_LoadConfig_MissingFile(t *testing.T) {
	_, err := NewConfigurationLoader().LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), "")
	if err == nil {
		t.Error("Missing explicit config file should fail")
	}
}

func TestApplyScoreOverrides_FlagsWin(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Format = "text"
	cfg.Output.SortBy = "name"
	cfg.Output.MinScore = 1

	req := NewConfigurationLoader().ApplyScoreOverrides(cfg, ScoreRequestOverrides{
		OutputFormat: "json",
		ShowDetails:  true,
		SortBy:       "score",
		MinScore:     10,
	})

	if req.OutputFormat != domain.OutputFormatJSON {
		t.Errorf("Flag format should win, got %s", req.OutputFormat)
	}
	if !req.ShowDetails {
		t.Error("Details flag should win")
	}
	if req.SortBy != domain.SortByScore {
		t.Errorf("Flag sort should win, got %s", req.SortBy)
	}
	if req.MinScore != 10 {
		t.Errorf("Flag min score should win, got %v", req.MinScore)
	}
}

func TestApplyScoreOverrides_ConfigKeptWhenFlagsUnset(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Format = "markdown"
	cfg.Output.SortBy = "size"
	cfg.Output.MinScore = 3
	cfg.Output.ShowDetails = true

	req := NewConfigurationLoader().ApplyScoreOverrides(cfg, ScoreRequestOverrides{})

	if req.OutputFormat != domain.OutputFormatMarkdown {
		t.Errorf("Config format should survive, got %s", req.OutputFormat)
	}
	if req.SortBy != domain.SortBySize {
		t.Errorf("Config sort should survive, got %s", req.SortBy)
	}
	if req.MinScore != 3 {
		t.Errorf("Config min score should survive, got %v", req.MinScore)
	}
	if !req.ShowDetails {
		t.Error("Config details should survive")
	}
}

func TestArtifactWriter_WriteAll(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "reports")

	paths, err := NewArtifactWriter(NewOutputFormatter()).WriteAll(sampleReport(), out)
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("Expected 3 artifacts, got %v", paths)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("Artifact %s not written: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("Artifact %s is empty", p)
		}
	}
}
