package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAnalyzeCmd_FlagsExist(t *testing.T) {
	cmd := analyzeCmd()

	for _, name := range []string{"format", "details", "sort", "min-score", "config", "no-progress"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("analyze command missing --%s flag", name)
		}
	}
}

func TestAnalyzeCmd_ShortFlags(t *testing.T) {
	cmd := analyzeCmd()

	shorts := map[string]string{
		"format":  "f",
		"details": "d",
		"config":  "c",
	}
	for name, short := range shorts {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("analyze command missing --%s flag", name)
			continue
		}
		if flag.Shorthand != short {
			t.Errorf("--%s shorthand = %q, want %q", name, flag.Shorthand, short)
		}
	}
}

func TestAnalyzeCmd_RequiresPaths(t *testing.T) {
	cmd := analyzeCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Error("analyze without paths should fail")
	}
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	for _, name := range []string{"multiplier", "semantic", "json", "output-dir", "config", "verbose"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("check command missing --%s flag", name)
		}
	}
}

func TestCheckCmd_ShortFlags(t *testing.T) {
	cmd := checkCmd()

	shorts := map[string]string{
		"multiplier": "m",
		"output-dir": "o",
		"config":     "c",
		"verbose":    "v",
	}
	for name, short := range shorts {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("check command missing --%s flag", name)
			continue
		}
		if flag.Shorthand != short {
			t.Errorf("--%s shorthand = %q, want %q", name, flag.Shorthand, short)
		}
	}
}

func TestCheckCmd_NoPathsIsAnalysisError(t *testing.T) {
	cmd := checkCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("check without paths should fail")
	}
	exitErr, ok := err.(*CheckExitError)
	if !ok {
		t.Fatalf("Expected CheckExitError, got %T", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("Expected exit code 2, got %d", exitErr.Code)
	}
}

func TestCheckCmd_RejectsNonPositiveMultiplier(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "doc.md"), []byte("# Doc"), 0o644); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}
	cfgPath := filepath.Join(dir, "rulescan.yaml")
	if err := os.WriteFile(cfgPath, []byte("threshold:\n  multiplier: 2.0\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cmd := checkCmd()
	cmd.SetArgs([]string{"--multiplier", "0", "--config", cfgPath, dir})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Zero multiplier should be rejected")
	}
	exitErr, ok := err.(*CheckExitError)
	if !ok {
		t.Fatalf("Expected CheckExitError, got %T", err)
	}
	if exitErr.Code != 2 || !strings.Contains(exitErr.Message, "multiplier") {
		t.Errorf("Unexpected error: %+v", exitErr)
	}
}

func TestSemanticCmd_FlagsExist(t *testing.T) {
	cmd := semanticCmd()

	for _, name := range []string{"kind", "config", "no-progress"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("semantic command missing --%s flag", name)
		}
	}
	if flag := cmd.Flags().Lookup("kind"); flag != nil && flag.Shorthand != "k" {
		t.Errorf("--kind shorthand = %q, want k", flag.Shorthand)
	}
}

func TestSemanticCmd_RequiresPaths(t *testing.T) {
	cmd := semanticCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Error("semantic without paths should fail")
	}
}

func TestInitCmd_FlagsExist(t *testing.T) {
	cmd := initCmd()

	for _, name := range []string{"config", "force", "minimal", "interactive"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("init command missing --%s flag", name)
		}
	}
}

func TestInitCmd_DefaultValues(t *testing.T) {
	cmd := initCmd()

	if flag := cmd.Flags().Lookup("config"); flag == nil || flag.DefValue != "rulescan.yaml" {
		t.Error("init --config should default to rulescan.yaml")
	}
	if flag := cmd.Flags().Lookup("force"); flag == nil || flag.DefValue != "false" {
		t.Error("init --force should default to false")
	}
}

func TestInitCmd_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rulescan.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Config file not written: %v", err)
	}
	if !strings.Contains(string(content), "threshold:") {
		t.Error("Generated config should contain a threshold section")
	}
}

func TestInitCmd_RefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rulescan.yaml")
	if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
		t.Fatalf("Failed to seed config: %v", err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", path})
	if err := cmd.Execute(); err == nil {
		t.Error("init should refuse to overwrite without --force")
	}

	forced := initCmd()
	forced.SetArgs([]string{"--config", path, "--force"})
	if err := forced.Execute(); err != nil {
		t.Errorf("init --force should overwrite: %v", err)
	}
}

func TestVersionCmd_VerboseFlag(t *testing.T) {
	cmd := versionCmd()
	if flag := cmd.Flags().Lookup("verbose"); flag == nil || flag.Shorthand != "v" {
		t.Error("version command should have a -v/--verbose flag")
	}
}

func TestCheckExitError_Error(t *testing.T) {
	err := &CheckExitError{Code: 1, Message: "threshold exceeded"}
	if err.Error() != "threshold exceeded" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}
