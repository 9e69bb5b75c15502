package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kobzevvv/rulescan/internal/config"
	"github.com/kobzevvv/rulescan/internal/constants"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a rulescan configuration file",
		Long: `Generate a documented rulescan configuration file with sensible defaults.

By default, creates rulescan.yaml in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create rulescan.yaml in current directory
  rulescan init

  # Custom output path
  rulescan init --config custom.yaml

  # Overwrite existing file
  rulescan init --force

  # Generate smaller config with essential options only
  rulescan init --minimal

  # Interactive setup wizard
  rulescan init --interactive
  rulescan init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	corpusType := config.CorpusTypeGeneric
	strictness := config.StrictnessStandard

	if interactive {
		var err error
		var interactiveConfigPath string
		corpusType, strictness, interactiveConfigPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
		configPath = interactiveConfigPath
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(corpusType, strictness)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'rulescan check .' to check your rule documents.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.CorpusType, config.Strictness, string, error) {
	fmt.Println()
	fmt.Println("rulescan Configuration Setup")
	fmt.Println("============================")
	fmt.Println()

	corpusTypes := []struct {
		Label string
		Value config.CorpusType
	}{
		{"Generic rule documents (.md and .mdc)", config.CorpusTypeGeneric},
		{"Cursor rules (.mdc)", config.CorpusTypeCursorRules},
		{"Agent instruction docs (.md)", config.CorpusTypeAgentDocs},
	}

	corpusTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	corpusPrompt := promptui.Select{
		Label:     "What kind of documents are you scanning?",
		Items:     corpusTypes,
		Templates: corpusTemplates,
	}

	corpusIdx, _, err := corpusPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("corpus selection cancelled: %w", err)
	}
	selectedCorpus := corpusTypes[corpusIdx].Value

	fmt.Println()

	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "Thresholds at 2x baseline", config.StrictnessStandard},
		{"Relaxed", "Thresholds at 3x baseline, fewer failures", config.StrictnessRelaxed},
		{"Strict", "Thresholds at 1.5x baseline, CI enforcement", config.StrictnessStrict},
	}

	strictnessTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	strictnessPrompt := promptui.Select{
		Label:     "How strict should the gate be?",
		Items:     strictnessLevels,
		Templates: strictnessTemplates,
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}
	selectedStrictness := strictnessLevels[strictnessIdx].Value

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... ", outputPath)

	return selectedCorpus, selectedStrictness, outputPath, nil
}
