package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Lawrence-Godfrey/flashcard-generator/internal/format"
	"github.com/Lawrence-Godfrey/flashcard-generator/internal/generate"
	"github.com/Lawrence-Godfrey/flashcard-generator/internal/process"
	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/types"
)

const (
	defaultModel = "gpt-4-turbo"
	defaultStyle = "obsidian-spaced-repetition"
)

var generateCmd = &cobra.Command{
	Use:   "generate [note]",
	Short: "Generate flashcards from a single Markdown note",
	Long: `Generate sends one Markdown note to the configured chat model and prints
the resulting flashcard deck to stdout, or writes it to --output. The deck
uses the Obsidian spaced-repetition format: question, a line with ?, answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("output", "", "write the deck to this file instead of stdout")
	generateCmd.Flags().Bool("print", false, "print the deck to stdout even when --output is set")
	generateCmd.Flags().String("model", "", "chat model identifier (default gpt-4-turbo)")
	generateCmd.Flags().String("api-key", "", "OpenAI API key (overrides OPENAI_API_KEY and .secrets/)")
	generateCmd.Flags().String("base-url", "", "OpenAI-compatible API base URL")
	generateCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	generateCmd.Flags().String("style", "", "card output style (default obsidian-spaced-repetition)")
	generateCmd.Flags().Bool("include-tag", true, "prefix the deck with the #flashcards tag")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	fmtCfg, err := formatConfig(cmd)
	if err != nil {
		return err
	}

	backend, err := generate.NewOpenAIBackend(generatorConfig(cmd))
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if print, _ := cmd.Flags().GetBool("print"); print {
		output = ""
	}
	task := process.FileTask{InputPath: args[0], OutputPath: output}

	_, err = process.ProcessFile(context.Background(), backend, task, fmtCfg, os.Stdout, log)
	return err
}

// generatorConfig resolves model and credentials with flag > config/env >
// .secrets/ precedence.
func generatorConfig(cmd *cobra.Command) types.GeneratorConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("model")
	}
	if model == "" {
		model = defaultModel
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	apiKey = secretDefault("openai-api-key", apiKey)

	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = viper.GetString("base_url")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}

	return types.GeneratorConfig{
		Model:   model,
		APIKey:  apiKey,
		BaseURL: baseURL,
		Timeout: timeout,
	}
}

func formatConfig(cmd *cobra.Command) (types.FormatConfig, error) {
	styleName, _ := cmd.Flags().GetString("style")
	if styleName == "" {
		styleName = viper.GetString("style")
	}
	if styleName == "" {
		styleName = defaultStyle
	}

	style, err := format.ParseStyle(styleName)
	if err != nil {
		return types.FormatConfig{}, err
	}

	includeTag, _ := cmd.Flags().GetBool("include-tag")

	return types.FormatConfig{Style: style, IncludeTag: includeTag}, nil
}
