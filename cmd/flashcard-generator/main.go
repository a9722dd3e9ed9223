// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the flashcard-generator CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Lawrence-Godfrey/flashcard-generator/internal/secrets"
	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the flashcard-generator CLI.
var rootCmd = &cobra.Command{
	Use:   "flashcard-generator",
	Short: "Generate spaced-repetition flashcards from Markdown notes",
	Long: `flashcard-generator turns Markdown notes into spaced-repetition flashcard
decks. Each note is sent to a chat model that extracts question/answer pairs,
and the pairs are written back as Markdown decks compatible with the Obsidian
spaced-repetition plugin.

Use generate for a single note, batch for a whole notes directory, and
history to inspect past batch runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./flashcard-generator.yaml or ~/.config/flashcard-generator/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("flashcard-generator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "flashcard-generator"))
		}
	}

	viper.SetEnvPrefix("FLASHCARDS")
	viper.AutomaticEnv()
	viper.BindEnv("api_key", "OPENAI_API_KEY")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the logger shared by all subcommands, honoring --verbose.
func newLogger(cmd *cobra.Command) *logger.Logger {
	log := logger.New()
	verbose, _ := cmd.Flags().GetBool("verbose")
	log.SetVerbose(verbose)
	return log
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
