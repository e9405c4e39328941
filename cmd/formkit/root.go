package main

import (
	"fmt"
	"io"
	"os"
	"time"

	j "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/formkit/i18n"
)

var (
	// Global flags
	descriptorFile string
	verbose        bool
	lang           string

	logger = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "formkit",
	Short: "Compile field descriptors and validate records against them",
	Long: `formkit reads a descriptor document (JSON or YAML) declaring named
fields with kinds and constraints, and derives a validator and initial
values from it.

Examples:
  formkit init -d signup.yaml
  formkit check -d signup.yaml -r submission.json
  formkit jsonschema -d signup.yaml
  formkit watch -d signup.yaml -r submission.json`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()
		i18n.SetLanguage(lang)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&descriptorFile, "descriptor", "d", "fields.yaml", "descriptor document (.json, .yaml, .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "language for built-in messages (en, ja)")
}

func writeJSON(w io.Writer, v any) error {
	b, err := j.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
