package main

import (
	"github.com/spf13/cobra"

	"github.com/reoring/formkit/loader"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Print the initial-values record",
	Long: `Compile the descriptor document and print the value every field starts
with: explicit initialValue entries verbatim, kind defaults otherwise.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := loader.Schema(descriptorFile)
	if err != nil {
		return err
	}
	logger.Debug().Str("descriptor", descriptorFile).Int("fields", s.Len()).Msg("schema built")
	return writeJSON(cmd.OutOrStdout(), s.InitialValues())
}
