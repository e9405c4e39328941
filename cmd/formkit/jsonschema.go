package main

import (
	"github.com/spf13/cobra"

	"github.com/reoring/formkit/loader"
)

var jsonschemaCmd = &cobra.Command{
	Use:   "jsonschema",
	Short: "Print the JSON Schema equivalent of the descriptor document",
	RunE:  runJSONSchema,
}

func init() {
	rootCmd.AddCommand(jsonschemaCmd)
}

func runJSONSchema(cmd *cobra.Command, args []string) error {
	s, err := loader.Schema(descriptorFile)
	if err != nil {
		return err
	}
	doc, err := s.JSONSchema()
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), doc)
}
