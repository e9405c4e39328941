package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reoring/formkit/form"
	"github.com/reoring/formkit/loader"
)

const (
	checkMark = "✓"
	crossMark = "✗"
)

var errRecordInvalid = errors.New("record failed validation")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a record against the descriptor document",
	Long: `Load a candidate record (JSON or YAML object), feed every member into a
form built from the descriptor document, and run full-form validation.

Members that are not declared fields are reported and ignored. Exits with
status 1 when any field fails.

Examples:
  formkit check -d signup.yaml -r submission.json
  formkit check -d signup.yaml -r submission.yaml --json`,
	RunE: runCheck,
}

var (
	recordFile string
	checkJSON  bool
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&recordFile, "record", "r", "", "record document (.json, .yaml, .yml)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print errors as a JSON object")
	_ = checkCmd.MarkFlagRequired("record")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ok, err := checkRecord(cmd.OutOrStdout(), descriptorFile, recordFile, checkJSON)
	if err != nil {
		return err
	}
	if !ok {
		return errRecordInvalid
	}
	return nil
}

// checkRecord validates the record file against the descriptor file and
// prints the outcome. The bool reports whether the record passed.
func checkRecord(w io.Writer, descriptorPath, recordPath string, asJSON bool) (bool, error) {
	s, err := loader.Schema(descriptorPath)
	if err != nil {
		return false, err
	}
	rec, err := loader.RecordFile(recordPath)
	if err != nil {
		return false, err
	}

	f := form.New(s, nil, form.WithLogger(logger))
	for _, name := range s.Names() {
		if v, ok := rec[name]; ok {
			f.SetValue(name, v)
		}
	}
	for name := range rec {
		if _, ok := s.Field(name); !ok {
			logger.Warn().Str("field", name).Msg("record member is not a declared field; ignored")
		}
	}

	errs := f.ValidateErrors()
	if asJSON {
		return len(errs) == 0, writeJSON(w, errs)
	}
	for _, name := range s.Names() {
		if msg, failed := errs[name]; failed {
			fmt.Fprintf(w, "  %s %s: %s\n", crossMark, name, msg)
		} else {
			fmt.Fprintf(w, "  %s %s\n", checkMark, name)
		}
	}
	if msg, ok := errs[form.FormErrorKey]; ok {
		fmt.Fprintf(w, "  %s form: %s\n", crossMark, msg)
	}
	return len(errs) == 0, nil
}
