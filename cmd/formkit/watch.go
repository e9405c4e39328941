package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reoring/formkit/loader"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run check whenever the descriptor or record file changes",
	Long: `Run check once, then again every time either file is saved. Stops on
interrupt.

Examples:
  formkit watch -d signup.yaml -r submission.json`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&recordFile, "record", "r", "", "record document (.json, .yaml, .yml)")
	_ = watchCmd.MarkFlagRequired("record")
}

func runWatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	run := func() {
		fmt.Fprintf(out, "Checking %s against %s...\n", recordFile, descriptorFile)
		ok, err := checkRecord(out, descriptorFile, recordFile, false)
		switch {
		case err != nil:
			logger.Error().Err(err).Msg("check failed")
		case ok:
			fmt.Fprintln(out, "Record is valid.")
		default:
			fmt.Fprintln(out, "Record is invalid.")
		}
	}
	run()

	w, err := loader.NewWatcher([]string{descriptorFile, recordFile}, func(string) { run() }, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	<-sigCh
	logger.Info().Msg("stopping watch")
	return nil
}
