package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/journal"
	"github.com/PolarWolf314/joesrsa/internal/ui"
	"github.com/PolarWolf314/joesrsa/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

// GetLogCmd returns the log command for testing.
func GetLogCmd() *cobra.Command {
	return logCmd
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the operation journal",
	Long: `Displays the journal of keygen, encrypt, and decrypt runs on this
machine. Use filters to narrow down the results.

Examples:
  joesrsa log                        # View full journal
  joesrsa log -n 10                  # Last 10 entries
  joesrsa log --reverse              # Most recent first
  joesrsa log --operation keygen     # Only key generation
  joesrsa log --since 2025-01-01     # Filter by date
  joesrsa log --json                 # JSON output`,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading journal...", verbose)
	defer cleanup()

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		spinner.FinalMSG = formatLogError(err)
		if isLogUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from journal", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			spinner.FinalMSG = ""
			fmt.Println("No journal entries found.")
		} else {
			spinner.FinalMSG = ""
			fmt.Println("No journal entries found matching the filters.")
		}
		return nil
	}

	// Output.
	spinner.FinalMSG = ""
	if logJSON {
		if err := outputLogJSON(result.Entries); err != nil {
			return err
		}
		return nil
	}

	if logOneline {
		outputLogOneline(result.Entries)
		return nil
	}

	outputLogDefault(result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, jerrors.ErrInvalidDate):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to read journal: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, jerrors.ErrInvalidDate):
		return false
	default:
		return true
	}
}

// shortInstallID trims an install UUID down to a readable column width.
func shortInstallID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}

func outputLogJSON(entries []journal.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []journal.Entry) {
	for _, e := range entries {
		date := workflows.FormatDate(e.Timestamp)
		details := workflows.FormatDetailsOneline(e)
		fmt.Printf("%s %s %s\n", date, e.Operation, details)
	}
}

func outputLogDefault(entries []journal.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-8s  %-8s  %s\n", datetime, shortInstallID(e.InstallID), e.Operation, details)
	}
}
