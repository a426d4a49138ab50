package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/journal"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered journal entries.
	Entries []journal.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the journal.
//
// A missing journal yields an empty result rather than an error.
// Returns ErrInvalidDate if a date filter is not YYYY-MM-DD.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	entries, err := journal.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	if len(entries) == 0 {
		result.Entries = entries
		return result, nil
	}

	// Apply filters.
	filtered := entries

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterByOperations(filtered, ops)
	}

	if opts.Since != "" {
		sinceTime, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", jerrors.ErrInvalidDate)
		}
		filtered = filterSince(filtered, sinceTime)
	}

	if opts.Until != "" {
		untilTime, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", jerrors.ErrInvalidDate)
		}
		// Include the entire day by setting to end of day.
		untilTime = untilTime.Add(24*time.Hour - time.Nanosecond)
		filtered = filterUntil(filtered, untilTime)
	}

	// Apply ordering.
	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// Apply limit.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

// filterByOperations filters entries by operation types.
func filterByOperations(entries []journal.Entry, ops []string) []journal.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(op)] = true
	}

	var result []journal.Entry
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

// filterSince filters entries to only include those at or after the given time.
func filterSince(entries []journal.Entry, since time.Time) []journal.Entry {
	var result []journal.Entry
	for _, e := range entries {
		t, err := time.Parse("2006-01-02T15:04:05.000000Z", e.Timestamp)
		if err != nil {
			// Try alternate format.
			t, err = time.Parse(time.RFC3339, e.Timestamp)
		}
		if err != nil {
			continue
		}
		if !t.Before(since) {
			result = append(result, e)
		}
	}
	return result
}

// filterUntil filters entries to only include those at or before the given time.
func filterUntil(entries []journal.Entry, until time.Time) []journal.Entry {
	var result []journal.Entry
	for _, e := range entries {
		t, err := time.Parse("2006-01-02T15:04:05.000000Z", e.Timestamp)
		if err != nil {
			// Try alternate format.
			t, err = time.Parse(time.RFC3339, e.Timestamp)
		}
		if err != nil {
			continue
		}
		if !t.After(until) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format("2006-01-02")
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a log entry in verbose format.
func FormatDetails(e journal.Entry) string {
	switch e.Operation {
	case "keygen":
		details := fmt.Sprintf("%d bits, e=%s", e.Bits, e.Exponent)
		if e.Seeded {
			details += ", seeded"
		}
		if e.Fingerprint != "" {
			details += ", " + e.Fingerprint
		}
		return details
	case "encrypt", "decrypt":
		details := fmt.Sprintf("%s, %d bytes", e.Mode, e.Bytes)
		if e.InputPath != "" {
			details += ", " + e.InputPath
		}
		return details
	default:
		return ""
	}
}

// FormatDetailsOneline formats the details for a log entry in oneline format.
func FormatDetailsOneline(e journal.Entry) string {
	switch e.Operation {
	case "keygen":
		return fmt.Sprintf("%d bits", e.Bits)
	case "encrypt", "decrypt":
		return fmt.Sprintf("%s, %d bytes", e.Mode, e.Bytes)
	default:
		return ""
	}
}
