package log_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/joesrsa/internal/configs"
	"github.com/PolarWolf314/joesrsa/test/integration/shared"
)

// TestLogIntegration contains integration tests for the `joesrsa log` command.
func TestLogIntegration(t *testing.T) {
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}

	originalUserSettings := configs.UserJoesRSASettings

	t.Run("LogEmptyJournal", func(t *testing.T) {
		testLogEmptyJournal(t, originalWd, originalUserSettings)
	})

	t.Run("LogShowsOperations", func(t *testing.T) {
		testLogShowsOperations(t, originalWd, originalUserSettings)
	})

	t.Run("LogLimitsEntries", func(t *testing.T) {
		testLogLimitsEntries(t, originalWd, originalUserSettings)
	})

	t.Run("LogReverseOrder", func(t *testing.T) {
		testLogReverseOrder(t, originalWd, originalUserSettings)
	})

	t.Run("LogFiltersByOperation", func(t *testing.T) {
		testLogFiltersByOperation(t, originalWd, originalUserSettings)
	})

	t.Run("LogOnelineFormat", func(t *testing.T) {
		testLogOnelineFormat(t, originalWd, originalUserSettings)
	})

	t.Run("LogJSONFormat", func(t *testing.T) {
		testLogJSONFormat(t, originalWd, originalUserSettings)
	})

	t.Run("LogRejectsBadDate", func(t *testing.T) {
		testLogRejectsBadDate(t, originalWd, originalUserSettings)
	})
}

// runLogCmd runs the log command with the given args and returns its
// combined output.
func runLogCmd(t *testing.T, args ...string) string {
	output, err := shared.CaptureOutput(func() error {
		cmd := shared.CreateTestCLIWithArgs("log", args, nil, nil, false, false)
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v\nOutput: %s", err, output)
	}
	return output
}

// seedJournal runs a keygen and an encrypt so the journal holds two entries,
// keygen first.
func seedJournal(t *testing.T, tempDir string) {
	keyPath := shared.GenerateTestKey(t, tempDir)

	plainPath := filepath.Join(tempDir, "plain.txt")
	cipherPath := filepath.Join(tempDir, "plain.jrsa")
	// #nosec G306 -- Writing a file that should be modifiable.
	if err := os.WriteFile(plainPath, []byte("hello world\n"), 0644); err != nil {
		t.Fatalf("Failed to write plaintext: %v", err)
	}

	output, err := shared.CaptureOutput(func() error {
		cmd := shared.CreateTestCLIWithArgs("encrypt", []string{"-k", keyPath + ".pub.pem", "-i", plainPath, "-o", cipherPath}, nil, nil, false, false)
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("Failed to encrypt: %v\nOutput: %s", err, output)
	}
}

// testLogEmptyJournal tests log output when nothing has run yet.
func testLogEmptyJournal(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, err := os.MkdirTemp("", "joesrsa-test-log-empty-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tempUserDir, err := os.MkdirTemp("", "joesrsa-user-*")
	if err != nil {
		t.Fatalf("Failed to create temp user directory: %v", err)
	}
	defer os.RemoveAll(tempUserDir)

	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)

	output := runLogCmd(t)

	if !strings.Contains(output, "No journal entries found.") {
		t.Errorf("Expected empty journal message, got: %s", output)
	}
}

// testLogShowsOperations tests that keygen and encrypt runs appear.
func testLogShowsOperations(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, err := os.MkdirTemp("", "joesrsa-test-log-ops-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tempUserDir, err := os.MkdirTemp("", "joesrsa-user-*")
	if err != nil {
		t.Fatalf("Failed to create temp user directory: %v", err)
	}
	defer os.RemoveAll(tempUserDir)

	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	seedJournal(t, tempDir)

	output := runLogCmd(t)

	if !strings.Contains(output, "keygen") {
		t.Errorf("Expected keygen entry in log output: %s", output)
	}
	if !strings.Contains(output, "encrypt") {
		t.Errorf("Expected encrypt entry in log output: %s", output)
	}
	if !strings.Contains(output, "512 bits") {
		t.Errorf("Expected keygen details in log output: %s", output)
	}
	if !strings.Contains(output, "armored") {
		t.Errorf("Expected encrypt mode in log output: %s", output)
	}
}

// testLogLimitsEntries tests the -n flag keeps the most recent entries.
func testLogLimitsEntries(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, err := os.MkdirTemp("", "joesrsa-test-log-limit-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tempUserDir, err := os.MkdirTemp("", "joesrsa-user-*")
	if err != nil {
		t.Fatalf("Failed to create temp user directory: %v", err)
	}
	defer os.RemoveAll(tempUserDir)

	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	seedJournal(t, tempDir)

	output := runLogCmd(t, "-n", "1")

	if !strings.Contains(output, "encrypt") {
		t.Errorf("Expected the most recent entry to survive the limit: %s", output)
	}
	if strings.Contains(output, "keygen") {
		t.Errorf("Expected older entries to be cut by the limit: %s", output)
	}
}

// testLogReverseOrder tests --reverse puts the newest entry first.
func testLogReverseOrder(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, err := os.MkdirTemp("", "joesrsa-test-log-reverse-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tempUserDir, err := os.MkdirTemp("", "joesrsa-user-*")
	if err != nil {
		t.Fatalf("Failed to create temp user directory: %v", err)
	}
	defer os.RemoveAll(tempUserDir)

	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	seedJournal(t, tempDir)

	output := runLogCmd(t, "--reverse")

	encryptIdx := strings.Index(output, "encrypt")
	keygenIdx := strings.Index(output, "keygen")
	if encryptIdx == -1 || keygenIdx == -1 {
		t.Fatalf("Expected both entries in log output: %s", output)
	}
	if encryptIdx > keygenIdx {
		t.Errorf("Expected newest entry first with --reverse: %s", output)
	}
}

// testLogFiltersByOperation tests --operation filtering.
func testLogFiltersByOperation(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, err := os.MkdirTemp("", "joesrsa-test-log-filter-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tempUserDir, err := os.MkdirTemp("", "joesrsa-user-*")
	if err != nil {
		t.Fatalf("Failed to create temp user directory: %v", err)
	}
	defer os.RemoveAll(tempUserDir)

	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	seedJournal(t, tempDir)

	output := runLogCmd(t, "--operation", "keygen")

	if !strings.Contains(output, "keygen") {
		t.Errorf("Expected keygen entry to pass the filter: %s", output)
	}
	if strings.Contains(output, "encrypt") {
		t.Errorf("Expected encrypt entry to be filtered out: %s", output)
	}

	output = runLogCmd(t, "--operation", "decrypt")

	if !strings.Contains(output, "No journal entries found matching the filters.") {
		t.Errorf("Expected no-match message, got: %s", output)
	}
}

// testLogOnelineFormat tests the compact format drops the fingerprint.
func testLogOnelineFormat(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, err := os.MkdirTemp("", "joesrsa-test-log-oneline-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tempUserDir, err := os.MkdirTemp("", "joesrsa-user-*")
	if err != nil {
		t.Fatalf("Failed to create temp user directory: %v", err)
	}
	defer os.RemoveAll(tempUserDir)

	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	seedJournal(t, tempDir)

	output := runLogCmd(t, "--oneline")

	if !strings.Contains(output, "512 bits") {
		t.Errorf("Expected compact keygen details: %s", output)
	}
	if strings.Contains(output, "SHA256:") {
		t.Errorf("Expected oneline format to drop the fingerprint: %s", output)
	}
}

// testLogJSONFormat tests --json produces a parseable array.
func testLogJSONFormat(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, err := os.MkdirTemp("", "joesrsa-test-log-json-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tempUserDir, err := os.MkdirTemp("", "joesrsa-user-*")
	if err != nil {
		t.Fatalf("Failed to create temp user directory: %v", err)
	}
	defer os.RemoveAll(tempUserDir)

	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	seedJournal(t, tempDir)

	output := runLogCmd(t, "--json")

	var entries []map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &entries); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 journal entries, got %d", len(entries))
	}
	if entries[0]["op"] != "keygen" {
		t.Errorf("Expected first entry to be keygen, got %v", entries[0]["op"])
	}
	if entries[1]["op"] != "encrypt" {
		t.Errorf("Expected second entry to be encrypt, got %v", entries[1]["op"])
	}
	if _, ok := entries[0]["ts"]; !ok {
		t.Errorf("Expected entries to carry a timestamp")
	}
}

// testLogRejectsBadDate tests the date format validation.
func testLogRejectsBadDate(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir, err := os.MkdirTemp("", "joesrsa-test-log-baddate-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tempUserDir, err := os.MkdirTemp("", "joesrsa-user-*")
	if err != nil {
		t.Fatalf("Failed to create temp user directory: %v", err)
	}
	defer os.RemoveAll(tempUserDir)

	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)

	output, err := shared.CaptureOutput(func() error {
		cmd := shared.CreateTestCLIWithArgs("log", []string{"--since", "banana"}, nil, nil, false, false)
		return cmd.Execute()
	})
	if err != nil {
		t.Errorf("Command failed unexpectedly: %v", err)
	}

	if !strings.Contains(output, "invalid date format") {
		t.Errorf("Expected date format refusal in output: %s", output)
	}
}
