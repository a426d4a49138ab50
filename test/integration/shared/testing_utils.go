// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and running commands against a fresh CLI instance.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/joesrsa/cmd"
	"github.com/PolarWolf314/joesrsa/internal/configs"
	logger "github.com/PolarWolf314/joesrsa/internal/logging"
	"github.com/spf13/cobra"
)

// SetupTestEnvironment sets up the test environment with temporary directories.
func SetupTestEnvironment(t *testing.T, tempDir, tempUserDir, originalWd string, originalUserSettings *configs.UserSettings) {
	// Change to temp directory
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	// Cleanup function to restore original state
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserJoesRSASettings = originalUserSettings
	})

	// Override user settings to use temp directory
	configs.UserJoesRSASettings = &configs.UserSettings{
		UserKeysPath:    filepath.Join(tempUserDir, "keys"),
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
		UserJournalPath: filepath.Join(tempUserDir, "journal.jsonl"),
		Username:        "testuser",
	}
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI creates a complete CLI instance for testing with the specified command.
func CreateTestCLI(subcommand string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	return CreateTestCLIWithArgs(subcommand, nil, stdout, stderr, verboseFlag, debugFlag)
}

// CreateTestCLIWithArgs creates a complete CLI instance for testing with the
// specified command and extra arguments.
func CreateTestCLIWithArgs(subcommand string, args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	// Clear flag state left over from earlier command runs.
	cmd.ResetGlobalState()

	// Set global flags for the actual command (needed for the real command implementations)
	cmd.SetVerbose(verboseFlag)
	cmd.SetDebug(debugFlag)

	// Initialize the logger with the test flags
	cmd.SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	// Create a fresh root command for this test
	rootCmd := &cobra.Command{
		Use:   "joesrsa",
		Short: "Joe's RSA - a from-scratch RSA implementation for learning how the math works.",
	}

	// Use the actual verb commands but with reset state
	subcommands := []*cobra.Command{
		cmd.GetKeygenCmd(),
		cmd.GetEncryptCmd(),
		cmd.GetDecryptCmd(),
		cmd.GetInspectCmd(),
		cmd.GetGendataCmd(),
		cmd.GetLogCmd(),
	}
	for _, subcmd := range subcommands {
		rootCmd.AddCommand(subcmd)
		if stdout != nil {
			subcmd.SetOut(stdout)
		}
		if stderr != nil {
			subcmd.SetErr(stderr)
		}
	}

	// Set output streams
	if stdout != nil {
		rootCmd.SetOut(stdout)
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
	}

	// Set args to run the specified subcommand
	rootCmd.SetArgs(append([]string{subcommand}, args...))

	return rootCmd
}

// GenerateTestKey generates a small deterministic key pair for tests and
// returns the private key path. The public keys sit next to it with
// .pub.pem and .pub suffixes.
func GenerateTestKey(t *testing.T, dir string) string {
	keyPath := filepath.Join(dir, "testkey")

	output, err := CaptureOutput(func() error {
		cmd := CreateTestCLIWithArgs("keygen", []string{"-n", "512", "-s", "1", "-o", keyPath}, nil, nil, false, false)
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("Failed to generate test key: %v\nOutput: %s", err, output)
	}

	if _, err := os.Stat(keyPath); err != nil {
		t.Fatalf("Test key was not written at %s: %v", keyPath, err)
	}

	return keyPath
}

// VerifyKeyFiles verifies that the three key files exist for the given
// private key path.
func VerifyKeyFiles(t *testing.T, keyPath string) {
	if _, err := os.Stat(keyPath); os.IsNotExist(err) {
		t.Errorf("Private key file was not created at %s", keyPath)
	}
	if _, err := os.Stat(keyPath + ".pub.pem"); os.IsNotExist(err) {
		t.Errorf("Public PEM file was not created at %s", keyPath+".pub.pem")
	}
	if _, err := os.Stat(keyPath + ".pub"); os.IsNotExist(err) {
		t.Errorf("SSH public key file was not created at %s", keyPath+".pub")
	}
}
