package workflows

import (
	"fmt"
	"os"
	"path/filepath"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/utils"
)

// readInput reads the whole input, from stdin when path is empty or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return utils.ReadStdin()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// checkDistinctFiles refuses an output path that would clobber the input.
func checkDistinctFiles(inputPath, outputPath string) error {
	if inputPath == "" || inputPath == "-" || outputPath == "" {
		return nil
	}

	inAbs, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", inputPath, err)
	}
	outAbs, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", outputPath, err)
	}

	if inAbs == outAbs {
		return fmt.Errorf("%w: %s", jerrors.ErrSameFile, inputPath)
	}
	return nil
}

// writeOutput writes data to path, or does nothing for an empty path; the
// caller streams result data to stdout in that case.
func writeOutput(path string, data []byte) error {
	if path == "" {
		return nil
	}
	// #nosec G306 -- Ciphertext and fixture files carry no secrets the key doesn't guard.
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// journalPath renders a path for a journal entry, "-" meaning stdin/stdout.
func journalPath(path string) string {
	if path == "" {
		return "-"
	}
	return path
}
