package cmd

import (
	"context"
	"errors"
	"os"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/ui"
	"github.com/PolarWolf314/joesrsa/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	decryptKey   string
	decryptIn    string
	decryptOut   string
	decryptNoCRT bool
)

func init() {
	decryptCmd.Flags().StringVarP(&decryptKey, "key", "k", "", "private key file (PKCS#1 PEM)")
	decryptCmd.Flags().StringVarP(&decryptIn, "in", "i", "", "ciphertext file (default stdin)")
	decryptCmd.Flags().StringVarP(&decryptOut, "out", "o", "", "plaintext file (default stdout)")
	decryptCmd.Flags().BoolVar(&decryptNoCRT, "no-crt", false, "decrypt with plain m = c^d mod n instead of the CRT shortcut")
}

// resetDecryptCommandState resets the decrypt command's global state for testing.
func resetDecryptCommandState() {
	decryptKey = ""
	decryptIn = ""
	decryptOut = ""
	decryptNoCRT = false
}

// GetDecryptCmd returns the decrypt command for testing.
func GetDecryptCmd() *cobra.Command {
	return decryptCmd
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt joes-rsa data with an RSA private key",
	Long: `Decrypts joes-rsa ciphertext with an RSA private key. Armored and raw
binary input are both detected automatically. Decryption uses the CRT
shortcut through the key's primes; --no-crt forces the plain computation,
which is useful for checking that both paths agree.

Examples:
  joesrsa decrypt -k joesrsa_2048 -i notes.jrsa -o notes.txt
  cat notes.jrsa | joesrsa decrypt -k joesrsa_2048
  joesrsa decrypt -k joesrsa_2048 -i notes.jrsa --no-crt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		spinner, cleanup := startSpinner("Decrypting...", verbose)
		defer cleanup()

		if decryptKey == "" {
			finalMessage := ui.Error.Sprint("✗") + " No key file given\n" +
				ui.Info.Sprint("→") + " Pass a private key with " + ui.Flag.Sprint("-k") + ", e.g. " + ui.Code.Sprint("joesrsa decrypt -k joesrsa_2048")
			spinner.FinalMSG = finalMessage
			return nil
		}

		opts := workflows.DecryptOptions{
			KeyPath:    decryptKey,
			InputPath:  decryptIn,
			OutputPath: decryptOut,
			NoCRT:      decryptNoCRT,
		}

		result, err := workflows.Decrypt(context.Background(), opts)
		if err != nil {
			spinner.FinalMSG = formatDecryptError(err)
			if isDecryptUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Infof("Decrypted %d bytes in %s mode", result.PlaintextBytes, result.Mode)

		// No output path means the plaintext itself is the output.
		if result.OutputPath == "" {
			spinner.Stop()
			if _, err := os.Stdout.Write(result.Data); err != nil {
				return Logger.ErrorfAndReturn("Failed to write plaintext to stdout: %v", err)
			}
			return nil
		}

		finalMessage := ui.Success.Sprint("✓") + " Decrypted " + ui.Highlight.Sprintf("%d bytes", result.PlaintextBytes) + " (" + result.Mode + ")\n" +
			"    output: " + ui.Path.Sprint(result.OutputPath)

		spinner.FinalMSG = finalMessage
		return nil
	},
}

// formatDecryptError formats a decrypt error for display to the user.
func formatDecryptError(err error) string {
	switch {
	case errors.Is(err, jerrors.ErrSameFile):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Decrypting a file onto itself would destroy the ciphertext"

	case errors.Is(err, jerrors.ErrUnknownFormat):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The input does not look like it was produced by " + ui.Code.Sprint("joesrsa encrypt")

	case errors.Is(err, jerrors.ErrChunkSizeMismatch):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The data is truncated, or it was encrypted with a different key size"

	case errors.Is(err, jerrors.ErrMalformedPEM),
		errors.Is(err, jerrors.ErrMalformedDER),
		errors.Is(err, jerrors.ErrUnknownKeyType),
		errors.Is(err, jerrors.ErrUnsupportedVersion):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to decrypt: " + err.Error()
	}
}

// isDecryptUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isDecryptUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, jerrors.ErrSameFile),
		errors.Is(err, jerrors.ErrUnknownFormat),
		errors.Is(err, jerrors.ErrChunkSizeMismatch),
		errors.Is(err, jerrors.ErrMalformedPEM),
		errors.Is(err, jerrors.ErrMalformedDER),
		errors.Is(err, jerrors.ErrUnknownKeyType),
		errors.Is(err, jerrors.ErrUnsupportedVersion):
		return false
	default:
		return true
	}
}
