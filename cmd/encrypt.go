package cmd

import (
	"context"
	"errors"
	"os"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/ui"
	"github.com/PolarWolf314/joesrsa/internal/utils"
	"github.com/PolarWolf314/joesrsa/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	encryptKey    string
	encryptIn     string
	encryptOut    string
	encryptBinary bool
)

func init() {
	encryptCmd.Flags().StringVarP(&encryptKey, "key", "k", "", "public key file (SSH line, PKCS#1 PEM, or a private key)")
	encryptCmd.Flags().StringVarP(&encryptIn, "in", "i", "", "plaintext file (default stdin)")
	encryptCmd.Flags().StringVarP(&encryptOut, "out", "o", "", "ciphertext file (default stdout)")
	encryptCmd.Flags().BoolVarP(&encryptBinary, "binary", "b", false, "write raw binary ciphertext instead of armored text")
}

// resetEncryptCommandState resets the encrypt command's global state for testing.
func resetEncryptCommandState() {
	encryptKey = ""
	encryptIn = ""
	encryptOut = ""
	encryptBinary = false
}

// GetEncryptCmd returns the encrypt command for testing.
func GetEncryptCmd() *cobra.Command {
	return encryptCmd
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt data with an RSA public key",
	Long: `Encrypts data with an RSA public key, block by block, and frames the
result in the joes-rsa ciphertext format. The output is armored text by
default so it survives copy-paste; -b writes the raw bytes instead.

Examples:
  joesrsa encrypt -k key.pub -i notes.txt -o notes.jrsa
  joesrsa gendata | joesrsa encrypt -k key.pub -o filler.jrsa
  joesrsa encrypt -k key.pub -i notes.txt -b -o notes.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		spinner, cleanup := startSpinner("Encrypting...", verbose)
		defer cleanup()

		if encryptKey == "" {
			finalMessage := ui.Error.Sprint("✗") + " No key file given\n" +
				ui.Info.Sprint("→") + " Pass a public key with " + ui.Flag.Sprint("-k") + ", e.g. " + ui.Code.Sprint("joesrsa encrypt -k joesrsa_2048.pub")
			spinner.FinalMSG = finalMessage
			return nil
		}

		// Raw ciphertext on a terminal would just garble it.
		if encryptBinary && encryptOut == "" && utils.IsOutputTerminal() {
			finalMessage := ui.Error.Sprint("✗") + " Refusing to write binary ciphertext to a terminal\n" +
				ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("-o") + " or pipe the output somewhere"
			spinner.FinalMSG = finalMessage
			return nil
		}

		opts := workflows.EncryptOptions{
			KeyPath:    encryptKey,
			InputPath:  encryptIn,
			OutputPath: encryptOut,
			Binary:     encryptBinary,
		}

		result, err := workflows.Encrypt(context.Background(), opts)
		if err != nil {
			spinner.FinalMSG = formatEncryptError(err)
			if isEncryptUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Infof("Encrypted %d bytes in %s mode with key %s", result.PlaintextBytes, result.Mode, result.Fingerprint)

		// No output path means the ciphertext itself is the output.
		if result.OutputPath == "" {
			spinner.Stop()
			if _, err := os.Stdout.Write(result.Data); err != nil {
				return Logger.ErrorfAndReturn("Failed to write ciphertext to stdout: %v", err)
			}
			return nil
		}

		finalMessage := ui.Success.Sprint("✓") + " Encrypted " + ui.Highlight.Sprintf("%d bytes", result.PlaintextBytes) + " (" + result.Mode + ")\n" +
			"    key:    " + ui.Path.Sprint(encryptKey) + " " + ui.Muted.Sprint(result.Fingerprint) + "\n" +
			"    output: " + ui.Path.Sprint(result.OutputPath)

		spinner.FinalMSG = finalMessage
		return nil
	},
}

// formatEncryptError formats an encrypt error for display to the user.
func formatEncryptError(err error) string {
	switch {
	case errors.Is(err, jerrors.ErrSameFile):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Encrypting a file onto itself would destroy the plaintext"

	case errors.Is(err, jerrors.ErrUnknownKeyType):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Expected an SSH public key line or a PKCS#1 PEM file"

	case errors.Is(err, jerrors.ErrMalformedPEM),
		errors.Is(err, jerrors.ErrMalformedSSHKey),
		errors.Is(err, jerrors.ErrMalformedDER),
		errors.Is(err, jerrors.ErrUnsupportedVersion):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, jerrors.ErrInvalidBits):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The key's modulus is too small to carry even one block of data"

	default:
		return ui.Error.Sprint("✗") + " Failed to encrypt: " + err.Error()
	}
}

// isEncryptUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isEncryptUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, jerrors.ErrSameFile),
		errors.Is(err, jerrors.ErrUnknownKeyType),
		errors.Is(err, jerrors.ErrMalformedPEM),
		errors.Is(err, jerrors.ErrMalformedSSHKey),
		errors.Is(err, jerrors.ErrMalformedDER),
		errors.Is(err, jerrors.ErrUnsupportedVersion),
		errors.Is(err, jerrors.ErrInvalidBits):
		return false
	default:
		return true
	}
}
