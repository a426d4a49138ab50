package cmd

import (
	"context"
	"errors"
	"math/big"
	"strconv"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/ui"
	"github.com/PolarWolf314/joesrsa/internal/utils"
	"github.com/PolarWolf314/joesrsa/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	keygenBits     int
	keygenExponent *big.Int
	keygenRounds   int
	keygenPrimes   []*big.Int
	keygenSeed     string
	keygenOut      string
	keygenComment  string
	keygenForce    bool
)

func init() {
	keygenCmd.Flags().IntVarP(&keygenBits, "bits", "n", 0, "modulus size in bits (default from config)")
	keygenCmd.Flags().VarP(newBigIntValue(&keygenExponent), "exponent", "e", "public exponent, decimal or 0x hex (default from config)")
	keygenCmd.Flags().IntVarP(&keygenRounds, "rounds", "m", 0, "Miller-Rabin rounds per primality test (default from config)")
	keygenCmd.Flags().VarP(newBigIntSliceValue(&keygenPrimes), "primes", "p", "build the key from these two primes instead of searching")
	keygenCmd.Flags().StringVarP(&keygenSeed, "seed", "s", "", "seed for deterministic generation (insecure, testing only)")
	keygenCmd.Flags().StringVarP(&keygenOut, "out", "o", "", "private key path; the public keys get .pub.pem and .pub")
	keygenCmd.Flags().StringVar(&keygenComment, "comment", "", "comment for the SSH public key (default user@host)")
	keygenCmd.Flags().BoolVarP(&keygenForce, "force", "f", false, "overwrite existing key files")
}

// resetKeygenCommandState resets the keygen command's global state for testing.
func resetKeygenCommandState() {
	keygenBits = 0
	keygenExponent = nil
	keygenRounds = 0
	keygenPrimes = nil
	keygenSeed = ""
	keygenOut = ""
	keygenComment = ""
	keygenForce = false
}

// GetKeygenCmd returns the keygen command for testing.
func GetKeygenCmd() *cobra.Command {
	return keygenCmd
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an RSA key pair and write it in PEM and SSH form",
	Long: `Generates an RSA key pair by searching for two random primes, then writes
the private key (PKCS#1 PEM), the public key (PKCS#1 PEM), and an OpenSSH
public key line.

Examples:
  joesrsa keygen                          # 2048-bit key in the default key directory
  joesrsa keygen -n 1024 -o ./toy         # 1024-bit key at ./toy, ./toy.pub.pem, ./toy.pub
  joesrsa keygen -e 0x10001 -m 128        # explicit exponent and Miller-Rabin rounds
  joesrsa keygen -p 0xd3,0xe5 -e 5        # build a toy key from known primes
  joesrsa keygen -s 42 -n 512             # deterministic key for reproducing a test`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")
		spinner, cleanup := startSpinner("Generating RSA key pair...", verbose)
		defer cleanup()

		opts := workflows.KeygenOptions{
			Bits:       keygenBits,
			Exponent:   keygenExponent,
			Rounds:     keygenRounds,
			Primes:     keygenPrimes,
			OutputPath: keygenOut,
			Comment:    keygenComment,
			Force:      keygenForce,
		}

		if keygenSeed != "" {
			seed, err := strconv.ParseInt(keygenSeed, 10, 64)
			if err != nil {
				return Logger.ErrorfAndReturn("Invalid --seed value %q: must be an integer", keygenSeed)
			}
			opts.Seed = &seed

			spinner.Stop()
			Logger.WarnfUser("Seeded generation is deterministic - never use these keys for anything real")
			spinner.Restart()
		}

		Logger.Debugf("Keygen options: bits=%d rounds=%d primes=%d force=%t", keygenBits, keygenRounds, len(keygenPrimes), keygenForce)

		result, err := workflows.Keygen(context.Background(), opts)
		if err != nil {
			spinner.FinalMSG = formatKeygenError(err)
			if isKeygenUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Infof("Generated %d-bit key pair with fingerprint %s", result.Bits, result.Fingerprint)

		finalMessage := ui.Success.Sprint("✓") + " Generated a " + ui.Highlight.Sprintf("%d-bit", result.Bits) + " RSA key pair (e=" + utils.FormatHex(result.Exponent) + "):\n" +
			"    private: " + ui.Path.Sprint(result.Files.PrivatePath) + "\n" +
			"    public:  " + ui.Path.Sprint(result.Files.PublicPEMPath) + "\n" +
			"    ssh:     " + ui.Path.Sprint(result.Files.SSHPath) + "\n" +
			"    fingerprint: " + ui.Highlight.Sprint(result.Fingerprint)
		if result.Seeded {
			finalMessage += "\n" + ui.Warning.Sprint("[insecure]") + " generated from a fixed seed"
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}

// formatKeygenError formats a keygen error for display to the user.
func formatKeygenError(err error) string {
	switch {
	case errors.Is(err, jerrors.ErrKeyFileExists):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("joesrsa keygen --force") + " to overwrite"

	case errors.Is(err, jerrors.ErrInvalidBits):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Pick a larger size, e.g. " + ui.Code.Sprint("joesrsa keygen --bits 2048")

	case errors.Is(err, jerrors.ErrInvalidExponent):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The exponent must be odd and at least 3, e.g. " + ui.Flag.Sprint("-e 65537")

	case errors.Is(err, jerrors.ErrPrimesNotDistinct):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Pass two different primes with " + ui.Flag.Sprint("--primes")

	default:
		return ui.Error.Sprint("✗") + " Failed to generate key pair: " + err.Error()
	}
}

// isKeygenUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isKeygenUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, jerrors.ErrKeyFileExists),
		errors.Is(err, jerrors.ErrInvalidBits),
		errors.Is(err, jerrors.ErrInvalidExponent),
		errors.Is(err, jerrors.ErrPrimesNotDistinct):
		return false
	default:
		return true
	}
}
