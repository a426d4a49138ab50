package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	jerrors "github.com/PolarWolf314/joesrsa/internal/errors"
	"github.com/PolarWolf314/joesrsa/internal/ui"
	"github.com/PolarWolf314/joesrsa/internal/utils"
	"github.com/PolarWolf314/joesrsa/internal/workflows"
	"github.com/spf13/cobra"
)

var inspectJSONOutput bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSONOutput, "json", false, "output in JSON format")
}

// resetInspectCommandState resets the inspect command's global state for testing.
func resetInspectCommandState() {
	inspectJSONOutput = false
}

// GetInspectCmd returns the inspect command for testing.
func GetInspectCmd() *cobra.Command {
	return inspectCmd
}

// InspectReport is the JSON shape of one inspected file. Big integers are
// rendered as 0x hex strings so the output survives any JSON parser.
type InspectReport struct {
	Path            string `json:"path"`
	Kind            string `json:"kind"`
	Bits            int    `json:"bits,omitempty"`
	Fingerprint     string `json:"fingerprint,omitempty"`
	Modulus         string `json:"n,omitempty"`
	Exponent        string `json:"e,omitempty"`
	PrivateExponent string `json:"d,omitempty"`
	PrimeP          string `json:"p,omitempty"`
	PrimeQ          string `json:"q,omitempty"`
	Comment         string `json:"comment,omitempty"`
	Format          string `json:"format,omitempty"`
	Version         *int   `json:"version,omitempty"`
	PadBytes        int    `json:"pad_bytes,omitempty"`
	BodyBytes       int    `json:"body_bytes,omitempty"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>...",
	Short: "Show what is inside key and ciphertext files",
	Long: `Classifies each file as a private key, a public key (PEM or SSH), or
joes-rsa ciphertext, and prints the numbers inside. Private keys dump all
five parameters, so only inspect keys you are allowed to see.

Examples:
  joesrsa inspect joesrsa_2048
  joesrsa inspect joesrsa_2048.pub notes.jrsa
  joesrsa inspect --json joesrsa_2048.pub.pem`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting inspect command for %d file(s)", len(args))
		spinner, cleanup := startSpinner("Inspecting files...", verbose)
		defer cleanup()

		result, err := workflows.Inspect(context.Background(), workflows.InspectOptions{Paths: args})
		if err != nil {
			spinner.FinalMSG = formatInspectError(err)
			if isInspectUnexpectedError(err) {
				return err
			}
			return nil
		}

		spinner.FinalMSG = ""
		if inspectJSONOutput {
			return outputInspectJSON(result.Reports)
		}

		outputInspectText(result.Reports)
		return nil
	},
}

// formatInspectError formats an inspect error for display to the user.
func formatInspectError(err error) string {
	switch {
	case errors.Is(err, jerrors.ErrUnknownKeyType):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Expected a PKCS#1 PEM key, an SSH public key line, or joes-rsa ciphertext"

	case errors.Is(err, jerrors.ErrMalformedPEM),
		errors.Is(err, jerrors.ErrMalformedDER),
		errors.Is(err, jerrors.ErrMalformedSSHKey),
		errors.Is(err, jerrors.ErrUnknownFormat),
		errors.Is(err, jerrors.ErrUnsupportedVersion):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to inspect: " + err.Error()
	}
}

// isInspectUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isInspectUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, jerrors.ErrUnknownKeyType),
		errors.Is(err, jerrors.ErrMalformedPEM),
		errors.Is(err, jerrors.ErrMalformedDER),
		errors.Is(err, jerrors.ErrMalformedSSHKey),
		errors.Is(err, jerrors.ErrUnknownFormat),
		errors.Is(err, jerrors.ErrUnsupportedVersion):
		return false
	default:
		return true
	}
}

func buildInspectReport(r workflows.Report) InspectReport {
	out := InspectReport{
		Path:        r.Path,
		Kind:        r.Kind,
		Bits:        r.Bits,
		Fingerprint: r.Fingerprint,
		Comment:     r.Comment,
	}
	if r.Modulus != nil {
		out.Modulus = utils.FormatHex(r.Modulus)
	}
	if r.Exponent != nil {
		out.Exponent = utils.FormatHex(r.Exponent)
	}
	if r.PrivateExponent != nil {
		out.PrivateExponent = utils.FormatHex(r.PrivateExponent)
	}
	if r.PrimeP != nil {
		out.PrimeP = utils.FormatHex(r.PrimeP)
	}
	if r.PrimeQ != nil {
		out.PrimeQ = utils.FormatHex(r.PrimeQ)
	}
	if r.Frame != nil {
		out.Format = "binary"
		if r.Frame.Armored {
			out.Format = "armored"
		}
		version := int(r.Frame.Version)
		out.Version = &version
		out.PadBytes = r.Frame.PadCount
		out.BodyBytes = r.Frame.BodyBytes
	}
	return out
}

func outputInspectJSON(reports []workflows.Report) error {
	out := make([]InspectReport, 0, len(reports))
	for _, r := range reports {
		out = append(out, buildInspectReport(r))
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reports to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputInspectText(reports []workflows.Report) {
	for i, r := range reports {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s  %s\n", ui.Path.Sprint(r.Path), ui.Muted.Sprint(r.Kind))

		if r.Frame != nil {
			format := "binary"
			if r.Frame.Armored {
				format = "armored"
			}
			fmt.Printf("  format:  %s\n", format)
			fmt.Printf("  version: %d\n", r.Frame.Version)
			fmt.Printf("  padding: %d byte(s)\n", r.Frame.PadCount)
			fmt.Printf("  body:    %d byte(s)\n", r.Frame.BodyBytes)
			continue
		}

		fmt.Printf("  bits:        %d\n", r.Bits)
		fmt.Printf("  fingerprint: %s\n", ui.Highlight.Sprint(r.Fingerprint))
		if r.Comment != "" {
			fmt.Printf("  comment:     %s\n", r.Comment)
		}
		fmt.Printf("  e: %s\n", utils.FormatHex(r.Exponent))
		fmt.Printf("  n: %s\n", utils.FormatHex(r.Modulus))
		if r.PrivateExponent != nil {
			fmt.Printf("  d: %s\n", utils.FormatHex(r.PrivateExponent))
			fmt.Printf("  p: %s\n", utils.FormatHex(r.PrimeP))
			fmt.Printf("  q: %s\n", utils.FormatHex(r.PrimeQ))
		}
	}
}
