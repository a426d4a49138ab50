package cmd

import (
	"fmt"

	logger "github.com/PolarWolf314/joesrsa/internal/logging"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "joesrsa",
		Short: "Joe's RSA - a from-scratch RSA implementation for learning how the math works.",
		Long: `Joe's RSA is a from-scratch RSA toolkit built for learning. Every layer
is implemented by hand: modular exponentiation, Miller-Rabin prime search,
DER and PKCS#1 key encoding, OpenSSH public key lines, and a block
ciphertext format of its own.

Nothing here is constant-time and nothing is padded. Do not protect
anything you care about with it.

Usage:
  joesrsa <command> [flags]

Available Commands:
  keygen     Generate an RSA key pair
  encrypt    Encrypt data with a public key
  decrypt    Decrypt data with a private key
  inspect    Show the contents of key and ciphertext files
  gendata    Generate filler plaintext for testing
  log        View the operation journal

Run 'joesrsa help <command>' for more details on a specific command.
`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing joesrsa with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			myFigure := figure.NewColorFigure("joes-rsa", "alligator2", "green", true)
			myFigure.Print()
			fmt.Println()
			fmt.Println("Run 'joesrsa --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(inspectCmd)
	RootCmd.AddCommand(gendataCmd)
	RootCmd.AddCommand(logCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetKeygenCommandState()
	resetEncryptCommandState()
	resetDecryptCommandState()
	resetInspectCommandState()
	resetGendataCommandState()
	resetLogCommandState()
	resetCobraFlagState()
}

// resetCobraFlagState resets the flag state for all commands to prevent test pollution.
func resetCobraFlagState() {
	commands := append([]*cobra.Command{RootCmd}, RootCmd.Commands()...)
	for _, c := range commands {
		if c.Flags() != nil {
			c.Flags().VisitAll(func(flag *pflag.Flag) {
				flag.Changed = false
			})
		}
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
