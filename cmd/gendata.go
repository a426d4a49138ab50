package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/PolarWolf314/joesrsa/internal/ui"
	"github.com/PolarWolf314/joesrsa/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	gendataParagraphs int
	gendataSentences  []int
	gendataWidth      int
	gendataSeed       string
	gendataOut        string
)

func init() {
	gendataCmd.Flags().IntVarP(&gendataParagraphs, "paragraphs", "p", 3, "number of paragraphs")
	gendataCmd.Flags().IntSliceVarP(&gendataSentences, "sentences", "P", []int{3, 8}, "sentences per paragraph, min,max (one value fixes the count)")
	gendataCmd.Flags().IntVarP(&gendataWidth, "width", "w", 72, "wrap lines at this column (0 disables wrapping)")
	gendataCmd.Flags().StringVarP(&gendataSeed, "seed", "s", "", "seed for reproducible text")
	gendataCmd.Flags().StringVarP(&gendataOut, "out", "o", "", "output file (default stdout)")
}

// resetGendataCommandState resets the gendata command's global state for testing.
func resetGendataCommandState() {
	gendataParagraphs = 3
	gendataSentences = []int{3, 8}
	gendataWidth = 72
	gendataSeed = ""
	gendataOut = ""
}

// GetGendataCmd returns the gendata command for testing.
func GetGendataCmd() *cobra.Command {
	return gendataCmd
}

var gendataCmd = &cobra.Command{
	Use:   "gendata",
	Short: "Generate filler plaintext for exercising encrypt and decrypt",
	Long: `Generates a short memo of filler prose, handy as plaintext when trying out
the other commands. A fixed seed reproduces the same text every run.

Examples:
  joesrsa gendata                        # three paragraphs to stdout
  joesrsa gendata -p 10 -o filler.txt    # ten paragraphs into a file
  joesrsa gendata -P 4,4 -w 0            # exactly four sentences, unwrapped
  joesrsa gendata -s 42 | joesrsa encrypt -k key.pub -o filler.jrsa`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting gendata command")
		spinner, cleanup := startSpinner("Generating text...", verbose)
		defer cleanup()

		var sentMin, sentMax int
		switch len(gendataSentences) {
		case 1:
			sentMin, sentMax = gendataSentences[0], gendataSentences[0]
		case 2:
			sentMin, sentMax = gendataSentences[0], gendataSentences[1]
		default:
			finalMessage := ui.Error.Sprint("✗") + " Give " + ui.Flag.Sprint("--sentences") + " one value or a min,max pair"
			spinner.FinalMSG = finalMessage
			return nil
		}

		if gendataParagraphs < 1 || sentMin < 1 {
			finalMessage := ui.Error.Sprint("✗") + " Paragraph and sentence counts must be at least 1"
			spinner.FinalMSG = finalMessage
			return nil
		}
		if sentMax < sentMin {
			finalMessage := ui.Error.Sprint("✗") + " Sentence range minimum exceeds maximum\n" +
				ui.Info.Sprint("→") + " Give " + ui.Flag.Sprint("--sentences") + " as min,max, e.g. " + ui.Flag.Sprint("-P 3,8")
			spinner.FinalMSG = finalMessage
			return nil
		}
		if gendataWidth < 0 {
			finalMessage := ui.Error.Sprint("✗") + " Width cannot be negative\n" +
				ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("-w 0") + " to disable wrapping"
			spinner.FinalMSG = finalMessage
			return nil
		}

		opts := workflows.GendataOptions{
			Paragraphs:   gendataParagraphs,
			SentencesMin: sentMin,
			SentencesMax: sentMax,
			Width:        gendataWidth,
			OutputPath:   gendataOut,
		}

		if gendataSeed != "" {
			seed, err := strconv.ParseInt(gendataSeed, 10, 64)
			if err != nil {
				return Logger.ErrorfAndReturn("Invalid --seed value %q: must be an integer", gendataSeed)
			}
			opts.Seed = seed
		}

		result, err := workflows.Gendata(context.Background(), opts)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to generate data: %v", err)
		}

		Logger.Infof("Generated %d bytes of filler text", len(result.Data))

		// No output path means the text itself is the output.
		if result.OutputPath == "" {
			spinner.Stop()
			if _, err := os.Stdout.Write(result.Data); err != nil {
				return Logger.ErrorfAndReturn("Failed to write text to stdout: %v", err)
			}
			return nil
		}

		finalMessage := ui.Success.Sprint("✓") + " Wrote " + ui.Highlight.Sprintf("%d bytes", len(result.Data)) + " of filler text\n" +
			"    output: " + ui.Path.Sprint(result.OutputPath)

		spinner.FinalMSG = finalMessage
		return nil
	},
}
