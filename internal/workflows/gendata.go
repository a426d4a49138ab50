package workflows

import (
	"context"

	"github.com/PolarWolf314/joesrsa/internal/gendata"
)

// GendataOptions configures the gendata workflow.
type GendataOptions struct {
	// Paragraphs is the number of prose paragraphs after the memo header.
	Paragraphs int

	// SentencesMin and SentencesMax bound the per-paragraph sentence count.
	SentencesMin int
	SentencesMax int

	// Width wraps lines at the given column. Zero disables wrapping.
	Width int

	// Seed makes the output reproducible. Zero picks a random seed.
	Seed int64

	// OutputPath receives the text. Empty means the caller prints it.
	OutputPath string
}

// GendataResult contains the outcome of a gendata operation.
type GendataResult struct {
	// Data is the generated text, newline-terminated.
	Data []byte

	// OutputPath is where the text was written, if anywhere.
	OutputPath string
}

// Gendata produces filler plaintext for exercising encrypt and decrypt.
func Gendata(ctx context.Context, opts GendataOptions) (*GendataResult, error) {
	text, err := gendata.Generate(gendata.Options{
		Paragraphs:   opts.Paragraphs,
		SentencesMin: opts.SentencesMin,
		SentencesMax: opts.SentencesMax,
		Width:        opts.Width,
		Seed:         opts.Seed,
	})
	if err != nil {
		return nil, err
	}

	if err := writeOutput(opts.OutputPath, []byte(text)); err != nil {
		return nil, err
	}

	return &GendataResult{
		Data:       []byte(text),
		OutputPath: opts.OutputPath,
	}, nil
}
