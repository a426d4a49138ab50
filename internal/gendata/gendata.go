// Package gendata generates plausible filler text for exercising the
// encrypt and decrypt pipeline without reaching for real documents. The
// output reads like a short company memo: a name line, a catch phrase, a
// goal, then paragraphs of prose.
package gendata

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

const wordsPerSentence = 12

// Options configures fixture text generation.
type Options struct {
	// Paragraphs is the number of paragraphs to generate.
	Paragraphs int

	// SentencesMin and SentencesMax bound the sentence count drawn for
	// each paragraph. Equal values fix the count.
	SentencesMin int
	SentencesMax int

	// Width wraps lines at this column. 0 disables wrapping.
	Width int

	// Seed makes output reproducible. 0 seeds from system randomness.
	Seed int64
}

// Generate produces filler text per the options. The same seed always
// yields the same bytes.
func Generate(opts Options) ([]byte, error) {
	if opts.Paragraphs < 1 {
		return nil, fmt.Errorf("paragraph count must be at least 1, got %d", opts.Paragraphs)
	}
	if opts.SentencesMin < 1 {
		return nil, fmt.Errorf("sentence count must be at least 1, got %d", opts.SentencesMin)
	}
	if opts.SentencesMax < opts.SentencesMin {
		return nil, fmt.Errorf("sentence range %d,%d has minimum above maximum", opts.SentencesMin, opts.SentencesMax)
	}
	if opts.Width < 0 {
		return nil, fmt.Errorf("width must not be negative, got %d", opts.Width)
	}

	faker := gofakeit.New(opts.Seed)

	blocks := make([]string, 0, opts.Paragraphs+2)
	blocks = append(blocks, faker.Company()+"\n"+faker.Slogan())
	blocks = append(blocks, "Goal: "+faker.BS())
	for i := 0; i < opts.Paragraphs; i++ {
		sentences := faker.Number(opts.SentencesMin, opts.SentencesMax)
		blocks = append(blocks, faker.Paragraph(1, sentences, wordsPerSentence, ""))
	}

	text := strings.Join(blocks, "\n\n")
	if opts.Width > 0 {
		text = wrap(text, opts.Width)
	}

	return []byte(text + "\n"), nil
}

// wrap re-flows every line to the given column, leaving blank lines in
// place. Words longer than the width stay on their own line unbroken.
func wrap(text string, width int) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, line)
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if len(current)+1+len(word) > width {
				out = append(out, current)
				current = word
				continue
			}
			current += " " + word
		}
		out = append(out, current)
	}
	return strings.Join(out, "\n")
}
