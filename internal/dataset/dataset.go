// Package dataset expands normalized sentences into fixed-length training
// windows: a left-padded prefix of token indices plus a one-hot next-word
// label.
package dataset

import (
	"errors"
	"fmt"

	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/vocab"
)

// DefaultMinWindow is the smallest window emitted per sentence: two context
// tokens plus the label.
const DefaultMinWindow = 3

var (
	ErrNoWindows    = errors.New("dataset: corpus produced no training windows")
	ErrBadMinWindow = errors.New("dataset: min window must be at least 2")
)

// Example is one training pair: a prefix of token indices (left-padded with
// vocab.PadIndex to a common length) and its next token as a one-hot vector
// over the vocabulary.
type Example struct {
	Prefix []int
	Label  []float32
}

// Dataset is the full ordered collection of examples plus the derived
// configuration the generator needs later.
type Dataset struct {
	Examples  []Example
	VocabSize int
	MaxLen    int // longest emitted window, before the prefix/label split
	MinWindow int
}

// PrefixLen is the fixed prefix length every example shares.
func (d *Dataset) PrefixLen() int {
	return d.MaxLen - 1
}

// Build emits, for each sentence's token sequence, every growing window from
// minWindow tokens up to the full sentence. The last token of each window is
// the label, everything before it the prefix. minWindow <= 0 selects
// DefaultMinWindow.
func Build(sentences []string, v *vocab.Vocabulary, minWindow int) (*Dataset, error) {
	if minWindow <= 0 {
		minWindow = DefaultMinWindow
	}
	if minWindow < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBadMinWindow, minWindow)
	}

	var windows [][]int
	maxLen := 0
	for _, sentence := range sentences {
		tokens := v.Encode(sentence)
		for end := minWindow; end <= len(tokens); end++ {
			window := make([]int, end)
			copy(window, tokens[:end])
			windows = append(windows, window)
			if end > maxLen {
				maxLen = end
			}
		}
	}
	if len(windows) == 0 {
		return nil, ErrNoWindows
	}

	d := &Dataset{
		Examples:  make([]Example, 0, len(windows)),
		VocabSize: v.Size(),
		MaxLen:    maxLen,
		MinWindow: minWindow,
	}
	for _, window := range windows {
		padded := PadLeft(window, maxLen)
		d.Examples = append(d.Examples, Example{
			Prefix: padded[:maxLen-1],
			Label:  OneHot(padded[maxLen-1], d.VocabSize),
		})
	}
	return d, nil
}

// PadLeft prepends vocab.PadIndex until tokens has exactly width elements.
// Longer sequences keep their most recent width tokens, mirroring the
// padding convention used at training time.
func PadLeft(tokens []int, width int) []int {
	out := make([]int, width)
	if len(tokens) >= width {
		copy(out, tokens[len(tokens)-width:])
		return out
	}
	copy(out[width-len(tokens):], tokens)
	return out
}

// OneHot encodes idx as a vector of length size with a single 1.
func OneHot(idx, size int) []float32 {
	out := make([]float32, size)
	if idx >= 0 && idx < size {
		out[idx] = 1
	}
	return out
}
