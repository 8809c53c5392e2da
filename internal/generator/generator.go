// Package generator extends a seed string one word at a time by repeatedly
// querying a trained model and sampling from its output distribution.
package generator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/dataset"
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/logits"
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/vocab"
)

var (
	ErrNilCollaborator   = errors.New("generator: model, vocabulary and sampler are required")
	ErrBadPrefixLen      = errors.New("generator: prefix length must be positive")
	ErrNegativeWordCount = errors.New("generator: word count must not be negative")
)

// Model is the trained collaborator: it maps one padded prefix of token
// indices to a probability distribution over the vocabulary.
type Model interface {
	Predict(prefix []int) ([]float32, error)
}

// Generator holds everything one generation session needs. The vocabulary
// and model are read-only here; the sampler carries the only mutable state
// (its RNG), so a Generator must not be shared across goroutines.
type Generator struct {
	model     Model
	vocab     *vocab.Vocabulary
	prefixLen int
	sampler   *logits.Sampler
}

// New wires a generator from its collaborators. prefixLen is the fixed
// window length established at training time (max window length minus the
// label).
func New(m Model, v *vocab.Vocabulary, prefixLen int, s *logits.Sampler) (*Generator, error) {
	if m == nil || v == nil || s == nil {
		return nil, ErrNilCollaborator
	}
	if prefixLen <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadPrefixLen, prefixLen)
	}
	return &Generator{model: m, vocab: v, prefixLen: prefixLen, sampler: s}, nil
}

// Run appends nextWords sampled words to the lowercased seed and returns
// the result with its first rune capitalized. Words in the working string
// that are not in the vocabulary are dropped from the model's context.
// A model error aborts the call; there is no retry.
func (g *Generator) Run(seed string, nextWords int) (string, error) {
	if nextWords < 0 {
		return "", fmt.Errorf("%w: got %d", ErrNegativeWordCount, nextWords)
	}
	working := strings.ToLower(seed)
	for i := 0; i < nextWords; i++ {
		tokens := dataset.PadLeft(g.vocab.Encode(working), g.prefixLen)
		probs, err := g.model.Predict(tokens)
		if err != nil {
			return "", fmt.Errorf("generator: step %d: %w", i, err)
		}
		idx := g.sampler.Sample(probs)
		word, ok := g.vocab.Word(idx)
		if !ok {
			// The pad index maps to no word; this step appends nothing.
			continue
		}
		working += " " + word
	}
	return capitalize(working), nil
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
