// Package corpus holds the training sentences and the normalization step
// applied to them before tokenization.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
)

var (
	ErrEmptyCorpus   = errors.New("corpus: no sentences")
	ErrEmptySentence = errors.New("corpus: sentence empty after normalization")
)

// sentences is the built-in Kenyan-themed corpus. Mixed case and punctuation
// are intentional; Normalize strips both.
var sentences = []string{
	"Nairobi streets buzzed with matatus at dawn.",
	"The fishermen of Lake Victoria mended their nets in silence.",
	"Maasai herders walked their cattle across the dusty plains.",
	"Mount Kenya wore a crown of mist that morning!",
	"Vendors in Gikomba shouted prices over the crowd.",
	"The tea pickers of Kericho moved like dancers between the rows.",
	"Old men played draughts under the mango tree in Kisumu.",
	"A marathon runner from Iten trained before the sun rose.",
	"The coral reefs off Diani shimmered under clear water.",
	"Children chased a rag ball through the lanes of Kibera.",
	"Camels carried salt across the Chalbi desert heat.",
	"The night train to Mombasa rattled past sleeping stations.",
	"Flamingos turned Lake Nakuru into a ribbon of pink.",
	"Grandmothers in Nyeri roasted maize over charcoal fires.",
	"The matatu tout hung from the door shouting for passengers.",
	"Samburu warriors sang beneath a sky heavy with stars.",
	"Rain drummed on the mabati roofs of Eldoret all night.",
	"The spice market in Old Town Mombasa smelled of cloves.",
	"Boda boda riders weaved through the morning jam in Nakuru.",
	"An elephant calf trailed its mother through Amboseli dust.",
}

// Sentences returns a copy of the built-in corpus.
func Sentences() []string {
	out := make([]string, len(sentences))
	copy(out, sentences)
	return out
}

// FromFile reads a corpus from path, one raw sentence per non-blank line.
func FromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: read %s: %w", path, err)
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCorpus, path)
	}
	return out, nil
}

// Normalize lowercases each sentence and removes every rune that is not
// alphanumeric or whitespace. The output has the same length and order as
// the input. A sentence that normalizes to nothing is a configuration
// error, not something to paper over.
func Normalize(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyCorpus
	}
	out := make([]string, len(raw))
	for i, sentence := range raw {
		var b strings.Builder
		b.Grow(len(sentence))
		for _, r := range strings.ToLower(sentence) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
				b.WriteRune(r)
			}
		}
		norm := b.String()
		if strings.TrimSpace(norm) == "" {
			return nil, fmt.Errorf("%w: sentence %d (%q)", ErrEmptySentence, i, sentence)
		}
		out[i] = norm
	}
	return out, nil
}
