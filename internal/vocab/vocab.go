// Package vocab maps words to integer indices and back. Index 0 is reserved
// for padding and is never assigned to a word.
package vocab

import (
	"errors"
	"strings"
)

// PadIndex is the reserved index used for left-padding sequences.
const PadIndex = 0

var ErrDuplicateWord = errors.New("vocab: duplicate word")

// Vocabulary is an immutable word <-> index mapping. Indices start at 1 and
// follow first-seen order across the corpus. The inverse mapping is built
// once so decoding an index never scans the whole table.
type Vocabulary struct {
	index map[string]int
	words []string // words[i] is the word for index i; words[0] is the pad slot
}

// Build assigns indices to distinct words in first-seen order, scanning
// sentences in input order and words within a sentence left to right.
func Build(sentences []string) *Vocabulary {
	v := &Vocabulary{
		index: make(map[string]int),
		words: []string{""},
	}
	for _, sentence := range sentences {
		for _, word := range strings.Fields(sentence) {
			if _, ok := v.index[word]; ok {
				continue
			}
			v.index[word] = len(v.words)
			v.words = append(v.words, word)
		}
	}
	return v
}

// FromWords rebuilds a vocabulary from its ordered word list (index 1
// onwards), as stored in a checkpoint.
func FromWords(words []string) (*Vocabulary, error) {
	v := &Vocabulary{
		index: make(map[string]int, len(words)),
		words: make([]string, 1, len(words)+1),
	}
	for _, word := range words {
		if _, ok := v.index[word]; ok {
			return nil, ErrDuplicateWord
		}
		v.index[word] = len(v.words)
		v.words = append(v.words, word)
	}
	return v, nil
}

// Size returns the number of distinct words plus one for the pad slot.
func (v *Vocabulary) Size() int {
	return len(v.words)
}

// Index returns the index for word, if it is in the vocabulary.
func (v *Vocabulary) Index(word string) (int, bool) {
	idx, ok := v.index[word]
	return idx, ok
}

// Word resolves an index back to its word. The pad index and anything out
// of range resolve to nothing.
func (v *Vocabulary) Word(idx int) (string, bool) {
	if idx <= PadIndex || idx >= len(v.words) {
		return "", false
	}
	return v.words[idx], true
}

// Encode splits text on whitespace and maps each word to its index. Words
// outside the vocabulary are dropped.
func (v *Vocabulary) Encode(text string) []int {
	fields := strings.Fields(text)
	out := make([]int, 0, len(fields))
	for _, word := range fields {
		if idx, ok := v.index[word]; ok {
			out = append(out, idx)
		}
	}
	return out
}

// Words returns the ordered word list (index 1 onwards), for checkpointing.
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.words)-1)
	copy(out, v.words[1:])
	return out
}
