package corpus

import (
	"errors"
	"os"
	"strings"
	"testing"
	"unicode"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestNormalizeStripsCaseAndPunctuation(t *testing.T) {
	got, err := Normalize([]string{"Nairobi streets buzzed, with MATATUS!"})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	want := "nairobi streets buzzed with matatus"
	if got[0] != want {
		t.Fatalf("normalized sentence: got %q want %q", got[0], want)
	}
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	got, err := Normalize(Sentences())
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(got) != len(Sentences()) {
		t.Fatalf("length changed: got %d want %d", len(got), len(Sentences()))
	}
	for i, sentence := range got {
		for _, r := range sentence {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
				t.Fatalf("sentence %d contains %q after normalization", i, r)
			}
			if unicode.IsUpper(r) {
				t.Fatalf("sentence %d contains uppercase %q after normalization", i, r)
			}
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once, err := Normalize(Sentences())
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	twice, err := Normalize(once)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("sentence %d not idempotent: %q vs %q", i, once[i], twice[i])
		}
	}
}

func TestNormalizeErrors(t *testing.T) {
	t.Run("empty corpus", func(t *testing.T) {
		if _, err := Normalize(nil); !errors.Is(err, ErrEmptyCorpus) {
			t.Fatalf("expected ErrEmptyCorpus, got %v", err)
		}
	})

	t.Run("sentence of pure punctuation", func(t *testing.T) {
		_, err := Normalize([]string{"habari yako", "?!..."})
		if !errors.Is(err, ErrEmptySentence) {
			t.Fatalf("expected ErrEmptySentence, got %v", err)
		}
	})
}

func TestFromFile(t *testing.T) {
	path := t.TempDir() + "/corpus.txt"
	content := "Jambo from Lamu!\n\n  \nThe dhow sailed at dusk.\n"
	if err := writeFile(path, content); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	got, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(got), got)
	}
	if !strings.HasPrefix(got[0], "Jambo") {
		t.Fatalf("unexpected first sentence %q", got[0])
	}
}
