package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckpointRoundTrip(t *testing.T) {
	ds, v := tinyDataset(t)
	n := tinyNetwork(t, ds)
	if _, err := n.Fit(ds.Examples, FitConfig{Epochs: 20, BatchSize: 4, LearningRate: 0.1}, nil); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := Save(path, n, v); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, rv, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if restored.Config() != n.Config() {
		t.Fatalf("config mismatch: got %+v want %+v", restored.Config(), n.Config())
	}
	if rv.Size() != v.Size() {
		t.Fatalf("vocab size mismatch: got %d want %d", rv.Size(), v.Size())
	}

	prefix := ds.Examples[0].Prefix
	want, err := n.Predict(prefix)
	if err != nil {
		t.Fatalf("Predict original: %v", err)
	}
	got, err := restored.Predict(prefix)
	if err != nil {
		t.Fatalf("Predict restored: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("probability %d differs after round trip: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestLoadRejectsMalformedCheckpoint(t *testing.T) {
	dir := t.TempDir()

	t.Run("not json", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.json")
		if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, _, err := Load(path); !errors.Is(err, ErrBadCheckpoint) {
			t.Fatalf("expected ErrBadCheckpoint, got %v", err)
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		ckpt := &Checkpoint{
			Config: Config{VocabSize: 3, EmbeddingDim: 2, HiddenDim: 2, PrefixLen: 2},
			Words:  []string{"a", "b"},
			Weights: CheckpointWeights{
				Emb: make([]float32, 1), // wrong: want 3*2
				Wx:  make([]float32, 4),
				Wh:  make([]float32, 4),
				Wy:  make([]float32, 6),
				Bh:  make([]float32, 2),
				By:  make([]float32, 3),
			},
		}
		if _, _, err := Restore(ckpt); !errors.Is(err, ErrBadCheckpoint) {
			t.Fatalf("expected ErrBadCheckpoint, got %v", err)
		}
	})

	t.Run("word count mismatch", func(t *testing.T) {
		ckpt := &Checkpoint{
			Config: Config{VocabSize: 5, EmbeddingDim: 2, HiddenDim: 2, PrefixLen: 2},
			Words:  []string{"a", "b"},
		}
		if _, _, err := Restore(ckpt); !errors.Is(err, ErrBadCheckpoint) {
			t.Fatalf("expected ErrBadCheckpoint, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, _, err := Load(filepath.Join(dir, "absent.json")); err == nil {
			t.Fatalf("expected error for missing file")
		}
	})
}
