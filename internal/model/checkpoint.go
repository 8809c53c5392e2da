package model

import (
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/tensor"
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/vocab"
)

var ErrBadCheckpoint = errors.New("model: malformed checkpoint")

// Checkpoint is the on-disk JSON form of a trained network plus the
// vocabulary it was trained against.
type Checkpoint struct {
	Config  Config            `json:"config"`
	Words   []string          `json:"words"`
	Weights CheckpointWeights `json:"weights"`
}

type CheckpointWeights struct {
	Emb []float32 `json:"emb"`
	Wx  []float32 `json:"wx"`
	Wh  []float32 `json:"wh"`
	Wy  []float32 `json:"wy"`
	Bh  []float32 `json:"bh"`
	By  []float32 `json:"by"`
}

// Save writes the network and vocabulary to path as JSON.
func Save(path string, n *Network, v *vocab.Vocabulary) error {
	ckpt := Checkpoint{
		Config: n.cfg,
		Words:  v.Words(),
		Weights: CheckpointWeights{
			Emb: n.Emb.Data,
			Wx:  n.Wx.Data,
			Wh:  n.Wh.Data,
			Wy:  n.Wy.Data,
			Bh:  n.bh,
			By:  n.by,
		},
	}
	data, err := json.Marshal(&ckpt)
	if err != nil {
		return fmt.Errorf("model: encode checkpoint: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("model: write checkpoint %s: %w", path, err)
	}
	return nil
}

// Load reads a checkpoint from path and rebuilds the network and
// vocabulary.
func Load(path string) (*Network, *vocab.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("model: read checkpoint %s: %w", path, err)
	}
	var ckpt Checkpoint
	if err := json.Unmarshal(data, &ckpt); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrBadCheckpoint, path, err)
	}
	return Restore(&ckpt)
}

// Restore rebuilds a network and vocabulary from a decoded checkpoint,
// validating every dimension against the stored config.
func Restore(ckpt *Checkpoint) (*Network, *vocab.Vocabulary, error) {
	cfg := ckpt.Config
	if cfg.VocabSize < 2 || cfg.EmbeddingDim <= 0 || cfg.HiddenDim <= 0 || cfg.PrefixLen <= 0 {
		return nil, nil, fmt.Errorf("%w: config %+v", ErrBadCheckpoint, cfg)
	}
	if len(ckpt.Words)+1 != cfg.VocabSize {
		return nil, nil, fmt.Errorf("%w: %d words for vocab size %d", ErrBadCheckpoint, len(ckpt.Words), cfg.VocabSize)
	}
	v, err := vocab.FromWords(ckpt.Words)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadCheckpoint, err)
	}
	w := ckpt.Weights
	for _, dim := range []struct {
		name string
		got  int
		want int
	}{
		{"emb", len(w.Emb), cfg.VocabSize * cfg.EmbeddingDim},
		{"wx", len(w.Wx), cfg.HiddenDim * cfg.EmbeddingDim},
		{"wh", len(w.Wh), cfg.HiddenDim * cfg.HiddenDim},
		{"wy", len(w.Wy), cfg.VocabSize * cfg.HiddenDim},
		{"bh", len(w.Bh), cfg.HiddenDim},
		{"by", len(w.By), cfg.VocabSize},
	} {
		if dim.got != dim.want {
			return nil, nil, fmt.Errorf("%w: %s has %d values, want %d", ErrBadCheckpoint, dim.name, dim.got, dim.want)
		}
	}
	n := &Network{
		cfg: cfg,
		Emb: tensor.NewMatFromData(cfg.VocabSize, cfg.EmbeddingDim, w.Emb),
		Wx:  tensor.NewMatFromData(cfg.HiddenDim, cfg.EmbeddingDim, w.Wx),
		Wh:  tensor.NewMatFromData(cfg.HiddenDim, cfg.HiddenDim, w.Wh),
		Wy:  tensor.NewMatFromData(cfg.VocabSize, cfg.HiddenDim, w.Wy),
		bh:  w.Bh,
		by:  w.By,
	}
	return n, v, nil
}
