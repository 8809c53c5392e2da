// Package model implements the word-level recurrent network: an embedding
// matrix, a tanh recurrent cell and a dense softmax head over the
// vocabulary. Training is plain minibatch SGD with backprop through time.
package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/tensor"
)

var (
	ErrBadConfig  = errors.New("model: invalid configuration")
	ErrBadPrefix  = errors.New("model: prefix length mismatch")
	ErrTokenRange = errors.New("model: token index out of range")
)

// Config describes the network dimensions and the derived values a
// generator needs at sampling time. It is stored verbatim in checkpoints.
type Config struct {
	VocabSize    int   `json:"vocab_size"`
	EmbeddingDim int   `json:"embedding_dim"`
	HiddenDim    int   `json:"hidden_dim"`
	PrefixLen    int   `json:"prefix_len"`
	MinWindow    int   `json:"min_window"`
	Seed         int64 `json:"seed"`
}

// Network holds the trainable parameters. Rows of Emb are word embeddings,
// indexed by vocabulary index (row 0 belongs to the pad slot).
type Network struct {
	cfg Config

	Emb tensor.Mat // [VocabSize x EmbeddingDim]
	Wx  tensor.Mat // [HiddenDim x EmbeddingDim] input -> hidden
	Wh  tensor.Mat // [HiddenDim x HiddenDim]    hidden -> hidden
	Wy  tensor.Mat // [VocabSize x HiddenDim]    hidden -> logits
	bh  []float32
	by  []float32
}

// New constructs a network with weights deterministically initialised from
// cfg.Seed.
func New(cfg Config) (*Network, error) {
	if cfg.VocabSize < 2 || cfg.EmbeddingDim <= 0 || cfg.HiddenDim <= 0 || cfg.PrefixLen <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrBadConfig, cfg)
	}
	n := &Network{
		cfg: cfg,
		Emb: tensor.NewMat(cfg.VocabSize, cfg.EmbeddingDim),
		Wx:  tensor.NewMat(cfg.HiddenDim, cfg.EmbeddingDim),
		Wh:  tensor.NewMat(cfg.HiddenDim, cfg.HiddenDim),
		Wy:  tensor.NewMat(cfg.VocabSize, cfg.HiddenDim),
		bh:  make([]float32, cfg.HiddenDim),
		by:  make([]float32, cfg.VocabSize),
	}
	tensor.FillRand(&n.Emb, cfg.Seed+11, 0.08)
	tensor.FillRand(&n.Wx, cfg.Seed+23, 0.08)
	tensor.FillRand(&n.Wh, cfg.Seed+37, 0.08)
	tensor.FillRand(&n.Wy, cfg.Seed+53, 0.08)
	return n, nil
}

// Config returns the configuration the network was built with.
func (n *Network) Config() Config {
	return n.cfg
}

// Predict runs the recurrent forward pass over one padded prefix and
// returns the probability distribution over the vocabulary for the next
// word.
func (n *Network) Predict(prefix []int) ([]float32, error) {
	if len(prefix) != n.cfg.PrefixLen {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBadPrefix, len(prefix), n.cfg.PrefixLen)
	}
	hs, err := n.forward(prefix)
	if err != nil {
		return nil, err
	}
	return n.output(hs[len(hs)-1]), nil
}

// forward returns the hidden states for every step: hs[0] is the zero
// state, hs[t+1] the state after consuming prefix[t].
func (n *Network) forward(prefix []int) ([][]float32, error) {
	hs := make([][]float32, len(prefix)+1)
	hs[0] = make([]float32, n.cfg.HiddenDim)
	for t, tok := range prefix {
		if tok < 0 || tok >= n.cfg.VocabSize {
			return nil, fmt.Errorf("%w: %d at step %d", ErrTokenRange, tok, t)
		}
		hs[t+1] = n.step(n.Emb.Row(tok), hs[t])
	}
	return hs, nil
}

// step computes one recurrent update: h' = tanh(Wx*x + Wh*h + bh).
func (n *Network) step(x, h []float32) []float32 {
	out := make([]float32, n.cfg.HiddenDim)
	for i := 0; i < n.cfg.HiddenDim; i++ {
		z := n.bh[i]
		wx := n.Wx.Row(i)
		for j := range x {
			z += wx[j] * x[j]
		}
		wh := n.Wh.Row(i)
		for j := range h {
			z += wh[j] * h[j]
		}
		out[i] = float32(math.Tanh(float64(z)))
	}
	return out
}

// output projects a hidden state to vocabulary probabilities.
func (n *Network) output(h []float32) []float32 {
	logits := make([]float32, n.cfg.VocabSize)
	for k := 0; k < n.cfg.VocabSize; k++ {
		z := n.by[k]
		wy := n.Wy.Row(k)
		for j := range h {
			z += wy[j] * h[j]
		}
		logits[k] = z
	}
	return softmax(logits)
}

// softmax converts logits to probabilities in place, subtracting the max
// for numerical stability.
func softmax(logits []float32) []float32 {
	maxv := logits[0]
	for _, v := range logits[1:] {
		if v > maxv {
			maxv = v
		}
	}
	var sum float64
	for i, v := range logits {
		e := math.Exp(float64(v - maxv))
		logits[i] = float32(e)
		sum += e
	}
	inv := float32(1.0 / sum)
	for i := range logits {
		logits[i] *= inv
	}
	return logits
}
