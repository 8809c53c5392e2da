package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/dataset"
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/logger"
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/tensor"
)

const (
	gradClip  = 5.0
	probFloor = 1e-12
)

var (
	ErrNoExamples = errors.New("model: no training examples")
	ErrBadFit     = errors.New("model: invalid fit configuration")
)

// FitConfig controls the training loop. Patience <= 0 disables early
// stopping.
type FitConfig struct {
	Epochs       int
	BatchSize    int
	LearningRate float64
	Patience     int
}

// grads accumulates parameter gradients over one minibatch.
type grads struct {
	emb, wx, wh, wy tensor.Mat
	bh, by          []float32
}

func newGrads(cfg Config) *grads {
	return &grads{
		emb: tensor.NewMat(cfg.VocabSize, cfg.EmbeddingDim),
		wx:  tensor.NewMat(cfg.HiddenDim, cfg.EmbeddingDim),
		wh:  tensor.NewMat(cfg.HiddenDim, cfg.HiddenDim),
		wy:  tensor.NewMat(cfg.VocabSize, cfg.HiddenDim),
		bh:  make([]float32, cfg.HiddenDim),
		by:  make([]float32, cfg.VocabSize),
	}
}

func (g *grads) zero() {
	clear(g.emb.Data)
	clear(g.wx.Data)
	clear(g.wh.Data)
	clear(g.wy.Data)
	clear(g.bh)
	clear(g.by)
}

// Fit trains the network with minibatch SGD over softmax cross-entropy and
// returns the mean loss per epoch. Training stops early when the epoch loss
// has not improved for cfg.Patience consecutive epochs.
func (n *Network) Fit(examples []dataset.Example, cfg FitConfig, log logger.Logger) ([]float64, error) {
	if len(examples) == 0 {
		return nil, ErrNoExamples
	}
	if cfg.Epochs <= 0 || cfg.BatchSize <= 0 || cfg.LearningRate <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrBadFit, cfg)
	}
	if log == nil {
		log = logger.Default()
	}

	g := newGrads(n.cfg)
	history := make([]float64, 0, cfg.Epochs)
	best := math.Inf(1)
	stale := 0

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		var epochLoss float64
		for start := 0; start < len(examples); start += cfg.BatchSize {
			end := min(start+cfg.BatchSize, len(examples))
			batch := examples[start:end]
			g.zero()
			for i := range batch {
				loss, err := n.backprop(&batch[i], g)
				if err != nil {
					return history, err
				}
				epochLoss += loss
			}
			n.applyGrads(g, float32(cfg.LearningRate/float64(len(batch))))
		}
		epochLoss /= float64(len(examples))
		history = append(history, epochLoss)
		log.Debug("epoch complete", "epoch", epoch+1, "loss", epochLoss)

		if epochLoss < best-1e-6 {
			best = epochLoss
			stale = 0
			continue
		}
		stale++
		if cfg.Patience > 0 && stale >= cfg.Patience {
			log.Info("early stopping", "epoch", epoch+1, "best_loss", best)
			break
		}
	}
	return history, nil
}

// backprop runs a forward pass over one example, accumulates gradients for
// every parameter into g and returns the example's cross-entropy loss.
func (n *Network) backprop(ex *dataset.Example, g *grads) (float64, error) {
	if len(ex.Label) != n.cfg.VocabSize {
		return 0, fmt.Errorf("%w: label length %d", ErrBadConfig, len(ex.Label))
	}
	hs, err := n.forward(ex.Prefix)
	if err != nil {
		return 0, err
	}
	hLast := hs[len(hs)-1]
	probs := n.output(hLast)

	var loss float64
	dy := make([]float32, n.cfg.VocabSize)
	for k, p := range probs {
		dy[k] = p - ex.Label[k]
		if ex.Label[k] > 0 {
			loss -= math.Log(math.Max(float64(p), probFloor))
		}
	}

	// Output layer gradients, plus the error flowing into the last hidden
	// state.
	dh := make([]float32, n.cfg.HiddenDim)
	for k := 0; k < n.cfg.VocabSize; k++ {
		wy := n.Wy.Row(k)
		gwy := g.wy.Row(k)
		g.by[k] += dy[k]
		for j := 0; j < n.cfg.HiddenDim; j++ {
			gwy[j] += dy[k] * hLast[j]
			dh[j] += wy[j] * dy[k]
		}
	}

	// Backprop through time.
	dhraw := make([]float32, n.cfg.HiddenDim)
	for t := len(ex.Prefix) - 1; t >= 0; t-- {
		h := hs[t+1]
		hPrev := hs[t]
		x := n.Emb.Row(ex.Prefix[t])

		for i := range dhraw {
			dhraw[i] = (1 - h[i]*h[i]) * dh[i]
			g.bh[i] += dhraw[i]
		}
		for i := 0; i < n.cfg.HiddenDim; i++ {
			gwx := g.wx.Row(i)
			for j := range x {
				gwx[j] += dhraw[i] * x[j]
			}
			gwh := g.wh.Row(i)
			for j := range hPrev {
				gwh[j] += dhraw[i] * hPrev[j]
			}
		}

		gemb := g.emb.Row(ex.Prefix[t])
		for j := 0; j < n.cfg.EmbeddingDim; j++ {
			var sum float32
			for i := 0; i < n.cfg.HiddenDim; i++ {
				sum += n.Wx.Row(i)[j] * dhraw[i]
			}
			gemb[j] += sum
		}

		dhNext := make([]float32, n.cfg.HiddenDim)
		for j := 0; j < n.cfg.HiddenDim; j++ {
			var sum float32
			for i := 0; i < n.cfg.HiddenDim; i++ {
				sum += n.Wh.Row(i)[j] * dhraw[i]
			}
			dhNext[j] = sum
		}
		dh = dhNext
	}
	return loss, nil
}

// applyGrads clips the accumulated gradients and applies one SGD step.
func (n *Network) applyGrads(g *grads, lr float32) {
	for _, buf := range [][]float32{g.emb.Data, g.wx.Data, g.wh.Data, g.wy.Data, g.bh, g.by} {
		clip(buf, gradClip)
	}
	axpy(n.Emb.Data, g.emb.Data, -lr)
	axpy(n.Wx.Data, g.wx.Data, -lr)
	axpy(n.Wh.Data, g.wh.Data, -lr)
	axpy(n.Wy.Data, g.wy.Data, -lr)
	axpy(n.bh, g.bh, -lr)
	axpy(n.by, g.by, -lr)
}

func clip(buf []float32, limit float32) {
	for i, v := range buf {
		if v > limit {
			buf[i] = limit
		} else if v < -limit {
			buf[i] = -limit
		}
	}
}

func axpy(dst, src []float32, alpha float32) {
	for i := range dst {
		dst[i] += alpha * src[i]
	}
}
