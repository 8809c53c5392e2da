package generator

import (
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/logits"
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/vocab"
)

// Params are the per-call knobs of one generation.
type Params struct {
	Seed        string
	Words       int
	Temperature float64
	SamplerSeed int64
}

// Service wraps a trained model and vocabulary for repeated generation
// calls with per-call sampling parameters. Each call builds its own sampler
// and generator, so a Service is safe to share as long as the model is no
// longer being trained.
type Service struct {
	model     Model
	vocab     *vocab.Vocabulary
	prefixLen int
}

// NewService wires a service around a trained model.
func NewService(m Model, v *vocab.Vocabulary, prefixLen int) (*Service, error) {
	if m == nil || v == nil {
		return nil, ErrNilCollaborator
	}
	if prefixLen <= 0 {
		return nil, ErrBadPrefixLen
	}
	return &Service{model: m, vocab: v, prefixLen: prefixLen}, nil
}

// Generate runs one full generation with the given parameters.
func (s *Service) Generate(p Params) (string, error) {
	sampler, err := logits.NewSampler(logits.SamplerConfig{
		Seed:        p.SamplerSeed,
		Temperature: p.Temperature,
	})
	if err != nil {
		return "", err
	}
	g, err := New(s.model, s.vocab, s.prefixLen, sampler)
	if err != nil {
		return "", err
	}
	return g.Run(p.Seed, p.Words)
}
