// Package api exposes the trained model over a small REST surface.
package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/generator"
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/logits"
)

const (
	defaultWords       = 12
	defaultTemperature = 1.0
)

// Engine runs one generation per call. *generator.Service satisfies it.
type Engine interface {
	Generate(p generator.Params) (string, error)
}

// GenerationRequest is the body of POST /v1/generations. Optional fields
// are pointers so "not set" is distinguishable from zero.
type GenerationRequest struct {
	Seed        string   `json:"seed"`
	Words       *int     `json:"words,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	SamplerSeed *int64   `json:"sampler_seed,omitempty"`
}

// GenerationResponse is the successful result of one generation.
type GenerationResponse struct {
	ID      string          `json:"id"`
	Object  string          `json:"object"`
	Created int64           `json:"created"`
	Model   string          `json:"model"`
	Text    string          `json:"text"`
	Usage   GenerationUsage `json:"usage"`
}

type GenerationUsage struct {
	SeedWords      int `json:"seed_words"`
	GeneratedWords int `json:"generated_words"`
}

type Server struct {
	engine    Engine
	modelName string
}

func NewServer(engine Engine, modelName string) *Server {
	if modelName == "" {
		modelName = "kenlit"
	}
	return &Server{engine: engine, modelName: modelName}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/generations", s.handleCreateGeneration)
	e.GET("/v1/healthz", s.handleHealthz)
}

func (s *Server) handleHealthz(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "model": s.modelName})
}

func (s *Server) handleCreateGeneration(c *echo.Context) error {
	req, err := decodeJSON[GenerationRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, "invalid JSON body")
	}
	if req.Seed == "" {
		return writeBadRequest(c, "seed is required")
	}

	params := generator.Params{
		Seed:        req.Seed,
		Words:       defaultWords,
		Temperature: defaultTemperature,
		SamplerSeed: -1,
	}
	if req.Words != nil {
		params.Words = *req.Words
	}
	if req.Temperature != nil {
		params.Temperature = *req.Temperature
	}
	if req.SamplerSeed != nil {
		params.SamplerSeed = *req.SamplerSeed
	}
	if params.Words < 0 {
		return writeBadRequest(c, "words must not be negative")
	}
	if params.Temperature <= 0 {
		return writeBadRequest(c, "temperature must be positive")
	}

	text, err := s.engine.Generate(params)
	if err != nil {
		if errors.Is(err, logits.ErrBadTemperature) || errors.Is(err, generator.ErrNegativeWordCount) {
			return writeBadRequest(c, err.Error())
		}
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}

	return c.JSON(http.StatusOK, GenerationResponse{
		ID:      "gen_" + uuid.NewString(),
		Object:  "generation",
		Created: time.Now().Unix(),
		Model:   s.modelName,
		Text:    text,
		Usage: GenerationUsage{
			SeedWords:      wordCount(req.Seed),
			GeneratedWords: params.Words,
		},
	})
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
