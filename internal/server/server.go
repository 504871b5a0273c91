// Package server exposes document analysis over HTTP with fasthttp.
package server

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ngram_similarity/internal/ports"
)

// Analyzer runs a full document analysis with per-request parameters.
type Analyzer interface {
	Params() domain.Params
	AnalyzeWithParams(ctx context.Context, docA, docB string, p domain.Params) (domain.Result, error)
}

// ShortTextScorer scores two snippets with n-grams of order n.
type ShortTextScorer interface {
	CompareN(ctx context.Context, textA, textB string, n int) domain.ShortTextResult
}

// Server routes requests to the analysis components.
type Server struct {
	logger    ports.Logger
	analyzer  Analyzer
	short     ShortTextScorer
	extractor ports.TextExtractor
}

// New creates a new server.
func New(logger ports.Logger, analyzer Analyzer, short ShortTextScorer, extractor ports.TextExtractor) *Server {
	return &Server{
		logger:    logger,
		analyzer:  analyzer,
		short:     short,
		extractor: extractor,
	}
}

// Handler is the fasthttp request handler.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "NGramSimilarityServer")
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "*")

	if ctx.IsOptions() {
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	} else {
		s.route(ctx)
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/":
		s.handleRoot(ctx)
	case "/health":
		s.handleHealthCheck(ctx)
	case "/api/analyze-files/":
		s.handleAnalyzeFiles(ctx)
	case "/api/analyze-texts/":
		s.handleAnalyzeTexts(ctx)
	case "/api/analyze-short-text/":
		s.handleShortText(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}
}
