package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_ngram_similarity/internal/adapters/extract"
	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ngram_similarity/internal/ports"
)

// TextsRequest is the body of /api/analyze-texts/. Omitted parameters take
// the analyzer defaults.
type TextsRequest struct {
	TextA    string `json:"textA"`
	TextB    string `json:"textB"`
	N        *int   `json:"n,omitempty"`
	MinChars *int   `json:"min_chars,omitempty"`
	TopN     *int   `json:"top_n,omitempty"`
}

// ShortTextRequest is the body of /api/analyze-short-text/.
type ShortTextRequest struct {
	TextA string `json:"textA"`
	TextB string `json:"textB"`
	N     *int   `json:"n,omitempty"`
}

// errBadRequest marks client mistakes found before the analysis starts.
var errBadRequest = errors.New("bad request")

func (s *Server) handleRoot(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]string{
		"message": "API is running. POST two documents to /api/analyze-files/.",
	})
}

// handleHealthCheck responds to health check requests
func (s *Server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleAnalyzeFiles extracts the text of two uploaded documents and
// analyzes them.
func (s *Server) handleAnalyzeFiles(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid multipart form: "+err.Error())
		return
	}

	p, err := formParams(form, s.analyzer.Params())
	if err != nil {
		s.writeAnalysisError(ctx, err)
		return
	}

	uploadA, errA := formUpload(form, "file_a")
	uploadB, errB := formUpload(form, "file_b")
	if err := errors.Join(errA, errB); err != nil {
		s.writeAnalysisError(ctx, err)
		return
	}

	var textA, textB string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		textA, err = s.extractor.Extract(gctx, uploadA)
		return err
	})
	g.Go(func() error {
		var err error
		textB, err = s.extractor.Extract(gctx, uploadB)
		return err
	})
	if err := g.Wait(); err != nil {
		s.writeAnalysisError(ctx, err)
		return
	}

	s.analyze(ctx, textA, textB, p)
}

// handleAnalyzeTexts analyzes two documents sent as JSON strings.
func (s *Server) handleAnalyzeTexts(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req TextsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	p := s.analyzer.Params()
	if req.N != nil {
		p.N = *req.N
	}
	if req.MinChars != nil {
		p.MinChars = *req.MinChars
	}
	if req.TopN != nil {
		p.TopN = *req.TopN
	}

	s.analyze(ctx, req.TextA, req.TextB, p)
}

// handleShortText scores two snippets.
func (s *Server) handleShortText(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req ShortTextRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	n := domain.DefaultShortTextNGram
	if req.N != nil {
		n = *req.N
	}
	if n < 1 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "n must be at least 1")
		return
	}

	res := s.short.CompareN(ctx, req.TextA, req.TextB, n)

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, ShortTextResponse{
		JaccardSimilarity: res.Jaccard,
		CosineSimilarity:  res.Cosine,
	})
}

func (s *Server) analyze(ctx *fasthttp.RequestCtx, textA, textB string, p domain.Params) {
	res, err := s.analyzer.AnalyzeWithParams(ctx, textA, textB, p)
	if err != nil {
		s.writeAnalysisError(ctx, err)
		return
	}
	if res.Fatal {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, res.Warning)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, newAnalysisResponse(res))
}

// writeAnalysisError maps err to a status code and writes it.
func (s *Server) writeAnalysisError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, extract.ErrUnsupportedType):
		ctx.SetStatusCode(fasthttp.StatusUnsupportedMediaType)
		s.writeJSONError(ctx, err.Error())
	case errors.Is(err, extract.ErrUnreadable),
		errors.Is(err, domain.ErrInvalidParams),
		errors.Is(err, errBadRequest):
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		s.writeJSONError(ctx, "Analysis timed out")
	case errors.Is(err, context.Canceled):
		// The request context is cancelled when the server shuts down.
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		s.writeJSONError(ctx, "Server is shutting down")
	default:
		s.logger.Error("Analysis failed", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.writeJSONError(ctx, "Internal server error")
	}
}

func formParams(form *multipart.Form, p domain.Params) (domain.Params, error) {
	fields := []struct {
		name string
		dst  *int
	}{
		{"n", &p.N},
		{"min_chars", &p.MinChars},
		{"top_n", &p.TopN},
	}
	for _, f := range fields {
		values := form.Value[f.name]
		if len(values) == 0 || values[0] == "" {
			continue
		}
		v, err := strconv.Atoi(values[0])
		if err != nil {
			return p, fmt.Errorf("%w: %s must be an integer, got %q", errBadRequest, f.name, values[0])
		}
		*f.dst = v
	}
	return p, nil
}

func formUpload(form *multipart.Form, field string) (ports.Upload, error) {
	files := form.File[field]
	if len(files) == 0 {
		return ports.Upload{}, fmt.Errorf("%w: %s is required", errBadRequest, field)
	}
	fh := files[0]

	f, err := fh.Open()
	if err != nil {
		return ports.Upload{}, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return ports.Upload{}, fmt.Errorf("read %s: %w", field, err)
	}

	return ports.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
