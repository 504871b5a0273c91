package server

import (
	"encoding/json"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_ngram_similarity/internal/core/domain"
)

// PairResponse is one ranked chunk pair.
type PairResponse struct {
	Rank     int     `json:"rank"`
	Score    float64 `json:"score"`
	IndexA   int     `json:"docA_part_index"`
	IndexB   int     `json:"docB_part_index"`
	SnippetA string  `json:"docA_text_snippet"`
	SnippetB string  `json:"docB_text_snippet"`
}

// AnalysisResponse is the body returned by both document endpoints.
type AnalysisResponse struct {
	GlobalSimilarityScore  float64        `json:"global_similarity_score"`
	ChunkedSimilarityScore float64        `json:"chunked_similarity_score"`
	MatrixShape            [2]int         `json:"matrix_shape"`
	MostSimilarPairs       []PairResponse `json:"most_similar_pairs"`
	ErrorMessage           *string        `json:"error_message"`
}

// ShortTextResponse is the body returned by /api/analyze-short-text/.
type ShortTextResponse struct {
	JaccardSimilarity float64 `json:"jaccard_similarity"`
	CosineSimilarity  float64 `json:"cosine_similarity"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func newAnalysisResponse(res domain.Result) AnalysisResponse {
	pairs := make([]PairResponse, 0, len(res.Pairs))
	for _, p := range res.Pairs {
		pairs = append(pairs, PairResponse{
			Rank:     p.Rank,
			Score:    p.Score,
			IndexA:   p.IndexA,
			IndexB:   p.IndexB,
			SnippetA: p.SnippetA,
			SnippetB: p.SnippetB,
		})
	}

	out := AnalysisResponse{
		GlobalSimilarityScore:  res.GlobalScore,
		ChunkedSimilarityScore: res.ChunkedScore,
		MatrixShape:            [2]int{res.MatrixRows, res.MatrixCols},
		MostSimilarPairs:       pairs,
	}
	if res.Warning != "" {
		msg := res.Warning
		out.ErrorMessage = &msg
	}
	return out
}

// writeJSONResponse writes a JSON response to the context
func (s *Server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *Server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
