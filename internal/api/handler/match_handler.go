// Package handler coordinates one match request: text extraction,
// analysis, scoring, report generation and result caching.
package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cv-match-go/internal/analyzer"
	"cv-match-go/internal/cache"
	"cv-match-go/internal/config"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/parser"
	"cv-match-go/internal/report"
	"cv-match-go/internal/scoring"
	"cv-match-go/internal/types"
)

// ErrInputTooShort rejects CV or offer texts below the configured
// minimum length before any analysis runs.
var ErrInputTooShort = errors.New("input text too short")

// MatchHandler owns the full analyze pipeline. All members are
// stateless or concurrency-safe, so one handler serves all requests.
type MatchHandler struct {
	cfg           *config.Config
	extractor     *parser.TextExtractor
	cvAnalyzer    *analyzer.CVAnalyzer
	offerAnalyzer *analyzer.OfferAnalyzer
	engine        *scoring.Engine
	reports       *report.Builder
	results       *cache.ResultCache
}

// NewMatchHandler wires the pipeline together.
func NewMatchHandler(
	cfg *config.Config,
	extractor *parser.TextExtractor,
	cvAnalyzer *analyzer.CVAnalyzer,
	offerAnalyzer *analyzer.OfferAnalyzer,
	engine *scoring.Engine,
	reports *report.Builder,
	results *cache.ResultCache,
) *MatchHandler {
	return &MatchHandler{
		cfg:           cfg,
		extractor:     extractor,
		cvAnalyzer:    cvAnalyzer,
		offerAnalyzer: offerAnalyzer,
		engine:        engine,
		reports:       reports,
		results:       results,
	}
}

// AnalyzeResponse is the full answer to one analyze request.
type AnalyzeResponse struct {
	SessionID string             `json:"session_id"`
	Score     *types.ScoreResult `json:"score"`
	Report    *report.Report     `json:"report"`
}

// HandleAnalyze runs the pipeline for one CV file and one offer text.
// The result is cached under a fresh session ID for later retrieval.
func (h *MatchHandler) HandleAnalyze(ctx context.Context, cvFilename string, cvData []byte, offerText string) (*AnalyzeResponse, error) {
	cvText, err := h.extractor.Extract(ctx, cvFilename, cvData)
	if err != nil {
		return nil, fmt.Errorf("extracting CV text: %w", err)
	}

	if len(cvText) < h.cfg.MinTextLength {
		return nil, fmt.Errorf("%w: CV has %d characters, minimum is %d",
			ErrInputTooShort, len(cvText), h.cfg.MinTextLength)
	}
	if len(offerText) < h.cfg.MinTextLength {
		return nil, fmt.Errorf("%w: offer has %d characters, minimum is %d",
			ErrInputTooShort, len(offerText), h.cfg.MinTextLength)
	}

	sessionID := uuid.NewString()
	log := logger.Logger.With().Str("session_id", sessionID).Logger()
	ctx = log.WithContext(ctx)

	log.Info().
		Str("cv_file", cvFilename).
		Int("cv_chars", len(cvText)).
		Int("offer_chars", len(offerText)).
		Msg("match analysis started")

	candidate := h.cvAnalyzer.Analyze(cvText)
	offer := h.offerAnalyzer.Analyze(offerText)

	score, err := h.engine.ComputeScore(ctx, candidate, offer)
	if err != nil {
		log.Error().Err(err).Msg("scoring failed")
		return nil, err
	}

	result := &types.MatchResult{
		SessionID: sessionID,
		CreatedAt: time.Now(),
		Candidate: candidate,
		Offer:     offer,
		Score:     score,
	}
	h.results.Put(result)

	log.Info().
		Float64("final_score", score.FinalScore).
		Str("tier", score.Tier).
		Msg("match analysis done")

	return &AnalyzeResponse{
		SessionID: sessionID,
		Score:     score,
		Report:    h.reports.Build(result),
	}, nil
}

// HandleResult returns the cached report for a session ID.
func (h *MatchHandler) HandleResult(sessionID string) (*report.Report, bool) {
	result, ok := h.results.Get(sessionID)
	if !ok {
		return nil, false
	}
	return h.reports.Build(result), true
}
