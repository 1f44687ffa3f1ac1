package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nayansarkar10/CompititivePricingAI/internal/config"
	"github.com/nayansarkar10/CompititivePricingAI/internal/gemini"
	"github.com/nayansarkar10/CompititivePricingAI/internal/helpers"
	"github.com/nayansarkar10/CompititivePricingAI/internal/models"
)

// Chat is one conversational session with the model
type Chat interface {
	Send(ctx context.Context, text string) (string, error)
}

// Gateway is the model surface the query service depends on. The real
// implementation wraps gemini.Client; tests substitute a fake.
type Gateway interface {
	GenerateContent(ctx context.Context, req gemini.Request) (string, error)
	StartChat(base gemini.Request) Chat
}

type geminiGateway struct {
	client *gemini.Client
}

func (g geminiGateway) GenerateContent(ctx context.Context, req gemini.Request) (string, error) {
	return g.client.GenerateContent(ctx, req)
}

func (g geminiGateway) StartChat(base gemini.Request) Chat {
	return g.client.StartChat(base)
}

// QueryService is the stateless facade over the model: it composes
// prompts, applies the extraction protocol, and absorbs every upstream
// failure into deterministic fallback data. Nothing above this layer
// observes an error from a normal question or analysis request.
type QueryService struct {
	cfg    *config.Config
	logger zerolog.Logger

	mu   sync.Mutex
	gw   Gateway
	chat Chat
}

// NewQueryService creates a query service with lazy gateway construction
func NewQueryService(cfg *config.Config, logger zerolog.Logger) *QueryService {
	return &QueryService{
		cfg:    cfg,
		logger: logger.With().Str("component", "query").Logger(),
	}
}

// NewQueryServiceWithGateway injects a pre-built gateway (used by tests)
func NewQueryServiceWithGateway(cfg *config.Config, logger zerolog.Logger, gw Gateway) *QueryService {
	s := NewQueryService(cfg, logger)
	s.gw = gw
	return s
}

// ensureGateway lazily constructs the Gemini client on first use. The
// construction is idempotent; a missing credential surfaces as
// gemini.ErrNotInitialized and routes into the fallback path.
func (s *QueryService) ensureGateway() (Gateway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gw != nil {
		return s.gw, nil
	}

	client, err := gemini.NewClient(&s.cfg.Gemini, s.logger)
	if err != nil {
		return nil, err
	}

	s.gw = geminiGateway{client: client}
	return s.gw, nil
}

// Reset discards the current chat session. The next analysis starts a
// fresh conversation with no prior context.
func (s *QueryService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = nil
}

// GenerateQuestions asks the model for 2-3 clarifying multiple-choice
// questions narrowing the query. It never fails: any upstream problem
// (missing key, transport error, malformed or empty reply) yields the
// fixed fallback list.
func (s *QueryService) GenerateQuestions(ctx context.Context, query string) []models.Question {
	gw, err := s.ensureGateway()
	if err != nil {
		s.logger.Warn().Err(err).Msg("no gateway; using fallback questions")
		return fallbackQuestions()
	}

	req := gemini.Request{
		Contents:         gemini.UserContent(buildQuestionsPrompt(query, s.cfg.Market.Region, s.cfg.Market.Currency)),
		ResponseMIMEType: "application/json",
	}

	raw, err := gw.GenerateContent(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("question generation failed; using fallback questions")
		return fallbackQuestions()
	}

	// Some models wrap the array in a fence despite the JSON response mode.
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var questions []models.Question
	if err := json.Unmarshal([]byte(text), &questions); err != nil || len(questions) == 0 {
		s.logger.Warn().Msg("question reply was not a non-empty JSON array; using fallback questions")
		return fallbackQuestions()
	}

	return questions
}

// GenerateAnalysis runs the master-agent workflow over a persistent chat
// session and extracts the dual-part reply. It never fails: credential,
// transport, quota, and empty-reply conditions all resolve to the
// deterministic simulation result.
func (s *QueryService) GenerateAnalysis(ctx context.Context, data models.RefinementData) *models.AnalysisResult {
	gw, err := s.ensureGateway()
	if err != nil {
		helpers.PrintWarning("No API key configured, switching to simulation mode")
		s.logger.Warn().Err(err).Msg("no gateway; returning simulation result")
		return simulationResult(data.OriginalQuery)
	}

	raw, err := s.currentChat(gw, data).Send(ctx, analysisTrigger)
	if err != nil {
		if isQuotaError(err) {
			helpers.PrintWarning("API quota exhausted, switching to simulation mode")
			s.logger.Warn().Err(err).Msg("quota exhausted; returning simulation result")
		} else {
			helpers.PrintWarning("Market analysis service unavailable, switching to simulation mode")
			s.logger.Warn().Err(err).Msg("analysis request failed; returning simulation result")
		}
		return simulationResult(data.OriginalQuery)
	}

	result := ExtractAnalysis(raw)
	if result.Report == "" && len(result.Data) == 0 {
		helpers.PrintWarning("Model returned an empty analysis, switching to simulation mode")
		s.logger.Warn().Msg("empty extraction; returning simulation result")
		return simulationResult(data.OriginalQuery)
	}

	return result
}

// currentChat returns the active session, starting one seeded with the
// master-agent instruction when none exists. Regeneration reuses the
// session so the model keeps its own prior research as context.
func (s *QueryService) currentChat(gw Gateway, data models.RefinementData) Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chat == nil {
		s.chat = gw.StartChat(gemini.Request{
			SystemInstruction: buildAnalysisInstruction(data, s.cfg.Market.Region, s.cfg.Market.Currency),
			EnableSearch:      true,
		})
	}
	return s.chat
}

// isQuotaError reports whether err is a rate-limit/quota signal: a 429
// status or a "quota"/"429" substring in the message.
func isQuotaError(err error) bool {
	var apiErr *gemini.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota")
}
