package wizard

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nayansarkar10/CompititivePricingAI/internal/models"
)

// ErrBusy is returned when a generation request is already in flight for
// this wizard instance. The caller should wait for it to resolve.
var ErrBusy = errors.New("a generation request is already in flight")

// failureNotice is the generic user-visible message shown after an
// unexpected internal defect. Normal upstream failures never surface
// here; the query service absorbs them into fallback data.
const failureNotice = "We encountered an issue analyzing the market. Please try again."

// QueryService is the facade the controller drives. Both operations are
// error-absorbing: they always return renderable data.
type QueryService interface {
	GenerateQuestions(ctx context.Context, query string) []models.Question
	GenerateAnalysis(ctx context.Context, data models.RefinementData) *models.AnalysisResult
	Reset()
}

// Snapshot is a read-only copy of the wizard's visible state
type Snapshot struct {
	State     State
	Query     string
	Questions []models.Question
	Answers   map[string]string
	Result    *models.AnalysisResult
	Notice    string
}

// Controller owns one wizard session: the current state plus the
// accumulated query, questions, answers, and result. State changes are
// synchronous; only the query-service calls block. At most one generation
// request is outstanding at a time, and a result resolving after Reset is
// deliberately discarded.
type Controller struct {
	svc    QueryService
	logger zerolog.Logger

	mu        sync.Mutex
	state     State
	query     string
	questions []models.Question
	answers   map[string]string
	result    *models.AnalysisResult
	notice    string
	busy      bool
	gen       uint64
}

// NewController creates a wizard controller in the landing state
func NewController(svc QueryService, logger zerolog.Logger) *Controller {
	return &Controller{
		svc:     svc,
		logger:  logger.With().Str("component", "wizard").Logger(),
		state:   StateLanding,
		answers: map[string]string{},
	}
}

// Snapshot returns a copy of the current visible state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	questions := make([]models.Question, len(c.questions))
	copy(questions, c.questions)

	answers := make(map[string]string, len(c.answers))
	for q, a := range c.answers {
		answers[q] = a
	}

	return Snapshot{
		State:     c.state,
		Query:     c.query,
		Questions: questions,
		Answers:   answers,
		Result:    c.result,
		Notice:    c.notice,
	}
}

// SubmitQuery starts a new analysis: it resets the model session, moves
// to Processing, and generates clarifying questions for the query.
func (c *Controller) SubmitQuery(ctx context.Context, query string) error {
	gen, err := c.begin(EventSubmit)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.query = query
	c.questions = nil
	c.answers = map[string]string{}
	c.result = nil
	c.mu.Unlock()

	// New analysis event: the previous chat session is discarded.
	c.svc.Reset()

	questions := c.callQuestions(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false

	if gen != c.gen {
		c.logger.Debug().Msg("discarding stale question result after reset")
		return nil
	}

	if questions == nil {
		c.state = StateLanding
		c.notice = failureNotice
		return nil
	}

	c.state, _ = Transition(c.state, EventQuestionsReady)
	c.questions = questions
	return nil
}

// SubmitAnswers completes the clarification step and runs the analysis
func (c *Controller) SubmitAnswers(ctx context.Context, answers map[string]string) error {
	gen, err := c.begin(EventAnswersComplete)
	if err != nil {
		return err
	}

	c.mu.Lock()
	for q, a := range answers {
		c.answers[q] = a
	}
	data := models.RefinementData{OriginalQuery: c.query, Answers: c.answers}
	c.mu.Unlock()

	c.finishAnalysis(ctx, gen, data)
	return nil
}

// Regenerate re-runs the analysis with the stored query and answers. The
// model session is kept so prior turns remain available as context.
func (c *Controller) Regenerate(ctx context.Context) error {
	gen, err := c.begin(EventRegenerate)
	if err != nil {
		return err
	}

	c.mu.Lock()
	data := models.RefinementData{OriginalQuery: c.query, Answers: c.answers}
	c.mu.Unlock()

	c.finishAnalysis(ctx, gen, data)
	return nil
}

// Back navigates to the previous screen. It is a pure display change: an
// in-flight request keeps running and its result is applied on arrival.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Transition(c.state, EventBack)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// Reset clears all wizard state and returns to the landing screen. A
// request still in flight will have its result discarded when it
// resolves.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.state = StateLanding
	c.query = ""
	c.questions = nil
	c.answers = map[string]string{}
	c.result = nil
	c.notice = ""
	c.gen++
	c.mu.Unlock()

	c.svc.Reset()
}

// begin validates the triggering event, enforces the single-outstanding-
// request rule, and moves to Processing. It returns the generation the
// completion must match to be applied.
func (c *Controller) begin(event Event) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return 0, ErrBusy
	}

	next, err := Transition(c.state, event)
	if err != nil {
		return 0, err
	}

	c.state = next
	c.notice = ""
	c.busy = true
	return c.gen, nil
}

// finishAnalysis runs the analysis call and applies its result unless a
// reset happened in the meantime.
func (c *Controller) finishAnalysis(ctx context.Context, gen uint64, data models.RefinementData) {
	result := c.callAnalysis(ctx, data)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false

	if gen != c.gen {
		c.logger.Debug().Msg("discarding stale analysis result after reset")
		return
	}

	if result == nil {
		c.state = StateLanding
		c.notice = failureNotice
		return
	}

	// Applied even if the user navigated back out of Processing; only
	// Reset invalidates interest in the outcome.
	c.state = StateResults
	c.result = result
}

// callQuestions guards against a genuinely unexpected defect in the
// service: a panic is recovered and reported as a nil result so the
// session returns to the landing screen instead of crashing.
func (c *Controller) callQuestions(ctx context.Context, query string) (questions []models.Question) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Interface("panic", r).Msg("question generation panicked")
			questions = nil
		}
	}()
	return c.svc.GenerateQuestions(ctx, query)
}

func (c *Controller) callAnalysis(ctx context.Context, data models.RefinementData) (result *models.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Interface("panic", r).Msg("analysis generation panicked")
			result = nil
		}
	}()
	return c.svc.GenerateAnalysis(ctx, data)
}
