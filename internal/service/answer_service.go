package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"tablerag/internal/domain"
)

// State names the phase an answer request is in. Each request walks
// Idle → Retrieving → Prompting → Generating → Done, or ends in Failed.
type State string

const (
	StateIdle       State = "idle"
	StateRetrieving State = "retrieving"
	StatePrompting  State = "prompting"
	StateGenerating State = "generating"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

const systemPrompt = "You are a helpful assistant answering questions about a passenger manifest. " +
	"Answer using only the provided context. If the context does not contain the information " +
	"needed to answer, say so explicitly. Do not make up facts."

// Result is the outcome of one answer request.
type Result struct {
	State  State
	Answer string
	Bundle *domain.Bundle
}

// AnswerService orchestrates retrieval and generation for one query at
// a time. The retriever and generator are constructed once at startup
// and never mutated; no state persists across calls.
type AnswerService struct {
	retriever  domain.Retriever
	generator  domain.Generator
	topK       int
	genTimeout time.Duration
	logger     *zap.Logger
}

func NewAnswerService(retriever domain.Retriever, generator domain.Generator, topK int, genTimeout time.Duration, logger *zap.Logger) *AnswerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnswerService{
		retriever:  retriever,
		generator:  generator,
		topK:       topK,
		genTimeout: genTimeout,
		logger:     logger,
	}
}

// Answer returns the generated answer for the query. Empty queries and
// retrieval failures are returned as errors; generation failures are
// converted into a descriptive answer string so the caller always gets
// text back and the process keeps serving.
func (s *AnswerService) Answer(ctx context.Context, query string) (string, error) {
	res, err := s.Ask(ctx, query)
	if err != nil {
		return "", err
	}
	return res.Answer, nil
}

// Ask is Answer with the retrieved bundle exposed for display.
func (s *AnswerService) Ask(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		// rejected while still idle; retriever and generator untouched
		return nil, domain.ErrEmptyQuery
	}

	state := StateRetrieving
	s.logger.Debug("answer request", zap.String("state", string(state)), zap.String("query", query))
	bundle, err := s.retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		s.logger.Warn("retrieval failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	state = StatePrompting
	s.logger.Debug("answer request", zap.String("state", string(state)), zap.Int("chunks", len(bundle.Results)))
	messages := []domain.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Context:\n" + bundle.Context + "\n\nQuestion: " + query + "\n\nAnswer:"},
	}

	state = StateGenerating
	s.logger.Debug("answer request", zap.String("state", string(state)), zap.String("model", s.generator.ModelName()))
	genCtx := ctx
	if s.genTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.genTimeout)
		defer cancel()
	}
	answer, err := s.generator.Chat(genCtx, messages)
	if err != nil {
		state = StateFailed
		genErr := &domain.GenerationError{Err: err}
		s.logger.Warn("generation failed", zap.String("query", query), zap.Error(genErr))
		return &Result{
			State:  state,
			Answer: "Sorry, I could not generate an answer: " + genErr.Error() + ". Retrieval succeeded; try again.",
			Bundle: bundle,
		}, nil
	}

	state = StateDone
	return &Result{State: state, Answer: strings.TrimSpace(answer), Bundle: bundle}, nil
}
