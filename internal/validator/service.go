// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

package validator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/mverhaert/xbrld/internal/engine"
	"github.com/mverhaert/xbrld/internal/logging"
	"github.com/mverhaert/xbrld/internal/metrics"
	"github.com/mverhaert/xbrld/internal/staging"
)

// ErrEngineUnavailable is returned while the engine circuit is open: the
// engine binary has been failing and requests are rejected fast instead of
// being staged and queued behind a dead subprocess.
var ErrEngineUnavailable = errors.New("validator: engine unavailable")

// ElapsedCode is the code of the synthetic timing message appended to every
// successful validation.
const ElapsedCode = "validation.elapsed"

// Service runs validations end to end.
//
// The engine holds global state and is not safe for concurrent invocation
// within one process, so Service serializes runs behind a mutex. This is a
// resource-exclusivity requirement; scaling out means running more
// processes, not more goroutines.
type Service struct {
	eng     engine.Engine
	stager  *staging.Stager
	breaker *gobreaker.CircuitBreaker[[]engine.LogRecord]

	// mu is the single-flight gate around engine invocations.
	mu  sync.Mutex
	log zerolog.Logger
}

// NewService creates a validation service around the given engine.
func NewService(eng engine.Engine, stager *staging.Stager) *Service {
	breaker := gobreaker.NewCircuitBreaker[[]engine.LogRecord](gobreaker.Settings{
		Name:    "engine",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerState(breakerStateValue(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("engine circuit breaker state change")
		},
	})

	return &Service{
		eng:     eng,
		stager:  stager,
		breaker: breaker,
		log:     logging.WithComponent("validator"),
	}
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 2
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 0
	}
}

// Validate stages body, runs the engine against the pre-populated cache,
// and returns the normalized result.
//
// Error classes:
//   - *StructuralError: the document is not parseable at all; validation
//     was not attempted.
//   - ErrEngineUnavailable: the engine circuit is open.
//   - anything else: an unexpected engine or staging failure.
//
// Semantic findings, including cache misses for taxonomy references, are
// never errors; they come back as messages inside the Result.
func (s *Service) Validate(ctx context.Context, body []byte) (*Result, error) {
	if err := CheckWellFormed(body); err != nil {
		metrics.RecordValidation(metrics.OutcomeStructuralError, 0)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()

	path, cleanup, err := s.stager.Stage(body, ".xml")
	if err != nil {
		return nil, fmt.Errorf("validator: stage document: %w", err)
	}
	defer cleanup()

	records, err := s.breaker.Execute(func() ([]engine.LogRecord, error) {
		return s.eng.Validate(ctx, path)
	})
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
		}
		metrics.RecordEngineFailure()
		metrics.RecordValidation(metrics.OutcomeEngineError, elapsed)
		return nil, fmt.Errorf("validator: engine run: %w", err)
	}

	messages := Normalize(records)
	messages = append(messages, Message{
		Severity: SeverityInfo,
		Code:     ElapsedCode,
		Message:  fmt.Sprintf("validation completed in %s", elapsed.Round(time.Millisecond)),
	})

	result := NewResult(messages)

	outcome := metrics.OutcomeValid
	if !result.Valid {
		outcome = metrics.OutcomeInvalid
	}
	metrics.RecordValidation(outcome, elapsed)
	metrics.RecordMessages(result.Summary.Errors, result.Summary.Warnings, result.Summary.Info)

	s.log.Debug().
		Bool("valid", result.Valid).
		Int("errors", result.Summary.Errors).
		Int("warnings", result.Summary.Warnings).
		Dur("elapsed", elapsed).
		Msg("validation finished")

	return result, nil
}
