package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation covers malformed submissions: wrong answer shape,
	// unknown option, or a submission after the lock-in deadline. Rejected
	// synchronously, never scored.
	ErrValidation = errors.New("validation failed")
	// ErrLockedIn is returned for submissions after the lock-in deadline.
	// It wraps ErrValidation: late submissions are rejected at write time,
	// never scored as zero.
	ErrLockedIn = fmt.Errorf("%w: question is locked in", ErrValidation)
	// ErrDuplicatePrediction is returned when a user already has a
	// prediction for the question.
	ErrDuplicatePrediction = errors.New("prediction already submitted")
	// ErrDuplicateOutcome guards scoring idempotence; callers treat it as a
	// successful no-op.
	ErrDuplicateOutcome = errors.New("outcome already recorded")
	// ErrDuplicateTransaction guards ledger idempotence for a
	// (reference, type) pair; callers treat it as a successful no-op.
	ErrDuplicateTransaction = errors.New("transaction already recorded")
	// ErrDuplicateResult is returned when a result was already declared for
	// the question. Re-running the scoring pass is safe.
	ErrDuplicateResult = errors.New("result already declared")

	ErrQuestionNotFound = errors.New("question not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrUnknownGameType  = errors.New("unknown game type")
)
