package engine

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rejected action.
type ErrorKind string

const (
	KindNotYourTurn         ErrorKind = "not_your_turn"
	KindInvalidCards        ErrorKind = "invalid_cards"
	KindMustResolvePending  ErrorKind = "must_resolve_pending"
	KindGameNotInProgress   ErrorKind = "game_not_in_progress"
	KindInternalConsistency ErrorKind = "internal_consistency_error"
	KindMustPlay            ErrorKind = "must_play"
	KindNoNominationPending ErrorKind = "no_nomination_pending"
	KindUnknownPlayer       ErrorKind = "unknown_player"
	KindSeatUnavailable     ErrorKind = "seat_unavailable"
)

// RuleError is returned by every rejected transition. The game is unchanged
// whenever a RuleError is returned.
type RuleError struct {
	Kind   ErrorKind
	Detail string
}

func (e *RuleError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Detail
}

// Is matches on Kind so callers can write errors.Is(err, engine.ErrNotYourTurn).
func (e *RuleError) Is(target error) bool {
	t, ok := target.(*RuleError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Detail == "" || t.Detail == e.Detail)
}

// Sentinels for errors.Is.
var (
	ErrNotYourTurn         = &RuleError{Kind: KindNotYourTurn}
	ErrInvalidCards        = &RuleError{Kind: KindInvalidCards}
	ErrMustResolvePending  = &RuleError{Kind: KindMustResolvePending}
	ErrGameNotInProgress   = &RuleError{Kind: KindGameNotInProgress}
	ErrInternalConsistency = &RuleError{Kind: KindInternalConsistency}
	ErrMustPlay            = &RuleError{Kind: KindMustPlay}
	ErrNoNominationPending = &RuleError{Kind: KindNoNominationPending}
	ErrUnknownPlayer       = &RuleError{Kind: KindUnknownPlayer}
	ErrSeatUnavailable     = &RuleError{Kind: KindSeatUnavailable}
)

func ruleErr(kind ErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the ErrorKind carried by err, or "" if err is not a RuleError.
func KindOf(err error) ErrorKind {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
