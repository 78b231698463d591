package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = fmt.Errorf("not found")
	ErrAlreadyInTeam     = fmt.Errorf("already in a team")
	ErrNotInTeam         = fmt.Errorf("not in a team")
	ErrCooldownActive    = fmt.Errorf("team creation cooldown is active")
	ErrWrongPassword     = fmt.Errorf("wrong team password")
	ErrTeamFull          = fmt.Errorf("team is full")
	ErrPermissionDenied  = fmt.Errorf("permission denied")
	ErrKickSelf          = fmt.Errorf("cannot kick yourself")
	ErrBadGameMode       = fmt.Errorf("unknown game mode")
	ErrBadMaximumMembers = fmt.Errorf("maximum_members out of range")
	ErrBadVersion        = fmt.Errorf("bad version")
	ErrInternal          = fmt.Errorf("internal failure")
)

// ErrorKind maps sentinel errors onto the stable taxonomy exposed to
// callers. Messages never leak state the caller did not already have.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindPreconditionFailed ErrorKind = "precondition_failed"
	KindNotFound           ErrorKind = "not_found"
	KindPermissionDenied   ErrorKind = "permission_denied"
	KindInternal           ErrorKind = "internal"
)

func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrAlreadyInTeam),
		errors.Is(err, ErrNotInTeam),
		errors.Is(err, ErrCooldownActive),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrTeamFull):
		return KindPreconditionFailed
	case errors.Is(err, ErrKickSelf),
		errors.Is(err, ErrBadGameMode),
		errors.Is(err, ErrBadMaximumMembers),
		errors.Is(err, ErrBadVersion):
		return KindValidation
	default:
		return KindInternal
	}
}
