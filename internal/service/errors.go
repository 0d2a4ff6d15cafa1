package service

import "errors"

// Policy violations. These never mutate state and map to 4xx responses.
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrParameterNotFound   = errors.New("parameter not found")
	ErrPriorityRequired    = errors.New("priority must be set before approving")
	ErrGraceRequired       = errors.New("grace marks must be set before approving")
	ErrUnitCannotWithdraw  = errors.New("units cannot request withdrawal")
	ErrWithdrawRejected    = errors.New("rejected applications cannot be withdrawn")
	ErrWithdrawPending     = errors.New("a withdrawal request is already pending")
	ErrWithdrawTerminal    = errors.New("withdrawal has already been decided")
	ErrNoWithdrawRequest   = errors.New("no withdrawal request to decide")
	ErrNotFinalizable      = errors.New("application is not eligible for finalization")
	ErrAlreadyFinalized    = errors.New("application is already finalized")
	ErrNoClarification     = errors.New("no clarification raised on this parameter")
	ErrInvalidRole         = errors.New("role is not part of the approval hierarchy")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserInactive        = errors.New("user account is inactive")
	ErrSessionNotFound     = errors.New("session not found or expired")
)
