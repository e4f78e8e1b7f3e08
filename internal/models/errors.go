package models

import (
	"errors"
)

var (
	ErrAdNotFound         = errors.New("models: ad not found")
	ErrProposalNotFound   = errors.New("models: proposal not found")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrAdAlreadyExchanged = errors.New("models: ad already exchanged")
	ErrSelfProposal       = errors.New("models: proposal to own ad")
	ErrNotAdOwner         = errors.New("models: ad belongs to another user")
	ErrAlreadyHandled     = errors.New("models: proposal already handled")
	ErrNoPermission       = errors.New("models: no permission")
	ErrInvalidAction      = errors.New("models: invalid action")
	ErrDuplicateProposal  = errors.New("models: duplicate pending proposal")
	ErrUsernameTaken      = errors.New("models: username already taken")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
)
