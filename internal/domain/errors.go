package domain

import "errors"

var (
	ErrBriefInvalid      = errors.New("invalid brief")
	ErrNoAsset           = errors.New("no asset found")
	ErrModerationBlocked = errors.New("moderation blocked")
	ErrProviderFailure   = errors.New("provider failure")
	ErrNotFound          = errors.New("not found")
)
