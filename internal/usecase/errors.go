package usecase

import "errors"

var (
	ErrInvalidInput              = errors.New("invalid input")
	ErrSkillNotFound             = errors.New("skill not found")
	ErrSkillDirectoryUnavailable = errors.New("skill directory unavailable")
)
