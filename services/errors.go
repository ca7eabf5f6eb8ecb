package services

import (
	"errors"

	"campusshield/database"
)

var (
	ErrNotFound           = db.ErrNotFound
	ErrInvalidCategory    = errors.New("invalid category")
	ErrEmptyDescription   = errors.New("description is required")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrUnsupportedFile    = errors.New("unsupported file type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired session")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)
