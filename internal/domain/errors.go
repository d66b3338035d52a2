package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrNoIngredients = errors.New("recipe needs at least one ingredient slot")
	ErrUnknownDriver = errors.New("unknown storage driver")
)
