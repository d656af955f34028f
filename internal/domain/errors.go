package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("resource conflict")
	ErrDuplicateRequest    = errors.New("duplicate client request")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedExercise = errors.New("exercise type does not support set suggestions")
)
