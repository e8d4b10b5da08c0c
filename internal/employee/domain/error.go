package domain

import "errors"

var (
	ErrNotFound     = errors.New("employee_not_found")
	ErrPhoneTaken   = errors.New("employee_phone_taken")
	ErrInvalidInput = errors.New("employee_invalid_input")
)
