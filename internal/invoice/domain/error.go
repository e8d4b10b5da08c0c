package domain

import "errors"

var (
	ErrNotFound     = errors.New("invoice_not_found")
	ErrInvalidInput = errors.New("invoice_invalid_input")
	ErrNoItems      = errors.New("invoice_no_items")
)
