package domain

import "errors"

var (
	ErrNotFound     = errors.New("product_not_found")
	ErrNameTaken    = errors.New("product_name_taken")
	ErrInvalidInput = errors.New("product_invalid_input")
)
