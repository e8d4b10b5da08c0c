package domain

import "errors"

var (
	ErrNotFound      = errors.New("owner_not_found")
	ErrPhoneTaken    = errors.New("owner_phone_taken")
	ErrEmailTaken    = errors.New("owner_email_taken")
	ErrInvalidInput  = errors.New("owner_invalid_input")
	ErrTermsRequired = errors.New("owner_terms_required")
)
