// Package token issues and verifies the signed bearer tokens shared by
// owners and employees. The subject carries the actor discriminator: a bare
// decimal id for an owner, or the "emp:" prefix followed by an employee id.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
)

const employeeSubjectPrefix = "emp:"

// Kind distinguishes the two subject encodings.
type Kind int

const (
	KindOwner Kind = iota
	KindEmployee
)

// Config carries the signing secret and token lifetime. Injected at
// construction; there are no package-level defaults.
type Config struct {
	Secret string
	TTL    time.Duration
}

// Issuer signs and verifies HS256 tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("token secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(cfg.Secret), ttl: ttl}, nil
}

// OwnerSubject encodes an owner id as a token subject.
func OwnerSubject(id snowflake.ID) string {
	return id.String()
}

// EmployeeSubject encodes an employee id as a token subject.
func EmployeeSubject(id snowflake.ID) string {
	return employeeSubjectPrefix + id.String()
}

// ParseSubject decodes a token subject back into an actor kind and id.
func ParseSubject(sub string) (Kind, snowflake.ID, error) {
	if rest, ok := strings.CutPrefix(sub, employeeSubjectPrefix); ok {
		id, err := snowflake.ParseString(rest)
		if err != nil {
			return 0, 0, fmt.Errorf("malformed employee subject %q", sub)
		}
		return KindEmployee, id, nil
	}
	id, err := snowflake.ParseString(sub)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed subject %q", sub)
	}
	return KindOwner, id, nil
}

// Issue signs a token for the given subject with the configured lifetime.
func (i *Issuer) Issue(subject string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Resolve verifies signature and expiry and returns the token subject.
func (i *Issuer) Resolve(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return i.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}
