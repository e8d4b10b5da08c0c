// Package actorcontext carries the authenticated actor through the request
// context so that handlers and services share one resolution per request.
package actorcontext

import (
	"context"

	authdomain "github.com/enotehq/enote/internal/auth/domain"
)

// ActorContextKey is the request context key for the authenticated actor.
type ActorContextKey struct{}

// WithActor stores the actor in the context.
func WithActor(ctx context.Context, actor authdomain.Actor) context.Context {
	return context.WithValue(ctx, ActorContextKey{}, actor)
}

// ActorFromContext returns the actor from context, if set.
func ActorFromContext(ctx context.Context) (authdomain.Actor, bool) {
	if ctx == nil {
		return authdomain.Actor{}, false
	}
	actor, ok := ctx.Value(ActorContextKey{}).(authdomain.Actor)
	return actor, ok
}

// Require returns the actor or ErrNoActor when the context has none.
func Require(ctx context.Context) (authdomain.Actor, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return authdomain.Actor{}, authdomain.ErrNoActor
	}
	return actor, nil
}

// RequireOwner returns the actor only when it is an owner account.
func RequireOwner(ctx context.Context) (authdomain.Actor, error) {
	actor, err := Require(ctx)
	if err != nil {
		return authdomain.Actor{}, err
	}
	if !actor.IsOwner() {
		return authdomain.Actor{}, authdomain.ErrOwnerRequired
	}
	return actor, nil
}
