package session

import (
	"context"

	"orderflow/internal/entities"
)

type actorKey struct{}

func WithActor(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor put there by the auth middleware.
func ActorFromContext(ctx context.Context) (entities.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(entities.Actor)
	return actor, ok
}
