package bus

import (
	"context"
	"fmt"

	"encore.dev/rlog"
)

// Handler reacts to a single delivered envelope.
type Handler func(ctx context.Context, env *Envelope) error

type route struct {
	source     string
	detailType DetailType
}

// Router maps (source, detail-type) pairs to handlers. It is built once at
// service start and is read-only afterwards.
type Router struct {
	routes map[route]Handler
}

func NewRouter() *Router {
	return &Router{routes: make(map[route]Handler)}
}

// Handle registers h for envelopes matching source and detailType.
// Registering the same pair twice is a programming error and panics.
func (r *Router) Handle(source string, detailType DetailType, h Handler) *Router {
	key := route{source: source, detailType: detailType}
	if _, exists := r.routes[key]; exists {
		panic(fmt.Sprintf("bus: duplicate route %s/%s", source, detailType))
	}
	r.routes[key] = h
	return r
}

// Dispatch invokes the handler registered for env. Envelopes with no route
// belong to other subscribers and are acknowledged without action.
func (r *Router) Dispatch(ctx context.Context, env *Envelope) error {
	h, ok := r.routes[route{source: env.Source, detailType: env.DetailType}]
	if !ok {
		rlog.Debug("no route for envelope", "event_id", env.ID, "source", env.Source, "detail_type", env.DetailType)
		return nil
	}
	return h(ctx, env)
}
