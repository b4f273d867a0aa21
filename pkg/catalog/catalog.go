// Package catalog exposes the read-only registry of automation actions that
// Automated nodes can be configured with. The catalog is immutable for the
// lifetime of the process; fetching it is the designer's only asynchronous
// boundary and is served with a fixed artificial latency to mirror a remote
// registry.
package catalog

import (
	"context"
	"time"
)

// Action describes one automatable operation and the parameter names it
// requires. Params are ordered for display.
type Action struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Params []string `json:"params"`
}

// Provider serves the list of available automation actions.
type Provider interface {
	List(ctx context.Context) ([]Action, error)
}

// DefaultActions returns the built-in HR automation catalog.
func DefaultActions() []Action {
	return []Action{
		{ID: "send_email", Label: "Send Email", Params: []string{"to", "subject"}},
		{ID: "generate_doc", Label: "Generate Document", Params: []string{"template", "recipient"}},
		{ID: "update_record", Label: "Update HR Record", Params: []string{"recordId", "field", "value"}},
		{ID: "notify_slack", Label: "Notify Slack Channel", Params: []string{"channel", "message"}},
		{ID: "create_ticket", Label: "Create Support Ticket", Params: []string{"category", "priority", "description"}},
	}
}

// DefaultLatency is the artificial fetch delay applied by the static provider.
const DefaultLatency = 300 * time.Millisecond

// StaticProvider serves a fixed action list after an artificial latency.
type StaticProvider struct {
	actions []Action
	latency time.Duration
}

// Option configures a StaticProvider.
type Option func(*StaticProvider)

// WithLatency overrides the artificial fetch latency. Zero disables it.
func WithLatency(latency time.Duration) Option {
	return func(p *StaticProvider) {
		p.latency = latency
	}
}

// WithActions replaces the built-in action list.
func WithActions(actions []Action) Option {
	return func(p *StaticProvider) {
		p.actions = actions
	}
}

// NewStaticProvider returns a provider serving the built-in catalog.
func NewStaticProvider(opts ...Option) *StaticProvider {
	provider := &StaticProvider{
		actions: DefaultActions(),
		latency: DefaultLatency,
	}

	for _, opt := range opts {
		opt(provider)
	}

	return provider
}

// List returns a copy of the catalog after the configured latency. It honors
// context cancellation during the wait.
func (p *StaticProvider) List(ctx context.Context) ([]Action, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	actions := make([]Action, len(p.actions))
	copy(actions, p.actions)

	return actions, nil
}

// Lookup finds an action by id in the given list.
func Lookup(actions []Action, id string) (Action, bool) {
	for _, action := range actions {
		if action.ID == id {
			return action, true
		}
	}

	return Action{}, false
}
