package core

import "context"

// Requester describes who asked for a conversion. Frontends attach it to
// the context and the service copies it into the conversion log lines.
type Requester struct {
	Source    string // "web", "api", "cli" or "form"
	ClientIP  string
	UserAgent string
}

type requesterKey struct{}

// WithRequester returns a copy of ctx carrying r.
func WithRequester(ctx context.Context, r Requester) context.Context {
	return context.WithValue(ctx, requesterKey{}, r)
}

// RequesterFrom returns the Requester stored in ctx, or the zero value.
func RequesterFrom(ctx context.Context) Requester {
	r, _ := ctx.Value(requesterKey{}).(Requester)
	return r
}

// logArgs returns the non-empty fields as slog key/value pairs.
func (r Requester) logArgs() []any {
	var args []any
	if r.Source != "" {
		args = append(args, "source", r.Source)
	}
	if r.ClientIP != "" {
		args = append(args, "client_ip", r.ClientIP)
	}
	if r.UserAgent != "" {
		args = append(args, "user_agent", r.UserAgent)
	}
	return args
}
