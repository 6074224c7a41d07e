package frappe

import "context"

type sessionKey struct{}

// ContextWithSession makes requests sent with ctx carry cookie instead of
// the client's own session. An empty cookie sends no session at all.
func ContextWithSession(ctx context.Context, cookie string) context.Context {
	return context.WithValue(ctx, sessionKey{}, cookie)
}

func sessionFrom(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(sessionKey{}).(string)
	return s, ok
}
