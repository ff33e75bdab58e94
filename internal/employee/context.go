package employee

import "context"

type contextKey string

// ContextKey is where the auth middleware stores the acting employee.
const ContextKey contextKey = "actingEmployee"

func NewContext(ctx context.Context, emp *Employee) context.Context {
	return context.WithValue(ctx, ContextKey, emp)
}

// FromContext returns the authenticated employee placed in the request
// context by the auth middleware.
func FromContext(ctx context.Context) (*Employee, bool) {
	emp, ok := ctx.Value(ContextKey).(*Employee)
	return emp, ok
}
