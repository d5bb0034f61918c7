package gate

import "context"

// Policy defines authorization rules for a resource type.
// U is the user/subject type (e.g., uint for userID, *User for full user struct).
// For list/create, resource may be nil (context-only check).
type Policy[U any] interface {
	Can(ctx context.Context, user U, action Action, resource any) bool
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc[U any] func(ctx context.Context, user U, action Action, resource any) bool

func (f PolicyFunc[U]) Can(ctx context.Context, user U, action Action, resource any) bool {
	return f(ctx, user, action, resource)
}

// AllowAuthenticated grants every action to any non-zero user. The zero
// check itself happens in Gate.Authorize.
func AllowAuthenticated[U any]() Policy[U] {
	return PolicyFunc[U](func(context.Context, U, Action, any) bool { return true })
}
