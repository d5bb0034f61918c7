// Package gate is a small policy registry: each resource type gets a Policy
// and every operation asks the Gate before touching storage. It has no
// dependency on domain models.
//
// The package uses generics to allow any user/subject type:
//   - Gate[uint] for simple user ID based auth
//   - Gate[*User] for full user struct based auth
package gate

import (
	"context"
	"sort"
	"sync"
)

// Gate is the central authorization checkpoint.
// U is the user/subject type (must be comparable for zero-value check).
type Gate[U comparable] struct {
	mu       sync.RWMutex
	policies map[string]Policy[U]
}

// NewGate creates an empty Gate ready to register policies.
func NewGate[U comparable]() *Gate[U] {
	return &Gate[U]{policies: make(map[string]Policy[U])}
}

// Register adds a policy for a given resource type (e.g., "supplier").
// Overwrites any existing policy for that type.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.policies[resourceType] = p
}

// Resources lists registered resource types in lexical order.
func (g *Gate[U]) Resources() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.policies))
	for k := range g.policies {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Authorize checks authorization and returns an error if denied.
// Returns ErrUnauthorized for zero-value user or denied action;
// returns ErrNoPolicyDefined if resourceType has no registered policy.
func (g *Gate[U]) Authorize(ctx context.Context, user U, action Action, resourceType string, resource any) error {
	var zero U
	if user == zero {
		return ErrUnauthorized
	}
	g.mu.RLock()
	p, ok := g.policies[resourceType]
	g.mu.RUnlock()
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, user, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[U]) Can(ctx context.Context, user U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, user, action, resourceType, resource) == nil
}
