package core

import (
	"context"
	"fmt"
	"sync"
)

// ConnectorCreator builds a runtime connector from a resolved descriptor.
// Creators are stateless: they declare the connector type they produce and the
// descriptor kind they accept, both as first-class TypeRef values. A zero
// TypeRef on either side wildcards that side of the match.
type ConnectorCreator interface {
	ConnectorType() TypeRef
	DescriptorKind() TypeRef
	Create(ctx context.Context, descriptor Descriptor, config ConnectorConfig) (any, error)
}

// CreatorRegistry is the central extension point: new connector kinds are
// added by registering new creators, never by changing the matching logic.
// Registration happens once at startup; lookups afterwards are pure reads.
type CreatorRegistry struct {
	mu          sync.RWMutex
	creators    []ConnectorCreator
	environment EnvironmentAccessor
}

func NewCreatorRegistry() *CreatorRegistry {
	return &CreatorRegistry{}
}

// Register appends a creator. Earlier registrations win ties; order is part
// of the contract. Creators that accept an environment accessor receive the
// registry's one immediately.
func (r *CreatorRegistry) Register(creator ConnectorCreator) error {
	if creator == nil {
		return fmt.Errorf("core: connector creator is nil")
	}
	r.mu.Lock()
	r.creators = append(r.creators, creator)
	environment := r.environment
	r.mu.Unlock()
	if environment != nil {
		if aware, ok := creator.(EnvironmentAware); ok {
			aware.SetEnvironment(environment)
		}
	}
	return nil
}

// SetEnvironment records the accessor handed to environment-aware creators,
// threading it to the ones already registered.
func (r *CreatorRegistry) SetEnvironment(env EnvironmentAccessor) {
	if env == nil {
		return
	}
	r.mu.Lock()
	r.environment = env
	creators := append([]ConnectorCreator(nil), r.creators...)
	r.mu.Unlock()
	for _, creator := range creators {
		if aware, ok := creator.(EnvironmentAware); ok {
			aware.SetEnvironment(env)
		}
	}
}

// Find scans creators in registration order and returns the first match. A
// creator matches when the requested connector type accepts the creator's
// declared type and the creator's declared descriptor kind accepts the
// descriptor's kind.
func (r *CreatorRegistry) Find(connectorType TypeRef, descriptor Descriptor) (ConnectorCreator, bool) {
	r.mu.RLock()
	creators := r.creators
	r.mu.RUnlock()

	for _, creator := range creators {
		if accepts(creator, connectorType, descriptor) {
			return creator, true
		}
	}
	return nil, false
}

// Require is Find that fails with a no-suitable-creator error naming both the
// requested connector type and the descriptor identity.
func (r *CreatorRegistry) Require(connectorType TypeRef, descriptor Descriptor) (ConnectorCreator, error) {
	creator, ok := r.Find(connectorType, descriptor)
	if !ok {
		return nil, NoSuitableCreatorError(connectorType, descriptor)
	}
	return creator, nil
}

// Has reports whether a matching creator exists, without side effects.
func (r *CreatorRegistry) Has(connectorType TypeRef, descriptor Descriptor) bool {
	_, ok := r.Find(connectorType, descriptor)
	return ok
}

func accepts(creator ConnectorCreator, connectorType TypeRef, descriptor Descriptor) bool {
	typeBased := connectorType.AssignableFrom(creator.ConnectorType())
	kindBased := descriptor == nil || creator.DescriptorKind().AssignableFrom(descriptor.Kind())
	return typeBased && kindBased
}
