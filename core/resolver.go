package core

import (
	"fmt"
	"sync"
)

// Recognizer pairs a pure predicate over a raw descriptor shape with the
// factory that builds the typed descriptor for it.
type Recognizer struct {
	Accept func(raw RawDescriptor) bool
	Build  func(raw RawDescriptor) (Descriptor, error)
}

// DescriptorResolver converts raw platform descriptors into typed
// descriptors. Recognizers are evaluated in registration order; the first
// whose predicate accepts the raw shape builds the descriptor. A raw shape no
// recognizer accepts falls back to a minimal descriptor carrying the id, so
// resolution never fails outright for unrecognized services.
type DescriptorResolver struct {
	mu          sync.RWMutex
	recognizers []Recognizer
}

func NewDescriptorResolver() *DescriptorResolver {
	return &DescriptorResolver{}
}

func (r *DescriptorResolver) Register(rec Recognizer) error {
	if rec.Accept == nil {
		return fmt.Errorf("core: recognizer predicate is required")
	}
	if rec.Build == nil {
		return fmt.Errorf("core: recognizer factory is required")
	}
	r.mu.Lock()
	r.recognizers = append(r.recognizers, rec)
	r.mu.Unlock()
	return nil
}

// Resolve maps each raw descriptor to exactly one typed descriptor. Raw
// composites that no recognizer claims become CompositeDescriptors with
// recursively resolved constituents.
func (r *DescriptorResolver) Resolve(raws []RawDescriptor) ([]Descriptor, error) {
	resolved := make([]Descriptor, 0, len(raws))
	for _, raw := range raws {
		descriptor, err := r.resolveOne(raw)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, descriptor)
	}
	return resolved, nil
}

func (r *DescriptorResolver) resolveOne(raw RawDescriptor) (Descriptor, error) {
	r.mu.RLock()
	recognizers := r.recognizers
	r.mu.RUnlock()

	for _, rec := range recognizers {
		if !rec.Accept(raw) {
			continue
		}
		descriptor, err := rec.Build(raw)
		if err != nil {
			return nil, fmt.Errorf("core: build descriptor %q: %w", raw.ID, err)
		}
		if descriptor == nil {
			return nil, fmt.Errorf("core: recognizer returned nil descriptor for %q", raw.ID)
		}
		return descriptor, nil
	}
	return r.fallback(raw)
}

// fallback is always available and never removable.
func (r *DescriptorResolver) fallback(raw RawDescriptor) (Descriptor, error) {
	if !raw.IsComposite() {
		return NewBaseDescriptor(raw.ID), nil
	}
	constituents, err := r.Resolve(raw.Nested)
	if err != nil {
		return nil, err
	}
	return NewCompositeDescriptor(raw.ID, raw.Tag, constituents...), nil
}
