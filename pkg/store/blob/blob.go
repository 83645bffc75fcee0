// Package blob copies exported documents to a configured destination.
package blob

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

// Store persists one object and returns where it ended up.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Factory creates a Store for a destination of one type.
type Factory func(ctx context.Context, dest domain.Destination) (Store, error)

// Registry maps destination types to store factories.
type Registry interface {
	Register(kind domain.DestinationType, factory Factory) error
	Create(ctx context.Context, dest domain.Destination) (Store, error)
	ListTypes() []domain.DestinationType
}

type registry struct {
	mu        sync.RWMutex
	factories map[domain.DestinationType]Factory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[domain.DestinationType]Factory),
	}
}

// DefaultRegistry knows the s3 and file destination types.
func DefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(domain.DestinationTypeS3, NewS3FromDestination)
	_ = r.Register(domain.DestinationTypeFile, NewFileFromDestination)
	return r
}

func (r *registry) Register(kind domain.DestinationType, factory Factory) error {
	if kind == "" {
		return fmt.Errorf("destination type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("destination type %q is already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, dest domain.Destination) (Store, error) {
	r.mu.RLock()
	factory, exists := r.factories[dest.Type]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("destination type %q is not registered", dest.Type)
	}
	return factory(ctx, dest)
}

func (r *registry) ListTypes() []domain.DestinationType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.DestinationType, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// cleanKey rejects keys that would escape the destination root.
func cleanKey(key string) (string, error) {
	k := strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" || k == "" || k != strings.TrimPrefix(key, "/") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return k, nil
}
