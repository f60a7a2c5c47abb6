// Package di provides a minimal service container with typed tokens.
//
// Values are registered under string keys during startup. Typed tokens give
// compile-time safety over the string-keyed registry and register lazy
// factories that are resolved on first Get and cached.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry is the read side of the container, handed to factories so
// they can resolve their own dependencies.
type ServiceRegistry interface {
	Get(key string) any
}

// Container registers and resolves services.
type Container interface {
	ServiceRegistry
	Register(key string, value any)
}

// lazy defers construction until first Get.
type lazy struct {
	fn func(ServiceRegistry) any
}

type container struct {
	mu       sync.Mutex
	services map[string]any
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{services: make(map[string]any)}
}

func (c *container) Register(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[key] = value
}

func (c *container) Get(key string) any {
	c.mu.Lock()
	v, ok := c.services[key]
	c.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("di: no service registered for %q", key))
	}

	l, isLazy := v.(*lazy)
	if !isLazy {
		return v
	}

	// Factories may resolve other services, so build outside the lock.
	inst := l.fn(c)

	c.mu.Lock()
	c.services[key] = inst
	c.mu.Unlock()
	return inst
}

// Token is a typed key for a service of type T.
type Token[T any] struct {
	key string
}

// NewToken creates a token under the given key.
func NewToken[T any](key string) Token[T] {
	return Token[T]{key: key}
}

// Key returns the underlying registry key.
func (t Token[T]) Key() string { return t.key }

// RegisterToken registers a typed lazy factory for the token.
func RegisterToken[T any](c Container, token Token[T], factory func(ServiceRegistry) T) {
	c.Register(token.key, &lazy{fn: func(sr ServiceRegistry) any {
		return factory(sr)
	}})
}

// GetToken resolves the token, panicking if the stored value has the wrong type.
func GetToken[T any](sr ServiceRegistry, token Token[T]) T {
	v := sr.Get(token.key)
	typed, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("di: service %q has type %T, want %T", token.key, v, typed))
	}
	return typed
}
