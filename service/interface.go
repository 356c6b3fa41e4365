// Package service starts long-lived collaborators in dependency order and stops them in reverse
package service

import "context"

// Service is a long-lived collaborator with an explicit lifecycle
//
// Lifecycle:
//  1. Construction
//  2. Start(ctx) - acquire resources and launch goroutines; ctx bounds their lifetime
//  3. [runtime operation]
//  4. Stop() - halt goroutines and release resources; must be idempotent
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must start before this one
	Dependencies() []string

	Start(ctx context.Context) error
	Stop() error
}

// Func adapts a pair of functions into a Service without dependencies
type Func struct {
	ID      string
	Deps    []string
	OnStart func(ctx context.Context) error
	OnStop  func() error
}

func (f *Func) Name() string           { return f.ID }
func (f *Func) Dependencies() []string { return f.Deps }

func (f *Func) Start(ctx context.Context) error {
	if f.OnStart == nil {
		return nil
	}
	return f.OnStart(ctx)
}

func (f *Func) Stop() error {
	if f.OnStop == nil {
		return nil
	}
	return f.OnStop()
}
