// Package service orders the lifecycle of long-lived infrastructure
//
// Lifecycle:
//  1. Construction
//  2. Init() - acquire resources, in dependency order
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources, in reverse init order
package service

// Service is an infrastructure subsystem: terminal, audio backend
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init acquires the service resources
	Init() error

	// Start begins service operation
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent
	Stop() error
}

// Optional is implemented by services whose Init failure is not fatal
// A failed optional service is skipped for the rest of the run
type Optional interface {
	Optional() bool
}

func isOptional(s Service) bool {
	o, ok := s.(Optional)
	return ok && o.Optional()
}
