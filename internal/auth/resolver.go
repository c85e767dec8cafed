// Package auth resolves API tokens from an ordered list of sources.
package auth

import (
	"errors"
	"fmt"
	"os"
)

// ErrMissingCredential is returned by Resolve when no source provides a token
var ErrMissingCredential = errors.New("token required")

// Source indicates where a token was found
type Source string

const (
	SourceFlag Source = "flag"
	SourceEnv  Source = "env"
)

// Result contains the resolved token and its source
type Result struct {
	Token  string
	Source Source
	Name   string // the specific source name, e.g. "GITHUB_TOKEN"
}

// TokenProvider attempts to provide a token.
// It returns an empty token when the source has none.
type TokenProvider func() (token string, source Source, name string)

// Resolver resolves tokens from multiple sources in priority order
type Resolver struct {
	providers   []TokenProvider
	serviceName string
	helpMessage string
}

// NewResolver creates a new token resolver for a service
func NewResolver(serviceName string) *Resolver {
	return &Resolver{
		serviceName: serviceName,
		providers:   make([]TokenProvider, 0),
	}
}

// WithFlagValue adds an already parsed flag value as a source
func (r *Resolver) WithFlagValue(value string) *Resolver {
	r.providers = append(r.providers, func() (string, Source, string) {
		if value != "" {
			return value, SourceFlag, "flag"
		}
		return "", "", ""
	})
	return r
}

// WithEnv adds an environment variable as a token source
func (r *Resolver) WithEnv(envVar string) *Resolver {
	r.providers = append(r.providers, func() (string, Source, string) {
		if token := os.Getenv(envVar); token != "" {
			return token, SourceEnv, envVar
		}
		return "", "", ""
	})
	return r
}

// WithEnvs adds multiple environment variables as token sources (checked in order)
func (r *Resolver) WithEnvs(envVars ...string) *Resolver {
	for _, envVar := range envVars {
		r.WithEnv(envVar)
	}
	return r
}

// WithHelpMessage sets the help message shown when no token is found
func (r *Resolver) WithHelpMessage(msg string) *Resolver {
	r.helpMessage = msg
	return r
}

// Resolve returns the token of the first source that has one.
// The error wraps ErrMissingCredential when none does.
func (r *Resolver) Resolve() (*Result, error) {
	for _, provider := range r.providers {
		if token, source, name := provider(); token != "" {
			return &Result{Token: token, Source: source, Name: name}, nil
		}
	}

	if r.helpMessage != "" {
		return nil, fmt.Errorf("%s %w\n\n%s", r.serviceName, ErrMissingCredential, r.helpMessage)
	}
	return nil, fmt.Errorf("%s %w", r.serviceName, ErrMissingCredential)
}
