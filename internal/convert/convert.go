// Package convert translates Pulumi YAML programs into other languages.
package convert

import (
	"context"
	"fmt"
)

// Converter produces the source of snippet rewritten in lang.
type Converter interface {
	Convert(ctx context.Context, snippet string, lang Language) (string, error)
}

// Func adapts an ordinary function to the Converter interface.
type Func func(ctx context.Context, snippet string, lang Language) (string, error)

// Convert calls f(ctx, snippet, lang).
func (f Func) Convert(ctx context.Context, snippet string, lang Language) (string, error) {
	return f(ctx, snippet, lang)
}

// ExitError reports a conversion tool run that finished with a non-zero status.
// The tool's own diagnostics are written to its stderr, not kept here.
type ExitError struct {
	Language Language
	Status   uint8
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("converting to %s: conversion tool exited with %d", e.Language, e.Status)
}
