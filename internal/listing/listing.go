// Package listing renders a Pulumi YAML program and its translations as a
// flat sequence of fenced code samples.
package listing

import (
	"context"

	"github.com/ezerfernandes/docu/internal/convert"
	"github.com/ezerfernandes/docu/internal/render"
)

var (
	// Targets are the languages a YAML file is converted to.
	Targets = []convert.Language{ //nolint:gochecknoglobals
		convert.TypeScript, convert.Python, convert.Go, convert.CSharp,
	}

	// Order is the sample order of a rendered listing.
	Order = []convert.Language{ //nolint:gochecknoglobals
		convert.YAML, convert.TypeScript, convert.Python, convert.Go, convert.CSharp,
	}
)

// Options configures Render.
type Options struct {
	Converter convert.Converter
	Jobs      int
}

// Render converts snippet, the whole content of a Pulumi YAML file, and
// returns the fenced samples of the YAML source and every translation.
func Render(ctx context.Context, snippet string, opts Options) (string, error) {
	sources, err := convert.Translate(ctx, opts.Converter, snippet, Targets, opts.Jobs)
	if err != nil {
		return "", err
	}

	sources[convert.YAML] = snippet

	return render.Execute(render.Listing, render.Samples(sources, Order))
}
