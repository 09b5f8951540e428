package chooser

import (
	"context"
	"fmt"
	"strings"

	"github.com/ezerfernandes/docu/internal/convert"
	"github.com/ezerfernandes/docu/internal/render"
)

var (
	// Targets are the languages generated from a block's YAML source, in
	// conversion order.
	Targets = []convert.Language{ //nolint:gochecknoglobals
		convert.TypeScript, convert.Python, convert.Go, convert.CSharp, convert.Java,
	}

	// Order is the language order of a rendered chooser block.
	Order = []convert.Language{ //nolint:gochecknoglobals
		convert.TypeScript, convert.Python, convert.Go, convert.CSharp, convert.Java, convert.YAML,
	}
)

// Options configures Rewrite.
type Options struct {
	Converter convert.Converter
	// Jobs is the number of conversions run at once for a block.
	Jobs int
	// Status receives progress lines, nil discards them.
	Status func(format string, args ...any)
}

func (o Options) status(format string, args ...any) {
	if o.Status != nil {
		o.Status(format, args...)
	}
}

// Render returns a chooser block holding the given sources. Only languages
// present in sources are listed, in Order.
func Render(sources render.Sources) (string, error) {
	out, err := render.Execute(render.Chooser, render.Samples(sources, Order))
	if err != nil {
		return "", err
	}

	return strings.TrimSuffix(out, "\n"), nil
}

// Rewrite regenerates every chooser block of doc that has a YAML source.
// Blocks without one, and all text outside blocks, are kept verbatim. Any
// conversion failure aborts the rewrite.
func Rewrite(ctx context.Context, doc string, opts Options) (string, error) {
	spans := Find(doc)
	if len(spans) == 0 {
		return doc, nil
	}

	var buf strings.Builder

	last := 0

	for i, span := range spans {
		text := span.Text(doc)

		buf.WriteString(doc[last:span.Start])
		last = span.End

		startLine, endLine := lineAt(doc, span.Start), lineAt(doc, span.End)

		snippet, ok := ExtractYAML(text)
		if ok {
			snippet = strings.TrimSpace(snippet)
		}

		if len(snippet) == 0 {
			opts.status("block %d (L%d-%d): no yaml source, skipping\n", i, startLine, endLine)
			buf.WriteString(text)

			continue
		}

		opts.status("block %d (L%d-%d): converting\n", i, startLine, endLine)

		sources, err := convert.Translate(ctx, opts.Converter, snippet, Targets, opts.Jobs)
		if err != nil {
			return "", fmt.Errorf("block %d (L%d-%d): %w", i, startLine, endLine, err)
		}

		sources[convert.YAML] = snippet

		block, err := Render(sources)
		if err != nil {
			return "", err
		}

		buf.WriteString(block)
	}

	buf.WriteString(doc[last:])

	return buf.String(), nil
}

func lineAt(source string, offset int) int {
	return strings.Count(source[:offset], "\n") + 1
}
