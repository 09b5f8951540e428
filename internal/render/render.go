// Package render turns per-language sources into markdown code listings.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"github.com/Masterminds/sprig/v3"
	"github.com/ezerfernandes/docu/internal/convert"
)

// Template names.
const (
	Chooser = "chooser.md.tmpl"
	Listing = "listing.md.tmpl"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateCache sync.Map

// Sources holds program text keyed by language.
type Sources map[convert.Language]string

// Sample is one fenced code sample.
type Sample struct {
	Lang string
	Code string
}

type data struct {
	Languages []string
	Samples   []Sample
}

// Samples returns the samples of sources in order, skipping languages that
// have no source. Trailing whitespace is dropped so closing fences follow the
// last line of code.
func Samples(sources Sources, order []convert.Language) []Sample {
	samples := make([]Sample, 0, len(order))

	for _, lang := range order {
		code, ok := sources[lang]
		if !ok {
			continue
		}

		samples = append(samples, Sample{
			Lang: string(lang),
			Code: strings.TrimRightFunc(code, unicode.IsSpace),
		})
	}

	return samples
}

// Execute renders the named template with samples.
func Execute(name string, samples []Sample) (string, error) {
	tmpl, err := load(name)
	if err != nil {
		return "", err
	}

	langs := make([]string, len(samples))
	for i, s := range samples {
		langs[i] = s.Lang
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data{Languages: langs, Samples: samples}); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	return buf.String(), nil
}

func load(name string) (*template.Template, error) {
	if cached, ok := templateCache.Load(name); ok {
		if tmpl, ok := cached.(*template.Template); ok {
			return tmpl, nil
		}
	}

	content, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}

	// Hugo shortcodes use {{ }}, so actions are delimited with [[ ]].
	tmpl, err := template.New(name).
		Delims("[[", "]]").
		Funcs(sprig.TxtFuncMap()).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	templateCache.Store(name, tmpl)

	return tmpl, nil
}
