// Package chooser finds Hugo chooser shortcode blocks in Pulumi docs markdown
// and regenerates them from their YAML source.
package chooser

import (
	"regexp"
	"strings"
)

const (
	shortcodeOpen = "{{<"
	closeMarker   = "{{< /chooser >}}"
)

var (
	reOpen      = regexp.MustCompile(`\{\{< chooser[^>]+>\}\}`)
	reLanguages = regexp.MustCompile(`language[[:space:]]+"([^"]*)"`)
	reYAML      = regexp.MustCompile("```yaml([^`]*)```")
)

// Span is the byte range [Start, End) of one chooser block, from its opening
// shortcode through the closing {{< /chooser >}}.
type Span struct {
	Start int
	End   int
}

// Text returns the block text within doc.
func (s Span) Text(doc string) string {
	return doc[s.Start:s.End]
}

// Find returns the chooser blocks of doc in order.
//
// A block runs from an opening shortcode to the next "{{<" after it, which
// must start the closing shortcode. Other braces, such as {{% choosable %}}
// or "{{" inside code, do not end a block. An opening shortcode whose next
// "{{<" is anything else does not start a block.
func Find(doc string) []Span {
	var spans []Span

	idx := 0

	for idx < len(doc) {
		loc := reOpen.FindStringIndex(doc[idx:])
		if loc == nil {
			break
		}

		start := idx + loc[0]
		body := idx + loc[1]

		next := strings.Index(doc[body:], shortcodeOpen)
		if next >= 0 && strings.HasPrefix(doc[body+next:], closeMarker) {
			end := body + next + len(closeMarker)
			spans = append(spans, Span{Start: start, End: end})
			idx = end

			continue
		}

		idx = start + 1
	}

	return spans
}

// ExtractYAML returns the content of the first ```yaml fence in block. The
// bool return is false when there is no such fence or it is empty.
func ExtractYAML(block string) (string, bool) {
	subs := reYAML.FindStringSubmatch(block)
	if subs == nil || len(subs[1]) == 0 {
		return "", false
	}

	return subs[1], true
}

// Languages returns the languages declared by the opening shortcode of block.
func Languages(block string) []string {
	open := reOpen.FindString(block)
	if len(open) == 0 {
		return nil
	}

	subs := reLanguages.FindStringSubmatch(open)
	if subs == nil {
		return nil
	}

	return strings.FieldsFunc(subs[1], func(r rune) bool { return r == ',' })
}
