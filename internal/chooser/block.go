package chooser

import "strings"

// Block describes a chooser block found in a document.
type Block struct {
	Span
	Index     int
	StartLine int
	EndLine   int
	// Languages are the languages declared by the opening shortcode.
	Languages []string
	// Source is the trimmed YAML source, empty when the block has none.
	Source string
}

// Blocks returns a description of every chooser block in doc.
func Blocks(doc string) []*Block {
	spans := Find(doc)
	blocks := make([]*Block, 0, len(spans))

	for i, span := range spans {
		text := span.Text(doc)
		source, _ := ExtractYAML(text)

		blocks = append(blocks, &Block{
			Span:      span,
			Index:     i,
			StartLine: lineAt(doc, span.Start),
			EndLine:   lineAt(doc, span.End),
			Languages: Languages(text),
			Source:    strings.TrimSpace(source),
		})
	}

	return blocks
}
