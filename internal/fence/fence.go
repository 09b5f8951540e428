// Package fence locates the fenced code samples of a markdown document.
package fence

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var reInfo = regexp.MustCompile(`^\s*([\w+#-]+)`)

// Block is one fenced code sample. StartLine and EndLine are the 1-based
// lines of its opening and closing fence.
type Block struct {
	Lang      string
	StartLine int
	EndLine   int
}

type Blocks []*Block

// Walk parses a markdown document and returns its fenced code samples in
// document order.
func Walk(source []byte) (Blocks, error) {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks Blocks

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if fcb, ok := node.(*ast.FencedCodeBlock); ok {
			blocks = append(blocks, newBlock(fcb, source))

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return blocks, nil
}

func newBlock(fcb *ast.FencedCodeBlock, source []byte) *Block {
	block := &Block{Lang: language(fcb, source)} //nolint:exhaustruct

	lines := fcb.Lines()

	switch {
	case fcb.Info != nil:
		block.StartLine = lineOf(source, fcb.Info.Segment.Start)
	case lines.Len() > 0:
		block.StartLine = lineOf(source, lines.At(0).Start) - 1
	}

	// The last segment ends after its newline, which puts it on the
	// closing fence.
	switch {
	case lines.Len() > 0:
		block.EndLine = lineOf(source, lines.At(lines.Len()-1).Stop)
	case block.StartLine > 0:
		block.EndLine = block.StartLine + 1
	}

	return block
}

func lineOf(source []byte, offset int) int {
	offset = min(offset, len(source))

	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}

func language(fcb *ast.FencedCodeBlock, source []byte) string {
	if fcb.Info == nil {
		return ""
	}

	if m := reInfo.FindSubmatch(fcb.Info.Text(source)); m != nil {
		return string(m[1])
	}

	return ""
}
