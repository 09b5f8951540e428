package chooser_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ezerfernandes/docu/internal/chooser"
	"github.com/ezerfernandes/docu/internal/convert"
	"github.com/ezerfernandes/docu/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlBlock = "{{< chooser language \"yaml\" >}}\n" +
	"{{% choosable language yaml %}}\n" +
	"```yaml\nname: test\n```\n" +
	"{{% /choosable %}}\n" +
	"{{< /chooser >}}"

type fakeConverter struct {
	mu    sync.Mutex
	calls []convert.Language
	fail  convert.Language
}

func (f *fakeConverter) Convert(_ context.Context, snippet string, lang convert.Language) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, lang)
	f.mu.Unlock()

	if lang == f.fail {
		return "", errConvert
	}

	return "// " + string(lang) + "\n" + snippet + "\n", nil
}

func rewrite(t *testing.T, doc string) string {
	t.Helper()

	out, err := chooser.Rewrite(context.Background(), doc, chooser.Options{Converter: new(fakeConverter)}) //nolint:exhaustruct
	require.NoError(t, err)

	return out
}

func TestFind(t *testing.T) {
	t.Parallel()

	doc := "intro\n" + yamlBlock + "\nmiddle\n" + yamlBlock + "\noutro\n"

	spans := chooser.Find(doc)
	require.Len(t, spans, 2)

	for _, span := range spans {
		assert.Equal(t, yamlBlock, span.Text(doc))
	}

	assert.Equal(t, len("intro\n"), spans[0].Start)
}

func TestFindLookalikeBraces(t *testing.T) {
	t.Parallel()

	block := "{{< chooser language \"go,yaml\" >}}\n" +
		"{{% choosable language go %}}\n" +
		"```go\nvar m = map[string][]int{\"a\": {1}}\nvar s = []struct{}{{}}\n```\n" +
		"{{% /choosable %}}\n" +
		"{{< /chooser >}}"

	spans := chooser.Find("before " + block + " after")
	require.Len(t, spans, 1)
	assert.Equal(t, block, spans[0].Text("before "+block+" after"))
}

func TestFindUnclosed(t *testing.T) {
	t.Parallel()

	doc := "{{< chooser language \"yaml\" >}}\nstray\n{{< notice >}}\n" + yamlBlock

	spans := chooser.Find(doc)
	require.Len(t, spans, 1)
	assert.Equal(t, yamlBlock, spans[0].Text(doc))

	assert.Empty(t, chooser.Find("{{< chooser language \"yaml\" >}}\nnever closed\n"))
}

func TestExtractYAML(t *testing.T) {
	t.Parallel()

	snippet, ok := chooser.ExtractYAML(yamlBlock)
	require.True(t, ok)
	assert.Equal(t, "\nname: test\n", snippet)

	_, ok = chooser.ExtractYAML("```go\npackage main\n```")
	assert.False(t, ok)

	_, ok = chooser.ExtractYAML("```yaml```")
	assert.False(t, ok)
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"typescript", "python", "yaml"},
		chooser.Languages("{{< chooser language \"typescript,python,yaml\" >}}\n{{< /chooser >}}"))
	assert.Nil(t, chooser.Languages("no shortcode"))
}

func TestRewriteNoBlocks(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{
		"",
		"# Title\n\nplain text\n",
		"```yaml\nname: outside\n```\n",
		"{{% notice %}}\n{{< chooser language \"yaml\" >}}\n",
	} {
		conv := new(fakeConverter)

		out, err := chooser.Rewrite(context.Background(), doc, chooser.Options{Converter: conv}) //nolint:exhaustruct
		require.NoError(t, err)
		assert.Equal(t, doc, out)
		assert.Empty(t, conv.calls)
	}
}

func TestRewriteBlockWithoutYAML(t *testing.T) {
	t.Parallel()

	block := "{{< chooser language \"go\" >}}\n" +
		"{{% choosable language go %}}\n```go\npackage main\n```\n{{% /choosable %}}\n" +
		"{{< /chooser >}}"
	doc := "a\n" + block + "\nb\n" + yamlBlock + "\nc"

	out := rewrite(t, doc)

	assert.True(t, strings.HasPrefix(out, "a\n"+block+"\nb\n"))
	assert.True(t, strings.HasSuffix(out, "\nc"))
	assert.NotContains(t, out, yamlBlock)
}

func TestRewriteSingleBlock(t *testing.T) {
	t.Parallel()

	out := rewrite(t, yamlBlock)

	assert.True(t, strings.HasPrefix(out, `{{< chooser language "typescript,python,go,csharp,java,yaml" >}}`))
	assert.True(t, strings.HasSuffix(out, "\n{{< /chooser >}}"))

	for _, lang := range chooser.Order {
		assert.Contains(t, out, "{{% choosable language "+string(lang)+" %}}\n\n```"+string(lang)+"\n")
	}

	assert.Contains(t, out, "```java\n// java\nname: test\n```\n")
	assert.Contains(t, out, "```yaml\nname: test\n```\n")
}

func TestRewriteConversionOrder(t *testing.T) {
	t.Parallel()

	conv := new(fakeConverter)

	_, err := chooser.Rewrite(context.Background(), yamlBlock, chooser.Options{Converter: conv}) //nolint:exhaustruct
	require.NoError(t, err)
	assert.Equal(t, chooser.Targets, conv.calls)
}

func TestRewriteTwoBlocks(t *testing.T) {
	t.Parallel()

	doc := "head\n\n" + yamlBlock + "\n\nbetween {{ .Params.x }}\n\n" +
		strings.Replace(yamlBlock, "name: test", "name: other", 1) + "\ntail\n"

	out := rewrite(t, doc)

	spans := chooser.Find(out)
	require.Len(t, spans, 2)

	assert.Equal(t, "head\n\n", out[:spans[0].Start])
	assert.Equal(t, "\n\nbetween {{ .Params.x }}\n\n", out[spans[0].End:spans[1].Start])
	assert.Equal(t, "\ntail\n", out[spans[1].End:])

	first, _ := chooser.ExtractYAML(spans[0].Text(out))
	second, _ := chooser.ExtractYAML(spans[1].Text(out))

	assert.Equal(t, "name: test", strings.TrimSpace(first))
	assert.Equal(t, "name: other", strings.TrimSpace(second))
}

func TestRewriteRoundTrip(t *testing.T) {
	t.Parallel()

	doc := "{{< chooser language \"yaml\" >}}\n```yaml\n\n  resources:\n    bucket:\n      type: aws:s3:Bucket\n\n```\n{{< /chooser >}}"

	out := rewrite(t, doc)

	spans := chooser.Find(out)
	require.Len(t, spans, 1)

	snippet, ok := chooser.ExtractYAML(spans[0].Text(out))
	require.True(t, ok)
	assert.Equal(t, "resources:\n    bucket:\n      type: aws:s3:Bucket", strings.TrimSpace(snippet))
}

func TestRewriteIdempotent(t *testing.T) {
	t.Parallel()

	once := rewrite(t, "x\n"+yamlBlock+"\ny\n")
	twice := rewrite(t, once)

	assert.Equal(t, once, twice)
}

func TestRewriteParallel(t *testing.T) {
	t.Parallel()

	doc := yamlBlock + "\n" + yamlBlock

	sequential := rewrite(t, doc)

	parallel, err := chooser.Rewrite(context.Background(), doc, chooser.Options{ //nolint:exhaustruct
		Converter: new(fakeConverter),
		Jobs:      5,
	})
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
}

func TestRewriteConversionFailure(t *testing.T) {
	t.Parallel()

	conv := &fakeConverter{fail: convert.Go} //nolint:exhaustruct

	out, err := chooser.Rewrite(context.Background(), "a\n"+yamlBlock, chooser.Options{Converter: conv}) //nolint:exhaustruct
	require.ErrorIs(t, err, errConvert)
	assert.Empty(t, out)
	assert.Contains(t, err.Error(), "block 0 (L2-8)")
}

func TestRewriteStatus(t *testing.T) {
	t.Parallel()

	var lines []string

	doc := yamlBlock + "\n{{< chooser language \"go\" >}}\n{{< /chooser >}}"

	_, err := chooser.Rewrite(context.Background(), doc, chooser.Options{ //nolint:exhaustruct
		Converter: new(fakeConverter),
		Status:    func(format string, _ ...any) { lines = append(lines, format) },
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "converting")
	assert.Contains(t, lines[1], "skipping")
}

func TestRenderSelectorMatchesSamples(t *testing.T) {
	t.Parallel()

	out, err := chooser.Render(render.Sources{
		convert.YAML:   "name: test",
		convert.Python: "import pulumi",
		convert.Java:   "class App {}",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `{{< chooser language "python,java,yaml" >}}`))
	assert.Equal(t, 3, strings.Count(out, "{{% /choosable %}}"))
	assert.NotContains(t, out, "```go")
}

func TestBlocks(t *testing.T) {
	t.Parallel()

	doc := "# T\n\n" + yamlBlock + "\n\n{{< chooser language \"go,python\" >}}\n{{< /chooser >}}\n"

	blocks := chooser.Blocks(doc)
	require.Len(t, blocks, 2)

	assert.Equal(t, 0, blocks[0].Index)
	assert.Equal(t, 3, blocks[0].StartLine)
	assert.Equal(t, 9, blocks[0].EndLine)
	assert.Equal(t, []string{"yaml"}, blocks[0].Languages)
	assert.Equal(t, "name: test", blocks[0].Source)

	assert.Equal(t, []string{"go", "python"}, blocks[1].Languages)
	assert.Empty(t, blocks[1].Source)
}

var errConvert = errors.New("conversion failed")
