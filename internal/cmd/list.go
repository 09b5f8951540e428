package cmd

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/ezerfernandes/docu/internal/chooser"
	"github.com/ezerfernandes/docu/internal/fence"
	"github.com/gobwas/glob"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

//go:embed help/list.md
var listHelp string

func listCmd(_ *options) *cobra.Command {
	var lang string

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "list [flags] filename",
		Aliases: []string{"ls"},
		Short:   "List chooser blocks",
		Long:    listHelp,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := langFilter(lang)
			if err != nil {
				return err
			}

			return listRun(cmd, args[0], filter)
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "only blocks declaring a language matching this glob")

	return cmd
}

type filterFunc func(langs []string) bool

func langFilter(pattern string) (filterFunc, error) {
	if len(pattern) == 0 {
		return func([]string) bool { return true }, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid language pattern %q: %w", pattern, err)
	}

	return func(langs []string) bool {
		for _, lang := range langs {
			if g.Match(lang) {
				return true
			}
		}

		return false
	}, nil
}

func listRun(cmd *cobra.Command, filename string, filter filterFunc) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	doc := string(src)

	tbl := table.New("Block", "Lines", "Languages", "Source", "Samples").WithWriter(cmd.OutOrStdout())

	for _, block := range chooser.Blocks(doc) {
		if !filter(block.Languages) {
			continue
		}

		fences, err := fence.Walk([]byte(block.Text(doc)))
		if err != nil {
			return err
		}

		source := "-"
		if len(block.Source) != 0 {
			source = "yaml"
		}

		tbl.AddRow(
			block.Index,
			fmt.Sprintf("%d-%d", block.StartLine, block.EndLine),
			strings.Join(block.Languages, ","),
			source,
			samples(fences, block.StartLine-1),
		)
	}

	tbl.Print()

	return nil
}

// samples formats fenced samples as lang:start-end, with lines shifted by
// offset into document lines.
func samples(fences fence.Blocks, offset int) string {
	items := make([]string, 0, len(fences))

	for _, f := range fences {
		lang := f.Lang
		if len(lang) == 0 {
			lang = "-"
		}

		items = append(items, fmt.Sprintf("%s:%d-%d", lang, f.StartLine+offset, f.EndLine+offset))
	}

	return strings.Join(items, ",")
}
