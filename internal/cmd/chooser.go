package cmd

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/ezerfernandes/docu/internal/chooser"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

//go:embed help/chooser.md
var chooserHelp string

func chooserCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "chooser [flags] filename",
		Aliases: []string{"md"},
		Short:   "Regenerate chooser blocks from their YAML source",
		Long:    chooserHelp,
		Args:    cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			opts.createStatus(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return chooserRun(cmd, args[0], opts)
		},

		DisableAutoGenTag: true,
	}

	outputFlag(cmd, opts)
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a unified diff of the changes")
	cmd.MarkFlagsOneRequired("output", "diff")

	return cmd
}

func chooserRun(cmd *cobra.Command, filename string, opts *options) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	conv, jobs, err := opts.converter(cmd)
	if err != nil {
		return err
	}

	result, err := chooser.Rewrite(cmd.Context(), string(src), chooser.Options{
		Converter: conv,
		Jobs:      jobs,
		Status:    opts.status,
	})
	if err != nil {
		return err
	}

	if opts.diff {
		if err := printDiff(cmd, filename, string(src), result); err != nil {
			return err
		}
	}

	if len(opts.output) == 0 {
		return nil
	}

	return writeOutput(opts, result)
}

func printDiff(cmd *cobra.Command, filename, before, after string) error {
	udiff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{ //nolint:exhaustruct
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: filename,
		ToFile:   filename,
		Context:  3, //nolint:gomnd
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), udiff)

	return nil
}

func writeOutput(opts *options, result string) error {
	if err := os.WriteFile(opts.output, []byte(result), fileMode); err != nil {
		return err
	}

	opts.status("wrote %s\n", opts.output)

	return nil
}

func outputFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, overwritten if it exists")
}
