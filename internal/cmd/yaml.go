package cmd

import (
	_ "embed"
	"os"

	"github.com/ezerfernandes/docu/internal/listing"
	"github.com/spf13/cobra"
)

//go:embed help/yaml.md
var yamlHelp string

func yamlCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "yaml [flags] filename",
		Aliases: []string{"y"},
		Short:   "Render a Pulumi YAML file as code samples in every language",
		Long:    yamlHelp,
		Args:    cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			opts.createStatus(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return yamlRun(cmd, args[0], opts)
		},

		DisableAutoGenTag: true,
	}

	outputFlag(cmd, opts)

	if err := cmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}

	return cmd
}

func yamlRun(cmd *cobra.Command, filename string, opts *options) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	conv, jobs, err := opts.converter(cmd)
	if err != nil {
		return err
	}

	opts.status("converting %s\n", filename)

	result, err := listing.Render(cmd.Context(), string(src), listing.Options{
		Converter: conv,
		Jobs:      jobs,
	})
	if err != nil {
		return err
	}

	return writeOutput(opts, result)
}
