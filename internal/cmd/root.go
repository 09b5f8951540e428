// Package cmd implements the docu command line.
package cmd

import (
	"fmt"
	"io"

	"github.com/ezerfernandes/docu/internal/config"
	"github.com/ezerfernandes/docu/internal/convert"
	"github.com/spf13/cobra"
)

// Set via -ldflags during build.
var version = "dev" //nolint:gochecknoglobals

const (
	fileMode = 0o644
)

type statusFunc func(format string, args ...any)

type converterFunc func(cfg config.Config, stdout, stderr io.Writer, status statusFunc) (convert.Converter, error)

type options struct {
	configPath string
	command    string
	dir        string
	keep       bool
	jobs       int
	quiet      bool

	output string
	diff   bool

	status       statusFunc
	newConverter converterFunc
}

// Execute runs the docu command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	return execute(args, stdout, stderr, pulumiConverter)
}

func execute(args []string, stdout, stderr io.Writer, newConverter converterFunc) int {
	opts := &options{newConverter: newConverter} //nolint:exhaustruct

	root := rootCmd(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		return 1
	}

	return 0
}

func rootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{ //nolint:exhaustruct
		Use:   "docu",
		Short: "Translate Pulumi YAML examples in documentation",
		Long: `docu translates the Pulumi YAML examples of Pulumi docs markdown into
TypeScript, Python, Go, C# and Java by running "pulumi convert".

Edit only the YAML source of a chooser block, then run "docu chooser" on the
file to regenerate every other language.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,

		DisableAutoGenTag: true,
	}

	flags := root.PersistentFlags()

	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.command, "command", convert.DefaultCommand, "conversion tool command line")
	flags.StringVarP(&opts.dir, "dir", "d", "", "parent directory of temporary pulumi projects")
	flags.BoolVarP(&opts.keep, "keep", "k", false, "don't remove temporary pulumi projects")
	flags.IntVarP(&opts.jobs, "jobs", "j", 1, "number of conversions to run at once")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress status messages and tool output")

	root.AddCommand(
		chooserCmd(opts),
		yamlCmd(opts),
		listCmd(opts),
		versionCmd(),
	)

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{ //nolint:exhaustruct
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "docu version %s\n", version)
		},
	}
}

func (opts *options) createStatus(out io.Writer) {
	if opts.quiet {
		opts.status = func(string, ...any) {}

		return
	}

	opts.status = func(format string, args ...any) {
		fmt.Fprintf(out, format, args...)
	}
}

// settings merges the configuration file with flags given on the command line.
func (opts *options) settings(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if len(opts.configPath) != 0 {
		var err error

		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()

	if flags.Changed("command") {
		cfg.Command = opts.command
	}

	if flags.Changed("dir") {
		cfg.Dir = opts.dir
	}

	if flags.Changed("keep") {
		cfg.Keep = opts.keep
	}

	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}

	return cfg, cfg.Validate()
}

func (opts *options) converter(cmd *cobra.Command) (convert.Converter, int, error) {
	cfg, err := opts.settings(cmd)
	if err != nil {
		return nil, 0, err
	}

	stdout := cmd.ErrOrStderr()
	if opts.quiet {
		stdout = io.Discard
	}

	conv, err := opts.newConverter(cfg, stdout, cmd.ErrOrStderr(), opts.status)
	if err != nil {
		return nil, 0, err
	}

	return conv, cfg.Jobs, nil
}

func pulumiConverter(cfg config.Config, stdout, stderr io.Writer, status statusFunc) (convert.Converter, error) {
	conv, err := convert.NewPulumi(cfg.Command)
	if err != nil {
		return nil, err
	}

	conv.Dir = cfg.Dir
	conv.Keep = cfg.Keep
	conv.Env = cfg.Environ()
	conv.Stdout = stdout
	conv.Stderr = stderr
	conv.Status = status

	return conv, nil
}
