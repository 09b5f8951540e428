package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// DefaultCommand is the conversion tool used when none is configured.
	DefaultCommand = "pulumi"

	projectFile = "Pulumi.yaml"
	outDir      = "out"
	fileMode    = 0o600
)

// Pulumi converts snippets by running `pulumi convert --generate-only` in a
// throwaway project directory.
type Pulumi struct {
	// Command is the tool invocation, e.g. ["pulumi"] or ["npx", "pulumi"].
	Command []string
	// Dir is where project directories are created, the system default when empty.
	Dir string
	// Keep leaves project directories on disk.
	Keep bool
	// Env holds KEY=VALUE pairs added to the process environment.
	Env []string

	// Stdout receives the tool's standard output, os.Stderr when nil.
	Stdout io.Writer
	// Stderr receives the tool's standard error, os.Stderr when nil.
	Stderr io.Writer
	// Status receives progress lines, nil discards them.
	Status func(format string, args ...any)

	execHandlers []func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc
}

// NewPulumi returns a Pulumi converter running the given command line.
func NewPulumi(command string) (*Pulumi, error) {
	words, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parsing command %q: %w", command, err)
	}

	if len(words) == 0 {
		return nil, errEmptyCommand
	}

	return &Pulumi{Command: words}, nil //nolint:exhaustruct
}

// Convert writes snippet as Pulumi.yaml, converts it to lang and returns the
// generated entry point source.
func (p *Pulumi) Convert(ctx context.Context, snippet string, lang Language) (string, error) {
	entry, err := EntryPoint(lang)
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp(p.Dir, "docu-"+string(lang)+"-")
	if err != nil {
		return "", err
	}

	// The tool runs inside dir, so --out must be absolute.
	if dir, err = filepath.Abs(dir); err != nil {
		return "", err
	}

	if p.Keep {
		p.status("keeping %s\n", dir)
	} else {
		defer os.RemoveAll(dir)
	}

	if err := os.WriteFile(filepath.Join(dir, projectFile), []byte(snippet), fileMode); err != nil {
		return "", err
	}

	args := append(p.command(),
		"convert", "--generate-only",
		"--from", "yaml",
		"--language", string(lang),
		"--out", filepath.Join(dir, outDir),
	)

	status, err := p.run(ctx, dir, args)
	if err != nil {
		return "", fmt.Errorf("converting to %s: %w", lang, err)
	}

	if status != 0 {
		return "", &ExitError{Language: lang, Status: status}
	}

	code, err := readEntryPoint(os.DirFS(filepath.Join(dir, outDir)), entry)
	if err != nil {
		return "", fmt.Errorf("converting to %s: %w", lang, err)
	}

	return code, nil
}

func (p *Pulumi) command() []string {
	if len(p.Command) == 0 {
		return []string{DefaultCommand}
	}

	cmd := make([]string, len(p.Command))
	copy(cmd, p.Command)

	return cmd
}

func (p *Pulumi) status(format string, args ...any) {
	if p.Status != nil {
		p.Status(format, args...)
	}
}

func (p *Pulumi) run(ctx context.Context, dir string, args []string) (uint8, error) {
	line, err := quote(args)
	if err != nil {
		return 0, err
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(line), "")
	if err != nil {
		return 0, err
	}

	stdout, stderr := p.Stdout, p.Stderr
	if stdout == nil {
		stdout = os.Stderr
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	opts := []interp.RunnerOption{
		interp.Dir(dir),
		interp.StdIO(nil, stdout, stderr),
		interp.Env(expand.ListEnviron(append(os.Environ(), p.Env...)...)),
	}

	if len(p.execHandlers) != 0 {
		opts = append(opts, interp.ExecHandlers(p.execHandlers...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return 0, err
	}

	err = runner.Run(ctx, file)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return status, nil
		}

		return 0, err
	}

	return 0, nil
}

func quote(args []string) (string, error) {
	words := make([]string, 0, len(args))

	for _, arg := range args {
		word, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("quoting %q: %w", arg, err)
		}

		words = append(words, word)
	}

	return strings.Join(words, " "), nil
}

func readEntryPoint(fsys fs.FS, file string) (string, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return "", fmt.Errorf("reading generated %s: %w", file, err)
	}

	return string(data), nil
}

var errEmptyCommand = errors.New("conversion command is empty")
