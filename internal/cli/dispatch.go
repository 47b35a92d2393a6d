package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/encorekit/encore-init/internal/fsutil"
	"github.com/encorekit/encore-init/internal/logging"
	"github.com/encorekit/encore-init/internal/packages"
	"github.com/encorekit/encore-init/internal/pipeline"
	"github.com/encorekit/encore-init/internal/prompt"
	"github.com/encorekit/encore-init/internal/report"
	"github.com/encorekit/encore-init/internal/wizard"
	"github.com/spf13/afero"
)

// CommandInit is the only command Dispatch understands.
const CommandInit = "init"

// ErrUnknownCommand is returned by Dispatch for any command other than init.
var ErrUnknownCommand = errors.New("unknown command")

// RunConfig is everything one Dispatch call needs. Nil collaborators are
// replaced with the production defaults.
type RunConfig struct {
	Command string
	Dir     string

	In  io.Reader
	Out io.Writer
	Err io.Writer

	Fs        afero.Fs
	Prompt    prompt.Provider
	Installer packages.Installer

	PackageManager string
	Color          string
	Verbose        bool
}

// reportedError marks an error already rendered to the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Dispatch runs rc.Command. Unknown commands fail before anything is read or
// written.
func Dispatch(ctx context.Context, rc RunConfig) error {
	switch rc.Command {
	case CommandInit:
		return runInit(ctx, rc.withDefaults())
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, rc.Command)
	}
}

func (rc RunConfig) withDefaults() RunConfig {
	if rc.Dir == "" {
		rc.Dir = "."
	}
	if rc.In == nil {
		rc.In = os.Stdin
	}
	if rc.Out == nil {
		rc.Out = os.Stdout
	}
	if rc.Err == nil {
		rc.Err = os.Stderr
	}
	if rc.Fs == nil {
		rc.Fs = afero.NewOsFs()
	}
	if rc.Prompt == nil {
		rc.Prompt = prompt.NewTerminal(rc.In, rc.Out)
	}
	if rc.PackageManager == "" {
		rc.PackageManager = packages.ManagerNPM
	}
	if rc.Installer == nil {
		rc.Installer = &packages.PlanInstaller{Manager: rc.PackageManager, Out: rc.Out}
	}
	if rc.Color == "" {
		rc.Color = "auto"
	}
	return rc
}

// runInit asks the init questions, then generates the files. It is the one
// place where failures are rendered.
func runInit(ctx context.Context, rc RunConfig) error {
	log := logging.New(rc.Err, rc.Verbose)
	defer log.Sync()

	fail := func(err error) error {
		report.NewPrinter(rc.Err, rc.Color).Failure(err)
		return reportedError{err}
	}

	cfg, err := wizard.Run(ctx, rc.Prompt)
	if err != nil {
		return fail(err)
	}

	p := &pipeline.Pipeline{
		Dir:       rc.Dir,
		Writer:    fsutil.NewWriter(rc.Fs, rc.Prompt, log),
		Installer: rc.Installer,
		Log:       log,
	}

	fmt.Fprintln(rc.Out)
	res, err := p.Generate(ctx, cfg)
	if err != nil {
		return fail(err)
	}

	report.NewPrinter(rc.Out, rc.Color).Success(res.Files(), nextSteps(rc.PackageManager))
	return nil
}

func nextSteps(manager string) []string {
	run := "npm run"
	if manager == packages.ManagerYarn {
		run = "yarn"
	}
	return []string{
		run + " encore:dev         # build once for development",
		run + " encore:watch       # rebuild on change",
		run + " encore:production  # optimized build",
	}
}
