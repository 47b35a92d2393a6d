// Package pipeline runs the generation steps for a resolved app config in a
// fixed order: bundler config, package installation, manifest scripts, then
// PostCSS config. The first failing step stops the run; files written by
// earlier steps are left in place.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/encorekit/encore-init/internal/appconfig"
	"github.com/encorekit/encore-init/internal/fsutil"
	"github.com/encorekit/encore-init/internal/generator"
	"github.com/encorekit/encore-init/internal/manifest"
	"github.com/encorekit/encore-init/internal/packages"
	"go.uber.org/zap"
)

// Step names, in execution order.
const (
	StepBundler  = "bundler config"
	StepPackages = "package installation"
	StepManifest = "manifest scripts"
	StepPostCSS  = "postcss config"
)

// StepResult records what one step did to one file. Path is empty for steps
// that write nothing.
type StepResult struct {
	Step    string
	Path    string
	Outcome fsutil.Outcome
}

// Result lists the completed steps in execution order.
type Result struct {
	Steps []StepResult
}

// Pipeline holds the collaborators the steps need.
type Pipeline struct {
	Dir       string
	Writer    *fsutil.Writer
	Installer packages.Installer
	Log       *zap.Logger
}

type step struct {
	name string
	run  func(ctx context.Context, cfg *appconfig.AppConfig) (StepResult, error)
}

// Generate runs every step for cfg. On failure the returned Result holds the
// steps that completed and the error names the failing step.
func (p *Pipeline) Generate(ctx context.Context, cfg *appconfig.AppConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("generating", zap.Stringer("config", cfg), zap.String("dir", p.Dir))

	steps := []step{
		{StepBundler, p.writeBundler},
		{StepPackages, p.installPackages},
		{StepManifest, p.updateManifest},
		{StepPostCSS, p.writePostCSS},
	}

	res := &Result{}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("%s: %w", s.name, err)
		}

		sr, err := s.run(ctx, cfg)
		if err != nil {
			log.Debug("step failed", zap.String("step", s.name), zap.Error(err))
			return res, fmt.Errorf("%s: %w", s.name, err)
		}
		sr.Step = s.name
		log.Debug("step done", zap.String("step", s.name), zap.String("path", sr.Path), zap.Stringer("outcome", sr.Outcome))
		res.Steps = append(res.Steps, sr)
	}
	return res, nil
}

func (p *Pipeline) writeBundler(ctx context.Context, cfg *appconfig.AppConfig) (StepResult, error) {
	outcome, err := generator.WriteBundlerConfig(ctx, p.Writer, p.Dir, cfg)
	return StepResult{Path: generator.BundlerConfigFile, Outcome: outcome}, err
}

// installPackages hands the dependencies not yet declared in package.json to the
// installer. A missing or invalid manifest is reported by the manifest step,
// so here it just means nothing is declared yet.
func (p *Pipeline) installPackages(ctx context.Context, cfg *appconfig.AppConfig) (StepResult, error) {
	set, err := packages.Required(cfg)
	if err != nil {
		return StepResult{}, err
	}

	if doc, err := manifest.Load(p.Writer, filepath.Join(p.Dir, manifest.FileName)); err == nil {
		set = set.Pending(doc.Dependencies())
	}

	if err := p.Installer.Install(ctx, p.Dir, set); err != nil {
		return StepResult{}, err
	}
	return StepResult{Outcome: fsutil.Skipped}, nil
}

func (p *Pipeline) updateManifest(_ context.Context, _ *appconfig.AppConfig) (StepResult, error) {
	outcome, err := manifest.UpdateScripts(p.Writer, filepath.Join(p.Dir, manifest.FileName))
	return StepResult{Path: manifest.FileName, Outcome: outcome}, err
}

func (p *Pipeline) writePostCSS(ctx context.Context, _ *appconfig.AppConfig) (StepResult, error) {
	outcome, err := generator.WritePostCSSConfig(ctx, p.Writer, p.Dir)
	return StepResult{Path: generator.PostCSSConfigFile, Outcome: outcome}, err
}

// Files returns one line per file-writing step, e.g. "created webpack.config.js".
func (r *Result) Files() []string {
	var lines []string
	for _, s := range r.Steps {
		if s.Path == "" {
			continue
		}
		line := fmt.Sprintf("%s %s", s.Outcome, s.Path)
		if s.Outcome == fsutil.Skipped {
			line = fmt.Sprintf("kept existing %s", s.Path)
		}
		lines = append(lines, line)
	}
	return lines
}
