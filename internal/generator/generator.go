package generator

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/encorekit/encore-init/internal/appconfig"
	"github.com/encorekit/encore-init/internal/fsutil"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Generated file names, relative to the project directory.
const (
	BundlerConfigFile = "webpack.config.js"
	PostCSSConfigFile = "postcss.config.js"
)

// Fixed build locations written into the bundler config.
const (
	OutputPath = "build/"
	PublicPath = "/"
)

// Encore directives, as they appear in webpack.config.js.
const (
	DirectiveCleanup = "cleanupOutputBeforeBuild"
	DirectivePostCSS = "enablePostCssLoader"
	DirectiveReact   = "enableReactPreset"
	DirectiveVue     = "enableVueLoader"
	DirectiveSass    = "enableSassLoader"
	DirectiveLess    = "enableLessLoader"
)

// bundlerData holds the template variables of webpack.config.js.
type bundlerData struct {
	OutputPath string
	PublicPath string
	Directives []string
}

// jsDirective returns the framework directive for j, or "" for none.
func jsDirective(j appconfig.JSType) (string, error) {
	switch j {
	case appconfig.Vanilla:
		return "", nil
	case appconfig.React:
		return DirectiveReact, nil
	case appconfig.Vue:
		return DirectiveVue, nil
	default:
		return "", fmt.Errorf("unsupported javascript flavor %s", j)
	}
}

// cssDirective returns the preprocessor directive for c, or "" for plain CSS.
func cssDirective(c appconfig.CSSType) (string, error) {
	switch c {
	case appconfig.CSS:
		return "", nil
	case appconfig.Sass:
		return DirectiveSass, nil
	case appconfig.Less:
		return DirectiveLess, nil
	default:
		return "", fmt.Errorf("unsupported css flavor %s", c)
	}
}

// BundlerConfig renders webpack.config.js for cfg.
func BundlerConfig(cfg *appconfig.AppConfig) (string, error) {
	data := bundlerData{
		OutputPath: OutputPath,
		PublicPath: PublicPath,
	}

	js, err := jsDirective(cfg.JSType)
	if err != nil {
		return "", err
	}
	css, err := cssDirective(cfg.CSSType)
	if err != nil {
		return "", err
	}
	for _, d := range []string{js, css} {
		if d != "" {
			data.Directives = append(data.Directives, d)
		}
	}

	return render(BundlerConfigFile, data)
}

// PostCSSConfig renders postcss.config.js. It does not depend on any answer.
func PostCSSConfig() (string, error) {
	return render(PostCSSConfigFile, nil)
}

// WriteBundlerConfig renders webpack.config.js into dir through a guarded write.
func WriteBundlerConfig(ctx context.Context, w *fsutil.Writer, dir string, cfg *appconfig.AppConfig) (fsutil.Outcome, error) {
	content, err := BundlerConfig(cfg)
	if err != nil {
		return fsutil.Skipped, err
	}
	return w.WriteSafe(ctx, filepath.Join(dir, BundlerConfigFile), content)
}

// WritePostCSSConfig renders postcss.config.js into dir through a guarded write.
func WritePostCSSConfig(ctx context.Context, w *fsutil.Writer, dir string) (fsutil.Outcome, error) {
	content, err := PostCSSConfig()
	if err != nil {
		return fsutil.Skipped, err
	}
	return w.WriteSafe(ctx, filepath.Join(dir, PostCSSConfigFile), content)
}

// render executes the embedded template for the named output file.
func render(name string, data any) (string, error) {
	tmplPath := "templates/" + name + ".tmpl"
	tmplBytes, err := templateFS.ReadFile(tmplPath)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(name).Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}
