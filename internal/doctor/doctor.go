// Package doctor checks that a project directory is ready for init: Node.js
// and the package manager are installed, and package.json exists and is a
// valid manifest.
package doctor

import (
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/encorekit/encore-init/internal/fsutil"
	"github.com/encorekit/encore-init/internal/generator"
	"github.com/encorekit/encore-init/internal/manifest"
)

// MinNodeVersion is the oldest Node.js release Webpack Encore 4 supports.
const MinNodeVersion = ">= 14.0.0"

// Checker runs the checks. LookPath and Version are swappable for tests.
type Checker struct {
	Writer         *fsutil.Writer
	PackageManager string
	LookPath       func(name string) (string, error)
	Version        func(bin string) (string, error)
}

// New returns a Checker that inspects the real PATH.
func New(w *fsutil.Writer, packageManager string) *Checker {
	return &Checker{
		Writer:         w,
		PackageManager: packageManager,
		LookPath:       exec.LookPath,
		Version:        binaryVersion,
	}
}

// Run writes one line per check to out and returns the number of failures.
func (c *Checker) Run(out io.Writer, dir string) int {
	failures := 0

	fmt.Fprintln(out, "Runtime check:")
	if !c.checkNode(out) {
		failures++
	}
	if !c.checkBinary(out, c.PackageManager) {
		failures++
	}

	fmt.Fprintln(out, "Project check:")
	if !c.checkManifest(out, filepath.Join(dir, manifest.FileName)) {
		failures++
	}
	for _, name := range []string{generator.BundlerConfigFile, generator.PostCSSConfigFile} {
		path := filepath.Join(dir, name)
		if ok, _ := c.Writer.Exists(path); ok {
			fmt.Fprintf(out, "  [INFO] %s exists; init will ask before overwriting it\n", path)
		}
	}

	return failures
}

func (c *Checker) checkBinary(out io.Writer, name string) bool {
	path, err := c.LookPath(name)
	if err != nil {
		fmt.Fprintf(out, "  [MISS] %s not found\n", name)
		return false
	}
	fmt.Fprintf(out, "  [ OK ] %s found at %s\n", name, path)
	return true
}

func (c *Checker) checkNode(out io.Writer) bool {
	path, err := c.LookPath("node")
	if err != nil {
		fmt.Fprintln(out, "  [MISS] node not found")
		return false
	}

	raw, err := c.Version(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] could not read node version: %v\n", err)
		return false
	}

	ok, err := SatisfiesNode(raw)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return false
	}
	if !ok {
		fmt.Fprintf(out, "  [FAIL] node %s is too old (need %s)\n", raw, MinNodeVersion)
		return false
	}
	fmt.Fprintf(out, "  [ OK ] node %s found at %s\n", raw, path)
	return true
}

func (c *Checker) checkManifest(out io.Writer, path string) bool {
	exists, err := c.Writer.Exists(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return false
	}
	if !exists {
		fmt.Fprintf(out, "  [MISS] %s does not exist (run `npm init -y` first)\n", path)
		return false
	}

	data, err := c.Writer.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return false
	}
	result, err := manifest.Validate(data)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %s: %v\n", path, err)
		return false
	}
	if !result.Valid {
		fmt.Fprintf(out, "  [FAIL] %s has %d validation issue(s):\n", path, len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "    - %s\n", issue)
		}
		return false
	}
	fmt.Fprintf(out, "  [ OK ] %s is valid\n", path)
	return true
}

// SatisfiesNode reports whether a `node --version` string meets MinNodeVersion.
func SatisfiesNode(raw string) (bool, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(raw), "v"))
	if err != nil {
		return false, fmt.Errorf("parsing node version %q: %w", raw, err)
	}
	c, err := semver.NewConstraint(MinNodeVersion)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", MinNodeVersion, err)
	}
	return c.Check(v), nil
}

func binaryVersion(bin string) (string, error) {
	out, err := exec.Command(bin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", bin, err)
	}
	return strings.TrimSpace(string(out)), nil
}
