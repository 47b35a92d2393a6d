package packages

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/encorekit/encore-init/internal/appconfig"
)

// Package is an npm package name with the version range to install.
type Package struct {
	Name  string
	Range string
}

// Spec returns the name@range form accepted by npm and yarn.
func (p Package) Spec() string {
	return p.Name + "@" + p.Range
}

// Set holds the runtime and development dependencies of a build, each
// sorted by name.
type Set struct {
	Runtime []Package
	Dev     []Package
}

// Empty reports whether the set has no packages.
func (s Set) Empty() bool {
	return len(s.Runtime) == 0 && len(s.Dev) == 0
}

var (
	basePackages = []Package{
		{Name: "@symfony/webpack-encore", Range: "^4.0.0"},
		{Name: "postcss-loader", Range: "^7.0.0"},
		{Name: "autoprefixer", Range: "^10.4.0"},
	}
	reactRuntime = []Package{
		{Name: "react", Range: "^18.2.0"},
		{Name: "react-dom", Range: "^18.2.0"},
	}
	reactDev   = []Package{{Name: "@babel/preset-react", Range: "^7.0.0"}}
	vueRuntime = []Package{{Name: "vue", Range: "^3.2.0"}}
	vueDev     = []Package{{Name: "vue-loader", Range: "^17.0.0"}}
	sassDev    = []Package{
		{Name: "sass", Range: "^1.56.0"},
		{Name: "sass-loader", Range: "^13.0.0"},
	}
	lessDev = []Package{
		{Name: "less", Range: "^4.1.0"},
		{Name: "less-loader", Range: "^11.0.0"},
	}
)

// Required returns the packages implied by cfg. Every range is checked to be
// a valid semver constraint.
func Required(cfg *appconfig.AppConfig) (Set, error) {
	var set Set
	set.Dev = append(set.Dev, basePackages...)

	switch cfg.JSType {
	case appconfig.Vanilla:
	case appconfig.React:
		set.Runtime = append(set.Runtime, reactRuntime...)
		set.Dev = append(set.Dev, reactDev...)
	case appconfig.Vue:
		set.Runtime = append(set.Runtime, vueRuntime...)
		set.Dev = append(set.Dev, vueDev...)
	default:
		return Set{}, fmt.Errorf("unsupported javascript flavor %s", cfg.JSType)
	}

	switch cfg.CSSType {
	case appconfig.CSS:
	case appconfig.Sass:
		set.Dev = append(set.Dev, sassDev...)
	case appconfig.Less:
		set.Dev = append(set.Dev, lessDev...)
	default:
		return Set{}, fmt.Errorf("unsupported css flavor %s", cfg.CSSType)
	}

	for _, group := range [][]Package{set.Runtime, set.Dev} {
		for _, p := range group {
			if _, err := semver.NewConstraint(p.Range); err != nil {
				return Set{}, fmt.Errorf("package %s has invalid range %q: %w", p.Name, p.Range, err)
			}
		}
	}

	sortPackages(set.Runtime)
	sortPackages(set.Dev)
	return set, nil
}

// Pending returns the packages of s that are not declared in declared, a map
// of package name to version range as found in package.json. A package whose
// declared range is a pinned version outside the required range is kept so
// the plan upgrades it.
func (s Set) Pending(declared map[string]string) Set {
	return Set{
		Runtime: pending(s.Runtime, declared),
		Dev:     pending(s.Dev, declared),
	}
}

func pending(pkgs []Package, declared map[string]string) []Package {
	var out []Package
	for _, p := range pkgs {
		have, ok := declared[p.Name]
		if !ok || !satisfied(p.Range, have) {
			out = append(out, p)
		}
	}
	return out
}

// satisfied reports whether a declared range can be trusted to satisfy want.
// Only exact versions are checked; any other range (including tags and
// URLs) is accepted as-is.
func satisfied(want, declared string) bool {
	v, err := semver.StrictNewVersion(declared)
	if err != nil {
		return true
	}
	c, err := semver.NewConstraint(want)
	if err != nil {
		return true
	}
	return c.Check(v)
}

func sortPackages(pkgs []Package) {
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
}
