package packages

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Installer installs a package set into the project at dir.
type Installer interface {
	Install(ctx context.Context, dir string, set Set) error
}

// Supported package managers.
const (
	ManagerNPM  = "npm"
	ManagerYarn = "yarn"
)

// Commands returns the command lines manager would run to install set,
// runtime packages first. An empty group yields no command.
func Commands(manager string, set Set) ([][]string, error) {
	var runtimeCmd, devCmd []string
	switch manager {
	case ManagerNPM:
		runtimeCmd = []string{"npm", "install"}
		devCmd = []string{"npm", "install", "--save-dev"}
	case ManagerYarn:
		runtimeCmd = []string{"yarn", "add"}
		devCmd = []string{"yarn", "add", "--dev"}
	default:
		return nil, fmt.Errorf("unsupported package manager %q: supported managers are %q and %q", manager, ManagerNPM, ManagerYarn)
	}

	var cmds [][]string
	if len(set.Runtime) > 0 {
		cmds = append(cmds, append(runtimeCmd, specs(set.Runtime)...))
	}
	if len(set.Dev) > 0 {
		cmds = append(cmds, append(devCmd, specs(set.Dev)...))
	}
	return cmds, nil
}

func specs(pkgs []Package) []string {
	out := make([]string, len(pkgs))
	for i, p := range pkgs {
		out[i] = p.Spec()
	}
	return out
}

// PlanInstaller prints the install commands instead of running them.
type PlanInstaller struct {
	Manager string
	Out     io.Writer
}

// Install writes the commands that would install set into dir.
func (p *PlanInstaller) Install(ctx context.Context, dir string, set Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if set.Empty() {
		fmt.Fprintln(p.Out, "All required packages are already declared in package.json.")
		return nil
	}
	cmds, err := Commands(p.Manager, set)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.Out, "Install the required packages in %s with:\n", dir)
	for _, c := range cmds {
		fmt.Fprintf(p.Out, "  %s\n", strings.Join(quoteArgs(c), " "))
	}
	return nil
}

// quoteArgs single-quotes arguments containing shell metacharacters, such as
// the caret in version ranges.
func quoteArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, "^<>|&*~ ") {
			out[i] = "'" + a + "'"
		} else {
			out[i] = a
		}
	}
	return out
}
