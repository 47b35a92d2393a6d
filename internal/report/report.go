// Package report renders the outcome of an init run for humans: a colored
// failure with its cause chain, or a summary of the files written.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes reports to Out, colored or plain.
type Printer struct {
	Out   io.Writer
	color bool
}

// NewPrinter returns a Printer for out. mode is "always", "never" or "auto";
// auto colors only when out is a terminal and NO_COLOR is unset.
func NewPrinter(out io.Writer, mode string) *Printer {
	return &Printer{Out: out, color: useColor(out, mode)}
}

func useColor(out io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Failure renders err: the top-level message, then each wrapped cause that
// adds information.
func (p *Printer) Failure(err error) {
	header := p.paint(color.FgRed, color.Bold)
	dim := p.paint(color.FgHiBlack)

	header.Fprint(p.Out, "✖ Error: ")
	fmt.Fprintln(p.Out, err.Error())

	for _, cause := range Causes(err) {
		dim.Fprint(p.Out, "  caused by: ")
		fmt.Fprintln(p.Out, cause)
	}
}

// Success renders the list of written and skipped files followed by next
// steps.
func (p *Printer) Success(lines []string, next []string) {
	header := p.paint(color.FgGreen, color.Bold)
	header.Fprintln(p.Out, "✔ Encore setup complete")
	for _, l := range lines {
		fmt.Fprintf(p.Out, "  %s\n", l)
	}
	if len(next) == 0 {
		return
	}
	fmt.Fprintln(p.Out, "\nNext steps:")
	for _, n := range next {
		fmt.Fprintf(p.Out, "  %s\n", n)
	}
}

// Causes returns the distinct messages of the errors wrapped by err, outermost
// first. A cause is skipped when its message is already the tail of the
// previous one, which is the common fmt.Errorf("...: %w") case.
func Causes(err error) []string {
	var causes []string
	prev := err.Error()
	for cur := unwrapOne(err); cur != nil; cur = unwrapOne(cur) {
		msg := cur.Error()
		if msg != prev && !hasSuffix(prev, msg) {
			causes = append(causes, msg)
		}
		prev = msg
	}
	return causes
}

// unwrapOne follows single-error wrapping and the first error of joined or
// multi-%w errors.
func unwrapOne(err error) error {
	if u := errors.Unwrap(err); u != nil {
		return u
	}
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := multi.Unwrap(); len(errs) > 0 {
			return errs[0]
		}
	}
	return nil
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
