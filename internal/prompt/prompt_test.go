package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

var flavors = []Option{
	{Label: "Plain CSS", Value: "css"},
	{Label: "Sass", Value: "sass"},
	{Label: "Less", Value: "less"},
}

func TestSelect_ReturnsValueNotLabel(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("2\n"), &out)

	got, err := term.Select(context.Background(), "Which CSS flavor?", flavors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "sass" {
		t.Errorf("Select() = %q, want %q", got, "sass")
	}

	menu := out.String()
	for _, want := range []string{"Which CSS flavor?", "1) Plain CSS", "2) Sass", "3) Less", "Enter number [1-3]"} {
		if !strings.Contains(menu, want) {
			t.Errorf("menu missing %q, got:\n%s", want, menu)
		}
	}
}

func TestSelect_RetriesInvalidInput(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("9\nabc\n3\n"), &out)

	got, err := term.Select(context.Background(), "Pick", flavors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "less" {
		t.Errorf("Select() = %q, want %q", got, "less")
	}
	if c := strings.Count(out.String(), "Please choose"); c != 2 {
		t.Errorf("expected 2 retry hints, got %d", c)
	}
}

func TestSelect_GivesUpAfterMaxAttempts(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("0\n0\n99\n1\n"), &out)

	_, err := term.Select(context.Background(), "Pick", flavors)
	if err == nil {
		t.Fatal("expected error after repeated invalid input")
	}
	if !strings.Contains(err.Error(), `invalid selection "99"`) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSelect_EOFCancels(t *testing.T) {
	term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})

	_, err := term.Select(context.Background(), "Pick", flavors)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestSelect_LastLineWithoutNewline(t *testing.T) {
	term := NewTerminal(strings.NewReader("1"), &bytes.Buffer{})

	got, err := term.Select(context.Background(), "Pick", flavors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "css" {
		t.Errorf("Select() = %q, want css", got)
	}
}

func TestSelect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	term := NewTerminal(strings.NewReader("1\n"), &bytes.Buffer{})

	_, err := term.Select(ctx, "Pick", flavors)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestSelect_NoOptions(t *testing.T) {
	term := NewTerminal(strings.NewReader("1\n"), &bytes.Buffer{})
	if _, err := term.Select(context.Background(), "Pick", nil); err == nil {
		t.Fatal("expected error for empty option list")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{"empty takes default no", "\n", false, false},
		{"empty takes default yes", "\n", true, true},
		{"y", "y\n", false, true},
		{"YES", "YES\n", false, true},
		{"n", "n\n", true, false},
		{"retry then yes", "maybe\ny\n", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			term := NewTerminal(strings.NewReader(tt.input), &out)

			got, err := term.Confirm(context.Background(), "Overwrite?", tt.def)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfirm_HintShowsDefault(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("\n"), &out)
	if _, err := term.Confirm(context.Background(), "Overwrite?", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Overwrite? [y/N]") {
		t.Errorf("expected [y/N] hint, got %q", out.String())
	}
}

func TestConfirm_EOFCancels(t *testing.T) {
	term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})
	if _, err := term.Confirm(context.Background(), "Overwrite?", false); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}
