// Package wizard runs the init questionnaire: app type, then JavaScript
// flavor for single-page apps only, then CSS flavor.
package wizard

import (
	"context"
	"fmt"

	"github.com/encorekit/encore-init/internal/appconfig"
	"github.com/encorekit/encore-init/internal/prompt"
)

// Question texts.
const (
	QuestionArchitecture = "What type of app are you building?"
	QuestionJSType       = "Which JavaScript flavor do you want to use?"
	QuestionCSSType      = "Which CSS flavor do you want to use?"
)

// Architecture answer tokens.
const (
	AnswerSPA = "spa"
	AnswerMPA = "mpa"
)

var architectureOptions = []prompt.Option{
	{Label: "Single-page application (SPA)", Value: AnswerSPA},
	{Label: "Multi-page application", Value: AnswerMPA},
}

func jsOptions() []prompt.Option {
	labels := map[appconfig.JSType]string{
		appconfig.Vanilla: "Vanilla JS",
		appconfig.React:   "React",
		appconfig.Vue:     "Vue",
	}
	opts := make([]prompt.Option, 0, len(labels))
	for _, j := range appconfig.AllJSTypes() {
		opts = append(opts, prompt.Option{Label: labels[j], Value: j.String()})
	}
	return opts
}

func cssOptions() []prompt.Option {
	labels := map[appconfig.CSSType]string{
		appconfig.CSS:  "Plain CSS",
		appconfig.Sass: "Sass",
		appconfig.Less: "Less",
	}
	opts := make([]prompt.Option, 0, len(labels))
	for _, c := range appconfig.AllCSSTypes() {
		opts = append(opts, prompt.Option{Label: labels[c], Value: c.String()})
	}
	return opts
}

type state int

const (
	askArchitecture state = iota
	askJSType
	askCSSType
	done
)

// Run asks each question once, in order, and returns the resolved config.
// Any prompt failure aborts the questionnaire.
func Run(ctx context.Context, p prompt.Provider) (*appconfig.AppConfig, error) {
	cfg := appconfig.New()

	for st := askArchitecture; st != done; {
		switch st {
		case askArchitecture:
			answer, err := p.Select(ctx, QuestionArchitecture, architectureOptions)
			if err != nil {
				return nil, fmt.Errorf("asking app type: %w", err)
			}
			switch answer {
			case AnswerSPA:
				cfg.SetArchitecture(true)
				st = askJSType
			case AnswerMPA:
				cfg.SetArchitecture(false)
				st = askCSSType
			default:
				return nil, fmt.Errorf("unknown app type %q", answer)
			}

		case askJSType:
			answer, err := p.Select(ctx, QuestionJSType, jsOptions())
			if err != nil {
				return nil, fmt.Errorf("asking javascript flavor: %w", err)
			}
			js, err := appconfig.ParseJSType(answer)
			if err != nil {
				return nil, err
			}
			cfg.JSType = js
			st = askCSSType

		case askCSSType:
			answer, err := p.Select(ctx, QuestionCSSType, cssOptions())
			if err != nil {
				return nil, fmt.Errorf("asking css flavor: %w", err)
			}
			css, err := appconfig.ParseCSSType(answer)
			if err != nil {
				return nil, err
			}
			cfg.CSSType = css
			st = done
		}
	}

	return cfg, cfg.Validate()
}
