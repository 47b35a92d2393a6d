// Package appconfig holds the answers collected by the init wizard. The
// flavors are closed enumerations: every consumer switches over the full set
// and returns an error from its default branch, and the package tests walk
// All* so a new flavor cannot be added without every switch handling it.
package appconfig

import (
	"errors"
	"fmt"
)

// JSType is the JavaScript flavor of the generated build.
type JSType int

const (
	jsUnset JSType = iota
	Vanilla
	React
	Vue
)

// CSSType is the stylesheet flavor of the generated build.
type CSSType int

const (
	cssUnset CSSType = iota
	CSS
	Sass
	Less
)

// AllJSTypes lists every supported JavaScript flavor in prompt order.
func AllJSTypes() []JSType { return []JSType{Vanilla, React, Vue} }

// AllCSSTypes lists every supported CSS flavor in prompt order.
func AllCSSTypes() []CSSType { return []CSSType{CSS, Sass, Less} }

// String returns the answer token for the flavor.
func (j JSType) String() string {
	switch j {
	case Vanilla:
		return "vanilla"
	case React:
		return "react"
	case Vue:
		return "vue"
	default:
		return "unset"
	}
}

// String returns the answer token for the flavor.
func (c CSSType) String() string {
	switch c {
	case CSS:
		return "css"
	case Sass:
		return "sass"
	case Less:
		return "less"
	default:
		return "unset"
	}
}

// ParseJSType maps an answer token to its JSType.
func ParseJSType(token string) (JSType, error) {
	for _, j := range AllJSTypes() {
		if j.String() == token {
			return j, nil
		}
	}
	return jsUnset, fmt.Errorf("unknown javascript flavor %q", token)
}

// ParseCSSType maps an answer token to its CSSType.
func ParseCSSType(token string) (CSSType, error) {
	for _, c := range AllCSSTypes() {
		if c.String() == token {
			return c, nil
		}
	}
	return cssUnset, fmt.Errorf("unknown css flavor %q", token)
}

// AppConfig is the resolved set of user choices driving generation.
// The zero value has every field unset.
type AppConfig struct {
	IsSpa   *bool
	JSType  JSType
	CSSType CSSType
}

// New returns an AppConfig with every field unset.
func New() *AppConfig {
	return &AppConfig{}
}

// SetArchitecture records the single-page answer. A multi-page app has no
// framework choice, so JSType is forced to Vanilla.
func (c *AppConfig) SetArchitecture(spa bool) {
	c.IsSpa = &spa
	if !spa {
		c.JSType = Vanilla
	}
}

// Spa reports whether the app was declared single-page. Unset reads as false.
func (c *AppConfig) Spa() bool {
	return c.IsSpa != nil && *c.IsSpa
}

// ErrUnresolved is returned by Validate when a field has not been answered.
var ErrUnresolved = errors.New("app config is not fully resolved")

// Validate checks that every field needed by the generators is resolved and
// that a multi-page app carries no framework.
func (c *AppConfig) Validate() error {
	if c.IsSpa == nil {
		return fmt.Errorf("%w: app type not chosen", ErrUnresolved)
	}
	if c.JSType == jsUnset {
		return fmt.Errorf("%w: javascript flavor not chosen", ErrUnresolved)
	}
	if c.CSSType == cssUnset {
		return fmt.Errorf("%w: css flavor not chosen", ErrUnresolved)
	}
	if !*c.IsSpa && c.JSType != Vanilla {
		return fmt.Errorf("multi-page apps only support vanilla javascript, got %s", c.JSType)
	}
	return nil
}

// String renders the config for logs and summaries.
func (c *AppConfig) String() string {
	arch := "unset"
	if c.IsSpa != nil {
		arch = "mpa"
		if *c.IsSpa {
			arch = "spa"
		}
	}
	return fmt.Sprintf("app=%s js=%s css=%s", arch, c.JSType, c.CSSType)
}
