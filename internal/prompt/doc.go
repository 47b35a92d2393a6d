// Package prompt asks single-choice and yes/no questions on a pair of
// reader/writer streams. Menus are numbered and answers are mapped back to
// the option's value token, never its label.
package prompt
