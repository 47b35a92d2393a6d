// Package manifest reads, validates and patches the project's package.json.
// Documents are kept as an ordered node tree so that rewriting the file
// preserves every key and its position; only the Encore script entries are
// added or replaced.
package manifest
