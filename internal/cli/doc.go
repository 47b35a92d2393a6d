// Package cli defines the Cobra command tree for the encore-init CLI. Each
// file in this package registers one top-level command with the root
// command. Commands only handle flags and output; the init flow itself goes
// through Dispatch, which wires the wizard and the generation pipeline.
package cli
