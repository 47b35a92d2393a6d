// Package packages works out which npm packages a generated build needs and
// turns that set into an install plan for the configured package manager.
// Computing the set is a pure function of the app config; nothing here runs
// the package manager.
package packages
