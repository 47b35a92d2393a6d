// Package config manages user-level settings stored at ~/.encore-init/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the package manager used for the install plan and the default verbosity.
package config
