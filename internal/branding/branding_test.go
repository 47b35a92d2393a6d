package branding

import "testing"

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"verbose", "ENCORE_INIT_VERBOSE"},
		{"package_manager", "ENCORE_INIT_PACKAGE_MANAGER"},
		{"Color", "ENCORE_INIT_COLOR"},
	}
	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			if got := EnvVar(tt.suffix); got != tt.want {
				t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
			}
		})
	}
}

func TestEmbeddedIdentity(t *testing.T) {
	if CLIName() != "encore-init" {
		t.Errorf("CLIName() = %q", CLIName())
	}
	if HomeDir() != ".encore-init" {
		t.Errorf("HomeDir() = %q", HomeDir())
	}
}
