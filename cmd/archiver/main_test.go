package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~", home},
		{"~/.config/archiver/archiver.db", filepath.Join(home, ".config", "archiver", "archiver.db")},
		{"/tmp/archive.db", "/tmp/archive.db"},
		{"relative/archive.db", "relative/archive.db"},
		{"~other/archive.db", "~other/archive.db"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandHome(tt.input); got != tt.want {
				t.Errorf("expandHome(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
