//go:build !windows

package config

import "testing"

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"catatan-pagi", "catatan-pagi"},
		{"a/b:c", "abc"},
		{"  .hidden ", "hidden"},
		{"..", "_bad_file_name_"},
		{"line\nbreak\t", "linebreak"},
		{"", "_bad_file_name_"},
		{"Catatan Pagi: Senja", "Catatan Pagi Senja"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
