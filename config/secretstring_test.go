package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func TestSecretString_Marshal(t *testing.T) {
	tests := []struct {
		name     string
		value    SecretString
		wantJSON string
		wantYAML string
	}{
		{name: "empty", value: "", wantJSON: "null", wantYAML: "null\n"},
		{name: "token", value: "sk-very-secret", wantJSON: `"<secret>"`, wantYAML: "<secret>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			enc.SetEscapeHTML(false)
			if err := enc.Encode(tt.value); err != nil {
				t.Fatalf("json Encode() error = %v", err)
			}
			if got := strings.TrimSuffix(buf.String(), "\n"); got != tt.wantJSON {
				t.Errorf("json Encode() = %s, want %s", got, tt.wantJSON)
			}
			data, err := yaml.Marshal(tt.value)
			if err != nil {
				t.Fatalf("yaml.Marshal() error = %v", err)
			}
			if string(data) != tt.wantYAML {
				t.Errorf("yaml.Marshal() = %q, want %q", data, tt.wantYAML)
			}
		})
	}
}

func TestSecretString_NoLeakage(t *testing.T) {
	const token = "sk-never-print-me"
	cfg := struct {
		Backend struct {
			Token SecretString `yaml:"token" json:"token"`
		} `yaml:"backend" json:"backend"`
	}{}
	cfg.Backend.Token = token

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if strings.Contains(string(data), token) {
		t.Errorf("YAML output leaks secret: %s", data)
	}
	data, err = json.Marshal(cfg)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if strings.Contains(string(data), token) {
		t.Errorf("JSON output leaks secret: %s", data)
	}
	if s := fmt.Sprintf("%v %s", cfg.Backend.Token, cfg.Backend.Token); strings.Contains(s, token) {
		t.Errorf("formatted output leaks secret: %s", s)
	}
	if cfg.Backend.Token.Reveal() != token {
		t.Errorf("Reveal() = %q, want %q", cfg.Backend.Token.Reveal(), token)
	}
}

func TestSecretString_Unmarshal(t *testing.T) {
	var s struct {
		Token SecretString `yaml:"token"`
	}
	if err := yaml.Unmarshal([]byte("token: abc123\n"), &s); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if !s.Token.IsSet() || s.Token.Reveal() != "abc123" {
		t.Errorf("Token = %q, want abc123", s.Token.Reveal())
	}
}
