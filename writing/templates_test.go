package writing

import (
	"testing"
	"time"

	"folio/config"
)

func TestExpandTemplate(t *testing.T) {
	doc := &Document{
		ID:          "post-1",
		Slug:        "catatan-pagi",
		Title:       "Catatan Pagi",
		PublishedAt: time.Date(2024, 3, 5, 7, 30, 0, 0, time.UTC),
	}

	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"plain", "writing", "writing"},
		{"slug", "{{ .Slug }}", "catatan-pagi"},
		{"date and title", "{{ .Date }} {{ .Title }}", "2024-03-05 Catatan Pagi"},
		{"sprig", "{{ .Title | lower | replace \" \" \"_\" }}", "catatan_pagi"},
		{"context", "{{ .Context }}.{{ .Format }}", "output_name_template.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := doc.ExpandTemplate(config.OutputNameTemplateFieldName, tt.field, "html")
			if err != nil {
				t.Fatalf("ExpandTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate_NoDate(t *testing.T) {
	doc := &Document{Slug: "x"}
	got, err := doc.ExpandTemplate(config.OutputNameTemplateFieldName, "[{{ .Date }}]", "html")
	if err != nil {
		t.Fatalf("ExpandTemplate() error = %v", err)
	}
	if got != "[]" {
		t.Errorf("ExpandTemplate() = %q, want %q", got, "[]")
	}
}

func TestExpandTemplate_Invalid(t *testing.T) {
	doc := &Document{}
	if _, err := doc.ExpandTemplate(config.OutputNameTemplateFieldName, "{{ .Slug", "html"); err == nil {
		t.Fatalf("expected parse error")
	}
}
