package writing

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"folio/config"
)

// templateValues holds variables available for output name template expansion
type templateValues struct {
	Context string
	Slug    string
	Title   string
	ID      string
	Date    string
	Format  string
}

// ExpandTemplate expands a template string with writing metadata.
func (d *Document) ExpandTemplate(name config.TemplateFieldName, field string, format string) (string, error) {
	values := &templateValues{
		Context: string(name),
		Slug:    d.Slug,
		Title:   d.Title,
		ID:      d.ID,
		Format:  format,
	}
	if !d.PublishedAt.IsZero() {
		values.Date = d.PublishedAt.Format("2006-01-02")
	}

	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
