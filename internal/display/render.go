package display

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/mudstone/typequest/internal/world"
)

// templateFuncs provides utility functions for render templates.
var templateFuncs = sprig.TxtFuncMap()

const surroundingsTemplate = `{{ .Description }}{{ if .Others }}

You see:{{ range .Others }}
* {{ .Name }} ({{ .Type }}){{ end }}{{ end }}`

var surroundingsTmpl = template.Must(
	template.New("surroundings").Funcs(templateFuncs).Parse(surroundingsTemplate))

type surroundingsData struct {
	Description string
	Others      []world.Entity
}

// Surroundings renders a place description plus a listing of the co-located
// entities, name and type each.
func Surroundings(description string, others []world.Entity) string {
	var buf bytes.Buffer
	err := surroundingsTmpl.Execute(&buf, surroundingsData{
		Description: description,
		Others:      others,
	})
	if err != nil {
		// The template only touches plain fields; failure here is a bug.
		return fmt.Sprintf("%s\n\n(render error: %v)", description, err)
	}
	return buf.String()
}

// ExpandTemplate expands a template string using the provided data.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
