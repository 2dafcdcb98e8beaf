package display

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

var views = map[string]string{
	"look": `{{ .Location.Name | upper }}
{{ with .Location.Description }}{{ . }}
{{ end -}}
{{ with .Location.Items }}You see: {{ join ", " . }}.
{{ end -}}
{{ $exits := list }}{{ range .Location.Exits }}{{ $exits = append $exits .LocationId }}{{ end -}}
Exits: {{ if $exits }}{{ join ", " $exits }}{{ else }}none{{ end }}
{{ range .Players }}{{ .UserId }} is here{{ if eq (toString .Status) "killed" }}, lying dead{{ end }}.
{{ end -}}
{{ range .Challenges }}Challenge {{ .Id }}{{ with .Title }}: {{ . }}{{ end }}{{ if .Solved }} (solved){{ end }}
{{ with .Description }}  {{ . }}
{{ end }}{{ with .Requirements }}  Requires: {{ join ", " . }}
{{ end }}{{ end -}}
{{ if eq (toString .Status) "killed" }}You are dead. Another player must help you.
{{ end }}`,

	"status": `{{ .Player.UserId }} in {{ .Story }} ({{ .Player.Status }})
Location: {{ .Player.CurrentLocation }}
Inventory: {{ if .Player.Inventory }}{{ join ", " .Player.Inventory }}{{ else }}nothing{{ end }}
Artifacts sought: {{ join ", " .Artifacts }}
Progress: {{ .Player.GameProgress.StoryProgress }}%{{ with .Player.GameProgress.PuzzlesSolved }}, solved {{ join ", " . }}{{ end }}
`,

	"events": `{{ range .Events }}[{{ .Timestamp.Format "15:04:05" }}] {{ .Message }}
{{ else }}Nothing has happened recently.
{{ end }}`,

	"messages": `{{ range . }}{{ .UserId }} says: {{ .Message }}
{{ end }}`,

	"challenge": `{{ .Id }}{{ with .Title }}: {{ . }}{{ end }}
{{ range .Hints }}  Hint: {{ . }}
{{ end }}`,
}

var templates = func() *template.Template {
	root := template.New("").Funcs(sprig.TxtFuncMap())
	for name, body := range views {
		template.Must(root.New(name).Parse(body))
	}
	return root
}()

// Render executes the named view against data and wraps the result.
func Render(name string, data any) (string, error) {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("unknown view %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return Wrap(strings.TrimRight(buf.String(), "\n")), nil
}
