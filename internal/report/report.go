package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/create-ai-project/internal/locale"
)

// PlanLine is one row of a dry-run plan.
type PlanLine struct {
	Action string
	Path   string
	IsDir  bool
}

// Renderer writes the textual reports shown to the operator.
type Renderer struct {
	tmpl *template.Template
}

// New parses the report templates
func New() *Renderer {
	tmpl := template.New("report").Funcs(sprig.TxtFuncMap())
	template.Must(tmpl.New("plan").Parse(planTemplate))
	template.Must(tmpl.New("changelog").Parse(changelogTemplate))
	template.Must(tmpl.New("ignored").Parse(ignoredTemplate))
	template.Must(tmpl.New("status").Parse(statusTemplate))
	return &Renderer{tmpl: tmpl}
}

// Plan renders the dry-run plan
func (r *Renderer) Plan(w io.Writer, lines []PlanLine) error {
	return r.execute(w, "plan", lines)
}

// Changelog renders a changelog excerpt between rulers
func (r *Renderer) Changelog(w io.Writer, lines []string, truncated bool) error {
	return r.execute(w, "changelog", struct {
		Lines     []string
		Truncated bool
	}{lines, truncated})
}

// Ignored renders the list of resources preserved during an update
func (r *Renderer) Ignored(w io.Writer, ids []string) error {
	return r.execute(w, "ignored", ids)
}

// Status renders a locale status report
func (r *Renderer) Status(w io.Writer, status *locale.Status) error {
	return r.execute(w, "status", newStatusView(status))
}

func (r *Renderer) execute(w io.Writer, name string, data interface{}) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s report: %w", name, err)
	}
	return nil
}

type statusView struct {
	Current      string
	Method       string
	LastUpdated  string
	HasGitignore bool
	Locales      []localeView
	Active       []locale.TargetStatus
}

type localeView struct {
	Locale  string
	Sources []locale.SourceStatus
}

func newStatusView(status *locale.Status) statusView {
	view := statusView{
		HasGitignore: status.HasGitignore,
		Active:       status.Active,
	}
	if status.State != nil {
		view.Current = string(status.State.Current)
		view.Method = status.State.Method
		if status.State.LastUpdated != nil {
			view.LastUpdated = status.State.LastUpdated.UTC().Format(time.RFC3339)
		}
	}
	for _, ls := range status.Locales {
		view.Locales = append(view.Locales, localeView{Locale: string(ls.Locale), Sources: ls.Sources})
	}
	return view
}
