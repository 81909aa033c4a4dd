package tui

import (
	"errors"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/jakoblorz/create-ai-project/internal/models"
	"golang.org/x/term"
)

// ErrAborted is returned when the operator dismisses a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the operator questions.
type Prompter interface {
	Confirm(title string) (bool, error)
	SelectLocale(options []models.Locale) (models.Locale, error)
}

var (
	_ Prompter = (*HuhPrompter)(nil)
	_ Prompter = (*StaticPrompter)(nil)
)

var localeLabels = map[models.Locale]string{
	models.LocaleJA: "日本語 (ja)",
	models.LocaleEN: "English (en)",
}

// HuhPrompter runs interactive huh forms. When input is not a terminal it
// falls back to huh's line-based accessible mode.
type HuhPrompter struct {
	in         io.Reader
	out        io.Writer
	accessible bool
	theme      *huh.Theme
}

// NewHuhPrompter creates a prompter reading from in and drawing to out
func NewHuhPrompter(in io.Reader, out io.Writer) *HuhPrompter {
	return &HuhPrompter{
		in:         in,
		out:        out,
		accessible: !isTerminal(in),
		theme:      NewHuhTheme(),
	}
}

// Confirm asks a yes/no question. Aborting counts as "no".
func (p *HuhPrompter) Confirm(title string) (bool, error) {
	confirmed := false

	form := p.newForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}

	return confirmed, nil
}

// SelectLocale asks the operator to pick one of options.
func (p *HuhPrompter) SelectLocale(options []models.Locale) (models.Locale, error) {
	selected := ""
	if len(options) > 0 {
		selected = string(options[0])
	}

	opts := make([]huh.Option[string], 0, len(options))
	for _, l := range options {
		label, ok := localeLabels[l]
		if !ok {
			label = string(l)
		}
		opts = append(opts, huh.NewOption(label, string(l)))
	}

	form := p.newForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Select language").
			Description("No .claudelang found in this project.").
			Options(opts...).
			Value(&selected),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", err
	}

	return models.Locale(selected), nil
}

func (p *HuhPrompter) newForm(group *huh.Group) *huh.Form {
	return huh.NewForm(group).
		WithTheme(p.theme).
		WithAccessible(p.accessible).
		WithInput(p.in).
		WithOutput(p.out).
		WithProgramOptions(tea.WithInput(p.in), tea.WithOutput(p.out))
}

// StaticPrompter answers every prompt with fixed values.
type StaticPrompter struct {
	Answer bool
	Locale models.Locale
	Err    error

	Confirmations []string
	Selections    int
}

// Confirm records the question and returns Answer
func (s *StaticPrompter) Confirm(title string) (bool, error) {
	s.Confirmations = append(s.Confirmations, title)
	return s.Answer, s.Err
}

// SelectLocale returns Locale, or ErrAborted when none is configured
func (s *StaticPrompter) SelectLocale([]models.Locale) (models.Locale, error) {
	s.Selections++
	if s.Err != nil {
		return "", s.Err
	}
	if strings.TrimSpace(string(s.Locale)) == "" {
		return "", ErrAborted
	}
	return s.Locale, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
