package tui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/sadopc/studytrackr/internal/store"
)

var errDateFormat = errors.New("use YYYY-MM-DD")

type datePicker struct {
	form *huh.Form

	// Form value as pointer (survives value copies)
	value *string
}

func newDatePicker() datePicker {
	v := ""
	return datePicker{value: &v}
}

func (p datePicker) active() bool { return p.form != nil }

func (p datePicker) open(current string) (datePicker, tea.Cmd) {
	*p.value = current
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Placeholder(today()).
				Value(p.value).
				Validate(validateDate),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return p, p.form.Init()
}

// update feeds msg to the form. picked is set once the form completes.
func (p datePicker) update(msg tea.Msg) (_ datePicker, picked string, _ tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		p.form = nil
		return p, "", nil
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	switch p.form.State {
	case huh.StateCompleted:
		p.form = nil
		return p, strings.TrimSpace(*p.value), nil
	case huh.StateAborted:
		p.form = nil
		return p, "", nil
	}
	return p, "", cmd
}

func (p datePicker) view() string {
	if p.form == nil {
		return ""
	}
	return p.form.View()
}

func validateDate(s string) error {
	if _, err := time.Parse(store.DateLayout, strings.TrimSpace(s)); err != nil {
		return errDateFormat
	}
	return nil
}
