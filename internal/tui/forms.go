package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/archiver/internal/day"
)

// NewEntryForm asks for the content of a new entry on d.
func NewEntryForm(fm *EntryFormModel, d day.Day) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Neuer Eintrag").
				Description(d.Display()).
				Value(&fm.Content).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("entry cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewDayForm asks for a date to register.
func NewDayForm(fm *DayFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Datum (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					_, err := day.Parse(strings.TrimSpace(s))
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmationForm asks a yes/no question.
func NewConfirmationForm(fm *ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Ja").
				Negative("Nein").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
