package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
)

type GoalFormModel struct {
	Title       string
	Description string
	Category    models.Category
	Deadline    string
}

type JournalFormModel struct {
	Content string
	Type    models.JournalType
	GoalID  string
}

func NewGoalForm(fm *GoalFormModel) *huh.Form {
	categories := make([]huh.Option[models.Category], len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = huh.NewOption(string(c), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				CharLimit(constants.MaxGoalTitleLen).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description).
				CharLimit(constants.MaxGoalDescriptionLen),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Deadline (YYYY-MM-DD)").
				Value(&fm.Deadline).
				Validate(func(s string) error {
					_, err := calendar.Parse(strings.TrimSpace(s))
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewJournalForm builds the entry form. goals are offered as optional links.
func NewJournalForm(fm *JournalFormModel, goals []models.Goal) *huh.Form {
	types := make([]huh.Option[models.JournalType], len(models.JournalTypes))
	for i, t := range models.JournalTypes {
		types[i] = huh.NewOption(string(t), t)
	}

	links := []huh.Option[string]{huh.NewOption("No goal", "")}
	for _, g := range goals {
		if !g.Completed {
			links = append(links, huh.NewOption(g.Title, g.ID))
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.JournalType]().
				Title("Type").
				Options(types...).
				Value(&fm.Type),
			huh.NewText().
				Title("Entry").
				Value(&fm.Content).
				CharLimit(constants.MaxJournalContentLen).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("entry cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Related goal").
				Options(links...).
				Value(&fm.GoalID),
		),
	).WithTheme(huh.ThemeDracula())
}
