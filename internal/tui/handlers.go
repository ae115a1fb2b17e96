package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/momentum/internal/analytics"
	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/validation"
)

func (m *Model) startAddGoal() tea.Cmd {
	m.goalForm = &GoalFormModel{
		Category: models.CategoryHealth,
		Deadline: m.ctx.Now().AddDate(0, 1, 0).Format(calendar.Layout),
	}
	m.form = NewGoalForm(m.goalForm)
	m.formError = ""
	m.state = StateAddGoal
	return m.form.Init()
}

func (m *Model) startAddEntry() tea.Cmd {
	m.journalForm = &JournalFormModel{Type: models.JournalThoughts}
	m.form = NewJournalForm(m.journalForm, m.goals)
	m.formError = ""
	m.state = StateAddEntry
	return m.form.Init()
}

// updateForm forwards msg to the active form. It returns the form command and
// whether the user cancelled with esc.
func (m *Model) updateForm(msg tea.Msg) (tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return nil, true
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return cmd, m.form.State == huh.StateAborted
}

// handleAddGoalState handles the add goal form
func (m *Model) handleAddGoalState(msg tea.Msg) tea.Cmd {
	cmd, cancelled := m.updateForm(msg)
	if cancelled {
		m.formError = ""
		m.state = StateGoals
		return nil
	}
	if m.form.State != huh.StateCompleted {
		return cmd
	}

	loc, err := m.ctx.Location()
	if err != nil {
		m.formError = err.Error()
		m.form.State = huh.StateNormal
		return cmd
	}
	deadline, err := calendar.Parse(strings.TrimSpace(m.goalForm.Deadline))
	if err != nil {
		m.formError = err.Error()
		m.form.State = huh.StateNormal
		return cmd
	}
	goal := models.Goal{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(m.goalForm.Title),
		Description: strings.TrimSpace(m.goalForm.Description),
		Category:    m.goalForm.Category,
		Deadline:    deadline,
		CreatedAt:   m.ctx.Now(),
		Progress:    []calendar.Date{},
	}
	if err := validation.ValidateGoal(goal, loc); err != nil {
		// Stay in the form so the user can correct the value
		m.formError = err.Error()
		m.form.State = huh.StateNormal
		return cmd
	}
	if err := m.ctx.Store.AddGoal(goal); err != nil {
		m.formError = fmt.Sprintf("Failed to add goal: %v", err)
		m.form.State = huh.StateNormal
		return cmd
	}

	m.formError = ""
	m.status = fmt.Sprintf("Added %q", goal.Title)
	m.refresh()
	m.state = StateGoals
	return cmd
}

// handleAddEntryState handles the journal entry form
func (m *Model) handleAddEntryState(msg tea.Msg) tea.Cmd {
	cmd, cancelled := m.updateForm(msg)
	if cancelled {
		m.formError = ""
		m.state = StateJournal
		return nil
	}
	if m.form.State != huh.StateCompleted {
		return cmd
	}

	entry := models.JournalEntry{
		ID:        uuid.New().String(),
		CreatedAt: m.ctx.Now(),
		Content:   strings.TrimSpace(m.journalForm.Content),
		Type:      m.journalForm.Type,
	}
	if id := m.journalForm.GoalID; id != "" {
		entry.GoalID = &id
	}
	if err := validation.ValidateJournalEntry(entry); err != nil {
		m.formError = err.Error()
		m.form.State = huh.StateNormal
		return cmd
	}
	if err := m.ctx.Store.AddJournalEntry(entry); err != nil {
		m.formError = fmt.Sprintf("Failed to save entry: %v", err)
		m.form.State = huh.StateNormal
		return cmd
	}

	m.formError = ""
	m.status = "Journal entry saved"
	m.refresh()
	m.state = StateJournal
	return cmd
}

// handleConfirmationState answers a pending delete or complete prompt.
func (m *Model) handleConfirmationState(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		if m.state == StateConfirmDelete {
			m.deleteGoal(m.pendingGoalID)
		} else {
			m.completeGoal(m.pendingGoalID)
		}
	case "n", "N", "esc", "q":
	default:
		return nil
	}

	m.pendingGoalID = ""
	m.state = StateGoals
	return nil
}

func (m *Model) deleteGoal(id string) {
	goal, err := m.ctx.Store.GetGoal(id)
	if err != nil {
		m.formError = err.Error()
		return
	}
	if err := m.ctx.Store.DeleteGoal(id); err != nil {
		m.formError = fmt.Sprintf("Failed to delete goal: %v", err)
		return
	}
	m.status = fmt.Sprintf("Deleted %q", goal.Title)
	m.refresh()
}

func (m *Model) completeGoal(id string) {
	goal, err := m.ctx.Store.GetGoal(id)
	if err != nil {
		m.formError = err.Error()
		return
	}
	if err := goal.Complete(m.ctx.Now()); err != nil {
		m.formError = fmt.Sprintf("%s: %v", goal.Title, err)
		return
	}
	if err := m.ctx.Store.UpdateGoal(goal); err != nil {
		m.formError = fmt.Sprintf("Failed to complete goal: %v", err)
		return
	}
	m.status = fmt.Sprintf("🎉 Completed %q", goal.Title)
	m.refresh()
}

// logToday toggles today's progress for a goal. Adding a day celebrates the
// new streak in the background.
func (m *Model) logToday(id string) tea.Cmd {
	m.formError = ""
	goal, err := m.ctx.Store.GetGoal(id)
	if err != nil {
		m.formError = err.Error()
		return nil
	}
	today, _, err := m.ctx.Today()
	if err != nil {
		m.formError = err.Error()
		return nil
	}

	added, err := goal.ToggleProgress(today)
	if err != nil {
		m.formError = fmt.Sprintf("%s: %v", goal.Title, err)
		return nil
	}
	if !added {
		if err := m.ctx.Store.RemoveProgress(goal.ID, today); err != nil {
			m.formError = err.Error()
			return nil
		}
		m.status = fmt.Sprintf("Removed today's progress for %q", goal.Title)
		m.refresh()
		return nil
	}

	if err := m.ctx.Store.AddProgress(goal.ID, today); err != nil {
		m.formError = err.Error()
		return nil
	}
	streak := analytics.Streak(goal.Progress, today)
	m.status = fmt.Sprintf("Logged %q (streak: %d)", goal.Title, streak)
	m.refresh()

	ctx, title := m.ctx, goal.Title
	return func() tea.Msg {
		ctx.Celebrate(context.Background(), title, streak)
		return nil
	}
}
