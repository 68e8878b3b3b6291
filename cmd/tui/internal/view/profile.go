package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finny/internal/session"
	"github.com/MrJamesThe3rd/finny/internal/state"
)

type profileState int

const (
	profileStateBrowse profileState = iota
	profileStateEdit
	profileStateConfirmDelete
)

type ProfileModel struct {
	CommonModel

	state profileState
	form  *huh.Form
}

func NewProfileModel() ProfileModel {
	return ProfileModel{}
}

func (m ProfileModel) Title() string { return "Profile" }

func (m ProfileModel) ShortHelp() string {
	if m.state != profileStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | x: delete account"
}

func (m ProfileModel) Update(msg tea.Msg, app state.Model) (View, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.Width, m.Height = size.Width, size.Height
	}

	switch m.state {
	case profileStateEdit, profileStateConfirmDelete:
		return m.updateForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc":
		return m, Back
	case "e":
		m.state = profileStateEdit
		m.form = editProfileForm()

		return m, m.form.Init()
	case "x":
		m.state = profileStateConfirmDelete
		m.form = confirmDeleteForm()

		return m, m.form.Init()
	}

	return m, nil
}

func editProfileForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("New username").
				Placeholder("leave empty to keep"),
			huh.NewInput().
				Key("current").
				Title("Current password").
				EchoMode(huh.EchoModePassword),
			huh.NewInput().
				Key("new").
				Title("New password").
				EchoMode(huh.EchoModePassword),
		),
	).WithWidth(45).WithShowHelp(false)
}

func confirmDeleteForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Delete your account?").
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel"),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ProfileModel) updateForm(msg tea.Msg) (View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.state = profileStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	var action tea.Msg

	switch m.state {
	case profileStateEdit:
		action = session.UpdateProfile{
			Username:        strings.TrimSpace(m.form.GetString("username")),
			CurrentPassword: m.form.GetString("current"),
			NewPassword:     m.form.GetString("new"),
		}
	case profileStateConfirmDelete:
		if m.form.GetBool("confirm") {
			action = session.DeleteAccount{}
		}
	}

	m.state = profileStateBrowse
	m.form = nil

	if action == nil {
		return m, nil
	}

	return m, Dispatch(action)
}

func (m ProfileModel) View(app state.Model) string {
	s := app.Session

	if m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	var b strings.Builder

	if s.User != nil {
		fmt.Fprintf(&b, "Username: %s\n", activeStyle(s.User.DisplayName))
		fmt.Fprintf(&b, "Email:    %s\n", s.User.Email)
		fmt.Fprintf(&b, "%s\n", faintStyle.Render("ID: "+s.User.ID))
	}

	switch s.Action {
	case session.ActionPending:
		b.WriteString("\n" + faintStyle.Render("Saving..."))
	case session.ActionSucceeded:
		b.WriteString("\n" + incomeStyle.Render("Saved."))
	case session.ActionFailed:
		b.WriteString("\n" + errorLine(s.Error))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}
