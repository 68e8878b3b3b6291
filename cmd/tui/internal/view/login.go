package view

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finny/internal/session"
	"github.com/MrJamesThe3rd/finny/internal/state"
)

// LoginModel handles both sign-in and account registration.
type LoginModel struct {
	CommonModel

	form     *huh.Form
	register bool
	notice   string
}

func NewLoginModel() LoginModel {
	m := LoginModel{}
	m.form = m.buildForm("")

	return m
}

func (m LoginModel) Title() string {
	if m.register {
		return "Create Account"
	}

	return "Sign In"
}

func (m LoginModel) ShortHelp() string {
	if m.register {
		return "Enter: submit | ctrl+r: back to sign in | ctrl+c: quit"
	}

	return "Enter: submit | ctrl+r: create account | ctrl+c: quit"
}

// Init focuses the first field.
func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

// buildForm starts a fresh form, keeping the username typed last time.
func (m LoginModel) buildForm(username string) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("username").
			Title("Username").
			Value(&username),
	}

	if m.register {
		fields = append(fields, huh.NewInput().
			Key("email").
			Title("Email"))
	}

	fields = append(fields, huh.NewInput().
		Key("password").
		Title("Password").
		EchoMode(huh.EchoModePassword))

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Update(msg tea.Msg, app state.Model) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case session.RegisterResult:
		if msg.Err() == nil {
			m.register = false
			m.notice = "Account created. Please sign in."
			m.form = m.buildForm(m.form.GetString("username"))

			return m, m.form.Init()
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+r" {
			m.register = !m.register
			m.notice = ""
			m.form = m.buildForm(m.form.GetString("username"))

			return m, m.form.Init()
		}
	}

	if app.Session.Action == session.ActionPending {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	action := m.action()
	m.notice = ""
	m.form = m.buildForm(m.form.GetString("username"))

	return m, tea.Batch(Dispatch(action), m.form.Init())
}

func (m LoginModel) action() tea.Msg {
	username := strings.TrimSpace(m.form.GetString("username"))
	password := m.form.GetString("password")

	if m.register {
		return session.Register{Username: username, Email: strings.TrimSpace(m.form.GetString("email")), Password: password}
	}

	return session.Login{Username: username, Password: password}
}

func (m LoginModel) View(app state.Model) string {
	parts := []string{
		titleStyle.Render("Finny " + m.Title()),
		m.form.View(),
	}

	switch {
	case app.Session.Action == session.ActionPending:
		parts = append(parts, faintStyle.Render("Working..."))
	case app.Session.Error != "":
		parts = append(parts, errorLine(app.Session.Error))
	case m.notice != "":
		parts = append(parts, incomeStyle.Render(m.notice))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
