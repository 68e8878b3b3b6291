package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/finny/internal/state"
)

// View is the interface that all TUI screens implement. Screens keep only
// presentation state; everything they render comes from the app model.
type View interface {
	Update(msg tea.Msg, app state.Model) (View, tea.Cmd)
	View(app state.Model) string
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenTransactions
	ScreenForecast
	ScreenProfile
)

// NavigateMsg switches the active screen.
type NavigateMsg struct {
	To Screen
}

func Navigate(to Screen) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}

// Dispatch hands an action to the app model.
func Dispatch(action tea.Msg) tea.Cmd {
	return func() tea.Msg { return action }
}
