package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finny/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finny/internal/api"
	"github.com/MrJamesThe3rd/finny/internal/config"
	"github.com/MrJamesThe3rd/finny/internal/session"
	"github.com/MrJamesThe3rd/finny/internal/state"
	"github.com/MrJamesThe3rd/finny/internal/tokenstore"
)

type model struct {
	app state.Model
	now func() time.Time

	screen  view.Screen
	views   map[view.Screen]view.View
	login   view.LoginModel
	spinner spinner.Model

	width  int
	height int
}

func newModel(app state.Model, now func() time.Time) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		app:     app,
		now:     now,
		screen:  view.ScreenDashboard,
		views:   newViews(now),
		login:   view.NewLoginModel(),
		spinner: s,
	}
}

func newViews(now func() time.Time) map[view.Screen]view.View {
	return map[view.Screen]view.View{
		view.ScreenDashboard:    view.NewDashboardModel(now),
		view.ScreenTransactions: view.NewTransactionsModel(now),
		view.ScreenForecast:     view.NewForecastModel(now),
		view.ScreenProfile:      view.NewProfileModel(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.app.Init(), m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.app.Session.Authenticated() && m.screen == view.ScreenDashboard {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case spinner.TickMsg:
		if !m.app.Session.Initializing() {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case view.NavigateMsg:
		m.screen = msg.To
		return m, m.onEnter(msg.To)
	case view.BackMsg:
		m.screen = view.ScreenDashboard
		return m, nil
	case session.AccountDeleted:
		if msg.Err() == nil {
			cmds = append(cmds, view.Dispatch(session.Logout{}))
		}
	}

	wasAuthed := m.app.Session.Authenticated()
	wasInitializing := m.app.Session.Initializing()

	var cmd tea.Cmd
	m.app, cmd = m.app.Update(msg)
	cmds = append(cmds, cmd)

	switch authed := m.app.Session.Authenticated(); {
	case authed && !wasAuthed:
		m.screen = view.ScreenDashboard
		m.views = newViews(m.now)
		cmds = append(cmds, view.Dispatch(state.LoadDashboard{}), m.resize())
	case !authed && wasAuthed:
		m.login = view.NewLoginModel()
		cmds = append(cmds, m.login.Init())
	case !authed && wasInitializing && !m.app.Session.Initializing():
		cmds = append(cmds, m.login.Init())
	}

	switch {
	case m.app.Session.Authenticated():
		v, cmd := m.views[m.screen].Update(msg, m.app)
		m.views[m.screen] = v
		cmds = append(cmds, cmd)
	case !m.app.Session.Initializing():
		v, cmd := m.login.Update(msg, m.app)
		m.login = v.(view.LoginModel)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// onEnter fetches what a screen needs the first time it is shown.
func (m model) onEnter(s view.Screen) tea.Cmd {
	switch s {
	case view.ScreenTransactions:
		if len(m.app.Transactions.Items) == 0 && !m.app.Transactions.Loading {
			return view.Dispatch(state.FetchTransactions{})
		}
	case view.ScreenForecast:
		if len(m.app.Forecasts.Items) == 0 && !m.app.Forecasts.Loading {
			return view.Dispatch(state.FetchForecast{})
		}
	}

	return nil
}

// resize replays the last window size so freshly built views can lay out.
func (m model) resize() tea.Cmd {
	if m.width == 0 {
		return nil
	}

	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}

	return func() tea.Msg { return size }
}

func (m model) View() string {
	if m.app.Session.Initializing() {
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Checking session...")
	}

	if !m.app.Session.Authenticated() {
		return m.login.View(m.app) + "\n" + lipgloss.NewStyle().Faint(true).Render(m.login.ShortHelp())
	}

	v := m.views[m.screen]

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render("Finny / "+v.Title()),
		v.View(m.app),
		lipgloss.NewStyle().Faint(true).PaddingTop(1).Render(v.ShortHelp()),
	)
}

func main() {
	summaryOnly := flag.Bool("summary", false, "print the dashboard of the saved session and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	if err := run(cfg, *summaryOnly); err != nil {
		slog.Error("failed to run TUI", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, summaryOnly bool) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	policy, err := cfg.VerifyPolicy()
	if err != nil {
		return err
	}

	storage, closeStorage, err := openTokenStore(cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	client, err := api.New(api.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RateLimit,
		Burst:             cfg.API.RateBurst,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}

	manager := session.NewManager(client, storage,
		session.WithPolicy(policy),
		session.WithReverifyInterval(cfg.Session.ReverifyInterval),
		session.WithTimeout(cfg.API.Timeout),
		session.WithLogger(logger),
	)

	app := state.New(manager, client,
		state.WithReportWindow(cfg.Reports.WindowMonths),
		state.WithTimeout(cfg.API.Timeout),
		state.WithLogger(logger),
	)

	if summaryOnly {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return printSummary(ctx, os.Stdout, app, time.Now())
	}

	p := tea.NewProgram(newModel(app, time.Now), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	return nil
}

func openTokenStore(cfg *config.Config) (session.Storage, func(), error) {
	if cfg.TokenStore.Kind == config.TokenStoreMemory {
		return tokenstore.NewMemory(""), func() {}, nil
	}

	store, err := tokenstore.OpenSQLite(cfg.TokenStore.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening token store: %w", err)
	}

	return store, func() { _ = store.Close() }, nil
}
