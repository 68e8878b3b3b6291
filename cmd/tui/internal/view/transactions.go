package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finny/internal/state"
	"github.com/MrJamesThe3rd/finny/internal/summary"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

type txState int

const (
	txStateBrowse txState = iota
	txStatePicking
)

var typeFilters = []string{"All", "Income", "Expense"}

// TransactionsModel lists the fetched transactions with client-side filters.
type TransactionsModel struct {
	CommonModel

	state   txState
	table   table.Model
	picker  TimeframePicker
	window  Range
	typeIdx int

	rows []transaction.Transaction
}

func NewTransactionsModel(now func() time.Time) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 9},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 14},
		{Title: "Description", Width: 36},
	}

	return TransactionsModel{
		table:  newTable(columns, 15),
		picker: NewTimeframePicker(now),
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	if m.state == txStatePicking {
		return "Esc: cancel"
	}

	return "Esc: back | d: date range | s: type filter | r: refresh"
}

func (m TransactionsModel) Update(msg tea.Msg, app state.Model) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))
	case RangeSelectedMsg:
		m.window = msg.Range
		m.state = txStateBrowse
		m.table.Focus()
		m.table.SetCursor(0)
	}

	var cmd tea.Cmd

	switch m.state {
	case txStatePicking:
		m, cmd = m.updatePicking(msg)
	case txStateBrowse:
		m, cmd = m.updateBrowse(msg)
	}

	m.refreshTable(app)

	return m, cmd
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (TransactionsModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, Back
		case "r":
			return m, Dispatch(state.FetchTransactions{})
		case "s":
			m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
			m.table.SetCursor(0)

			return m, nil
		case "d":
			m.state = txStatePicking
			m.picker.Reset()
			m.table.Blur()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updatePicking(msg tea.Msg) (TransactionsModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" && m.picker.IsSelecting() {
		m.state = txStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

// visible applies the type and date filters, keeping the backend's order.
func (m TransactionsModel) visible(txs []transaction.Transaction) []transaction.Transaction {
	out := make([]transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if m.typeIdx == 1 && !tx.Type.Is(transaction.TypeIncome) {
			continue
		}

		if m.typeIdx == 2 && !tx.Type.Is(transaction.TypeExpense) {
			continue
		}

		if !m.window.Contains(tx.Date) {
			continue
		}

		out = append(out, tx)
	}

	return out
}

func (m *TransactionsModel) refreshTable(app state.Model) {
	m.rows = m.visible(app.Transactions.Items)

	rows := make([]table.Row, 0, len(m.rows))
	for _, tx := range m.rows {
		amount := FormatAmount(tx.Amount)
		if tx.Type.Is(transaction.TypeExpense) {
			amount = "-" + amount
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			strings.ToLower(string(tx.Type)),
			tx.Category,
			amount,
			tx.Description,
		})
	}

	m.table.SetRows(rows)
}

func (m TransactionsModel) View(app state.Model) string {
	list := app.Transactions

	if list.Loading && len(list.Items) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.state == txStatePicking {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	header := fmt.Sprintf(
		"Filter: [s] Type: %s | [d] Date: %s",
		activeStyle(typeFilters[m.typeIdx]),
		activeStyle(m.window.String()),
	)

	totals := summary.ComputeTotals(m.rows)
	footer := fmt.Sprintf(
		"%d shown | Income %s | Expense %s | Net %s",
		len(m.rows),
		incomeStyle.Render(FormatAmount(totals.Income)),
		expenseStyle.Render(FormatAmount(totals.Expense)),
		FormatAmount(totals.Net),
	)

	parts := []string{
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
		footer,
	}

	if list.Loading {
		parts = append(parts, faintStyle.Render("Refreshing..."))
	}

	if line := errorLine(list.Error); line != "" {
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
