// Package ledger is the in-memory account and finance data behind the
// development backend.
package ledger

import (
	"crypto/subtle"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finny/internal/budget"
	"github.com/MrJamesThe3rd/finny/internal/forecast"
	"github.com/MrJamesThe3rd/finny/internal/report"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type User struct {
	ID       uuid.UUID
	Username string
	Email    string
	password string
}

// Recurring is an expense that repeats monthly on the same day.
type Recurring struct {
	Title    string
	Category string
	Amount   decimal.Decimal
	Day      int
}

type account struct {
	user         User
	transactions []transaction.Transaction
	budgets      []budget.Budget
	recurring    []Recurring
}

type Ledger struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*account
}

func New() *Ledger {
	return &Ledger{accounts: make(map[uuid.UUID]*account)}
}

func (l *Ledger) Register(username, email, password string) (User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.findLocked(username) != nil {
		return User{}, ErrUsernameTaken
	}

	u := User{ID: uuid.New(), Username: username, Email: email, password: password}
	l.accounts[u.ID] = &account{user: u}

	return u, nil
}

func (l *Ledger) Authenticate(username, password string) (User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acc := l.findLocked(username)
	if acc == nil || subtle.ConstantTimeCompare([]byte(acc.user.password), []byte(password)) != 1 {
		return User{}, ErrInvalidCredentials
	}

	return acc.user, nil
}

func (l *Ledger) User(id uuid.UUID) (User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acc, ok := l.accounts[id]
	if !ok {
		return User{}, ErrNotFound
	}

	return acc.user, nil
}

// ProfileChange is a partial update; empty fields are left alone.
type ProfileChange struct {
	Username        string
	CurrentPassword string
	NewPassword     string
}

func (l *Ledger) UpdateProfile(id uuid.UUID, change ProfileChange) (User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[id]
	if !ok {
		return User{}, ErrNotFound
	}

	if change.NewPassword != "" {
		if subtle.ConstantTimeCompare([]byte(acc.user.password), []byte(change.CurrentPassword)) != 1 {
			return User{}, ErrWrongPassword
		}

		acc.user.password = change.NewPassword
	}

	if change.Username != "" && change.Username != acc.user.Username {
		if l.findLocked(change.Username) != nil {
			return User{}, ErrUsernameTaken
		}

		acc.user.Username = change.Username
	}

	return acc.user, nil
}

func (l *Ledger) Delete(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[id]; !ok {
		return ErrNotFound
	}

	delete(l.accounts, id)

	return nil
}

func (l *Ledger) AddTransaction(id uuid.UUID, tx transaction.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[id]
	if !ok {
		return ErrNotFound
	}

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	acc.transactions = append(acc.transactions, tx)

	return nil
}

// ImportResult reports what Import did with a statement.
type ImportResult struct {
	Added   []transaction.Transaction
	Skipped int
}

type dupKey struct {
	date        string
	amount      string
	typ         string
	description string
}

func keyOf(tx transaction.Transaction) dupKey {
	return dupKey{
		date:        tx.Date.UTC().Format(time.DateOnly),
		amount:      tx.Amount.StringFixed(2),
		typ:         strings.ToLower(string(tx.Type)),
		description: tx.Description,
	}
}

// Import adds statement rows, skipping any that match an existing
// transaction (or an earlier row of the same statement) on day, amount,
// type and description.
func (l *Ledger) Import(id uuid.UUID, txs []transaction.Transaction) (ImportResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[id]
	if !ok {
		return ImportResult{}, ErrNotFound
	}

	seen := make(map[dupKey]struct{}, len(acc.transactions)+len(txs))
	for _, tx := range acc.transactions {
		seen[keyOf(tx)] = struct{}{}
	}

	var res ImportResult

	for _, tx := range txs {
		k := keyOf(tx)
		if _, dup := seen[k]; dup {
			res.Skipped++
			continue
		}

		seen[k] = struct{}{}

		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}

		acc.transactions = append(acc.transactions, tx)
		res.Added = append(res.Added, tx)
	}

	return res, nil
}

func (l *Ledger) SetBudget(id uuid.UUID, b budget.Budget) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[id]
	if !ok {
		return ErrNotFound
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	acc.budgets = append(acc.budgets, b)

	return nil
}

func (l *Ledger) AddRecurring(id uuid.UUID, r Recurring) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[id]
	if !ok {
		return ErrNotFound
	}

	acc.recurring = append(acc.recurring, r)

	return nil
}

// Transactions returns the account's transactions, newest first.
func (l *Ledger) Transactions(id uuid.UUID) ([]transaction.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acc, ok := l.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}

	txs := slices.Clone(acc.transactions)
	slices.SortStableFunc(txs, func(a, b transaction.Transaction) int {
		return b.Date.Compare(a.Date)
	})

	return txs, nil
}

func (l *Ledger) Budgets(id uuid.UUID) ([]budget.Budget, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acc, ok := l.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}

	return slices.Clone(acc.budgets), nil
}

// MonthlyReport sums the account's transactions dated in month (YYYY-MM).
func (l *Ledger) MonthlyReport(id uuid.UUID, month string) (report.Report, error) {
	txs, err := l.Transactions(id)
	if err != nil {
		return report.Report{}, err
	}

	r := report.Report{Month: month, Income: decimal.Zero, Expense: decimal.Zero}

	for _, tx := range txs {
		if tx.Date.UTC().Format(report.MonthLayout) != month {
			continue
		}

		switch {
		case tx.Type.Is(transaction.TypeIncome):
			r.Income = r.Income.Add(tx.Amount)
		case tx.Type.Is(transaction.TypeExpense):
			r.Expense = r.Expense.Add(tx.Amount)
		}
	}

	return r, nil
}

// Forecast projects the next occurrence of every recurring expense after now.
// Items are returned in insertion order; ordering is the client's job.
func (l *Ledger) Forecast(id uuid.UUID, now time.Time) ([]forecast.Forecast, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acc, ok := l.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]forecast.Forecast, 0, len(acc.recurring))

	for _, r := range acc.recurring {
		out = append(out, forecast.Forecast{
			Title:         r.Title,
			Category:      r.Category,
			Amount:        r.Amount,
			ProjectedDate: nextOccurrence(r.Day, now),
		})
	}

	return out, nil
}

func (l *Ledger) findLocked(username string) *account {
	for _, acc := range l.accounts {
		if strings.EqualFold(acc.user.Username, username) {
			return acc
		}
	}

	return nil
}

func nextOccurrence(day int, now time.Time) time.Time {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	d := clampDay(now.Year(), now.Month(), day)
	if !d.Before(today) {
		return d
	}

	next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)

	return clampDay(next.Year(), next.Month(), day)
}

func clampDay(year int, month time.Month, day int) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	return time.Date(year, month, min(max(day, 1), last), 0, 0, 0, 0, time.UTC)
}
