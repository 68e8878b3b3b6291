package finance

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finny/internal/budget"
	"github.com/MrJamesThe3rd/finny/internal/forecast"
	"github.com/MrJamesThe3rd/finny/internal/report"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

type TransactionResponse struct {
	ID          string           `json:"id"`
	Type        transaction.Type `json:"type"`
	Category    string           `json:"category"`
	Description string           `json:"description,omitempty"`
	Amount      json.Number      `json:"amount"`
	Date        string           `json:"date"`
}

type reportResponse struct {
	Month        string      `json:"month"`
	TotalIncome  json.Number `json:"totalIncome"`
	TotalExpense json.Number `json:"totalExpense"`
}

type budgetResponse struct {
	ID       string      `json:"id"`
	Category string      `json:"category"`
	Limit    json.Number `json:"limit"`
	Month    string      `json:"month,omitempty"`
}

type forecastResponse struct {
	Title         string      `json:"title"`
	Category      string      `json:"category"`
	Amount        json.Number `json:"amount"`
	ProjectedDate string      `json:"projectedDate"`
}

// number renders d as a bare JSON number, the way dashboards expect amounts.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func ToTransactionList(txs []transaction.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = TransactionResponse{
			ID:          tx.ID,
			Type:        tx.Type,
			Category:    tx.Category,
			Description: tx.Description,
			Amount:      number(tx.Amount),
			Date:        tx.Date.UTC().Format(time.DateOnly),
		}
	}

	return resp
}

func toReport(r report.Report) reportResponse {
	return reportResponse{Month: r.Month, TotalIncome: number(r.Income), TotalExpense: number(r.Expense)}
}

func toBudgetList(bs []budget.Budget) []budgetResponse {
	resp := make([]budgetResponse, len(bs))
	for i, b := range bs {
		resp[i] = budgetResponse{ID: b.ID, Category: b.Category, Limit: number(b.Limit), Month: b.Month}
	}

	return resp
}

func toForecastList(fs []forecast.Forecast) []forecastResponse {
	resp := make([]forecastResponse, len(fs))
	for i, f := range fs {
		resp[i] = forecastResponse{
			Title:         f.Title,
			Category:      f.Category,
			Amount:        number(f.Amount),
			ProjectedDate: f.ProjectedDate.UTC().Format(time.RFC3339),
		}
	}

	return resp
}
