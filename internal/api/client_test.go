package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny/internal/api"
)

func newClient(t *testing.T, h http.HandlerFunc) *api.Client {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := api.New(api.Config{BaseURL: ts.URL})
	require.NoError(t, err)

	return c
}

func TestClient_AuthorizationHeader(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantHeader string
		wantSet    bool
	}{
		{name: "WithToken", token: "abc", wantHeader: "Bearer abc", wantSet: true},
		{name: "WithoutToken", token: "", wantSet: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotHeader string
				gotSet    bool
			)

			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, gotSet = r.Header["Authorization"]
				gotHeader = r.Header.Get("Authorization")
				w.Write([]byte(`{"id": 7, "username": "ana", "email": "ana@example.com"}`))
			})

			ctx := context.Background()
			if tt.token != "" {
				ctx = api.WithToken(ctx, tt.token)
			}

			_, err := c.Me(ctx)
			require.NoError(t, err)

			assert.Equal(t, tt.wantSet, gotSet)
			assert.Equal(t, tt.wantHeader, gotHeader)
		})
	}
}

func TestClient_Login(t *testing.T) {
	var got api.Credentials

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Write([]byte(`{"token":"t-1","user":{"id":"u1","username":"ana","email":"ana@example.com"}}`))
	})

	res, err := c.Login(context.Background(), api.Credentials{Username: "ana", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, api.Credentials{Username: "ana", Password: "secret"}, got)
	assert.Equal(t, "t-1", res.Token)
	assert.Equal(t, api.Profile{ID: "u1", Username: "ana", Email: "ana@example.com"}, res.Profile)
}

func TestClient_BackendError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "JSONMessage", status: http.StatusUnauthorized, body: `{"message":"Invalid credentials"}`, wantMessage: "Invalid credentials"},
		{name: "PlainText", status: http.StatusInternalServerError, body: "boom", wantMessage: ""},
		{name: "NoMessageField", status: http.StatusBadRequest, body: `{"error":"x"}`, wantMessage: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Login(context.Background(), api.Credentials{Username: "a", Password: "b"})
			require.Error(t, err)

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.False(t, api.IsTransport(err))
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	c, err := api.New(api.Config{BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = c.Forecast(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
	assert.Equal(t, "Failed to fetch forecast data", api.Message(err, "Failed to fetch forecast data"))
}

func TestClient_MonthlyReport(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reports/monthly", r.URL.Path)
		assert.Equal(t, "2024-02", r.URL.Query().Get("month"))
		w.Write([]byte(`{"totalIncome": 1500.50, "totalExpense": "320"}`))
	})

	rep, err := c.MonthlyReport(context.Background(), "2024-02")
	require.NoError(t, err)

	assert.Equal(t, "2024-02", rep.Month)
	assert.True(t, decimal.RequireFromString("1500.5").Equal(rep.Income))
	assert.True(t, decimal.NewFromInt(320).Equal(rep.Expense))
}

func TestClient_MonthlyReport_InvalidMonth(t *testing.T) {
	called := false

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.MonthlyReport(context.Background(), "2024/02")
	require.Error(t, err)

	var validationErr *api.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.False(t, called)
}

func TestClient_Forecast_InvalidPayload(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"Rent","amount":-10,"projectedDate":"2024-01-01"}]`))
	})

	_, err := c.Forecast(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrInvalidPayload))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "Nil", err: nil, want: ""},
		{name: "BackendMessage", err: &api.Error{StatusCode: 400, Message: "Username taken"}, want: "Username taken"},
		{name: "BackendWithoutMessage", err: &api.Error{StatusCode: 500}, want: "fallback"},
		{name: "Validation", err: &api.ValidationError{Reason: "Both fields are required."}, want: "Both fields are required."},
		{name: "Transport", err: api.ErrTransport, want: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, api.Message(tt.err, "fallback"))
		})
	}
}
