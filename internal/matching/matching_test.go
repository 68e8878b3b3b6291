package matching_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny/internal/matching"
	"github.com/MrJamesThe3rd/finny/internal/matching/store"
)

func TestService_Suggest(t *testing.T) {
	ctx := context.Background()
	svc := matching.NewService(store.NewMemory())

	require.NoError(t, svc.Learn(ctx, "uber", "Transport"))
	require.NoError(t, svc.Learn(ctx, "uber eats", "Food"))
	require.NoError(t, svc.Learn(ctx, "wise", "Salary"))
	require.NoError(t, svc.Learn(ctx, "WISE", "Transfers"))

	tests := []struct {
		description string
		want        string
	}{
		{description: "UBER   *TRIP HELP.UBER.COM", want: "Transport"},
		{description: "UBER EATS LISBOA", want: "Food"},
		{description: "TFI Wise", want: "Transfers"},
		{description: "PAGAMENTO TSU", want: matching.Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, err := svc.Suggest(ctx, tt.description)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_LearnRejectsEmpty(t *testing.T) {
	svc := matching.NewService(store.NewMemory())

	assert.ErrorIs(t, svc.Learn(context.Background(), " ", "Food"), matching.ErrEmptyRule)
	assert.ErrorIs(t, svc.Learn(context.Background(), "uber", ""), matching.ErrEmptyRule)
}
