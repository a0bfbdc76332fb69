package store

import (
	"context"
	"testing"

	"github.com/rpggio/atelier/internal/app"
	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/lifecycle"
	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/filestore"
	"github.com/rpggio/atelier/internal/sqlite"
	"github.com/stretchr/testify/require"
)

var _ Gateway = (*app.App)(nil)

func TestStoreOverApp(t *testing.T) {
	ctx := context.Background()
	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	notes := &recorder{}
	s := New(app.New(sqlite.NewTestDB(t), files, nil), notes)

	c, err := s.CreateClient(ctx, client.CreateRequest{Name: "Hooli", TaxRate: 5})
	require.NoError(t, err)

	q, err := s.CreateQuote(ctx, quote.CreateRequest{
		ClientID: c.ID,
		Name:     "Compression",
		Items:    []quote.ItemInput{{Description: "Algorithm", Quantity: 4, Rate: 250, Cost: 600}},
	})
	require.NoError(t, err)

	approved, err := s.ApproveQuote(ctx, q.ID)
	require.NoError(t, err)

	projects, err := s.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, approved.Project.ID, projects[0].ID)

	quotes, err := s.Quotes(ctx)
	require.NoError(t, err)
	require.Equal(t, quote.StatusApproved, quotes[0].Status)

	_, err = s.GenerateInvoice(ctx, lifecycle.GenerateRequest{ProjectID: approved.Project.ID})
	require.NoError(t, err)

	cfg, err := s.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, 1002, cfg.InvoiceNextNumber())

	_, err = s.ApproveQuote(ctx, q.ID)
	require.Error(t, err)
	last := notes.last()
	require.Equal(t, LevelWarning, last.Level)
	require.Equal(t, apperr.CodeValidation, apperr.From(err).Code)
}
