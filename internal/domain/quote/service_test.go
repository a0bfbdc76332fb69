package quote_test

import (
	"context"
	"testing"

	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/repository"
	"github.com/rpggio/atelier/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQuoteService_CreateComputesTotals(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.QuoteRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := quote.NewService(repo, nil)
	q, err := svc.Create(ctx, quote.CreateRequest{
		ClientID: "c1",
		Name:     "Website",
		Items: []quote.ItemInput{
			{Description: "Design", Quantity: 10, Rate: 100, Cost: 600},
			{Description: "Build", Quantity: 12.5, Rate: 80, Cost: 500},
		},
	})
	require.NoError(t, err)
	require.Equal(t, quote.StatusDraft, q.Status)
	require.Equal(t, 1, q.Version)
	require.Equal(t, 2000.0, q.TotalPrice)
	require.Equal(t, 1100.0, q.TotalCost)
	require.Equal(t, 45.0, q.Margin)
	require.Equal(t, 1000.0, q.Items[1].Total)
	require.Equal(t, 1, q.Items[1].Position)
	for _, item := range q.Items {
		require.Equal(t, q.ID, item.QuoteID)
	}
}

func TestQuoteService_CreateMissingClient(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.QuoteRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	_, err := quote.NewService(repo, nil).Create(ctx, quote.CreateRequest{ClientID: "nope", Name: "X"})
	require.ErrorIs(t, err, quote.ErrClientNotFound)
}

func TestQuoteService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.QuoteRepository{}
	repo.On("Get", ctx, "q1").Return(&quote.Quote{ID: "q1", Status: quote.StatusDraft}, nil)
	repo.On("UpdateStatus", ctx, "q1", quote.StatusDraft, quote.StatusSent, mock.Anything).Return(nil)

	svc := quote.NewService(repo, nil)
	q, err := svc.UpdateStatus(ctx, "q1", quote.StatusSent)
	require.NoError(t, err)
	require.Equal(t, quote.StatusSent, q.Status)

	_, err = svc.UpdateStatus(ctx, "q1", quote.StatusApproved)
	require.ErrorIs(t, err, quote.ErrUseApprove)
}

func TestQuoteService_InvalidTransition(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.QuoteRepository{}
	repo.On("Get", ctx, "q1").Return(&quote.Quote{ID: "q1", Status: quote.StatusRejected}, nil)

	_, err := quote.NewService(repo, nil).UpdateStatus(ctx, "q1", quote.StatusSent)
	require.ErrorIs(t, err, quote.ErrInvalidTransition)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQuoteService_UpdateStatusLosesRace(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.QuoteRepository{}
	repo.On("Get", ctx, "q1").Return(&quote.Quote{ID: "q1", Status: quote.StatusSent}, nil)
	repo.On("UpdateStatus", ctx, "q1", quote.StatusSent, quote.StatusRejected, mock.Anything).Return(repository.ErrStale)

	_, err := quote.NewService(repo, nil).UpdateStatus(ctx, "q1", quote.StatusRejected)
	require.ErrorIs(t, err, quote.ErrInvalidTransition)
}

func TestValidateTransition(t *testing.T) {
	allowed := [][2]quote.Status{
		{quote.StatusDraft, quote.StatusSent},
		{quote.StatusDraft, quote.StatusApproved},
		{quote.StatusSent, quote.StatusApproved},
		{quote.StatusDraft, quote.StatusArchived},
		{quote.StatusDraft, quote.StatusRejected},
		{quote.StatusSent, quote.StatusRejected},
	}
	for _, tr := range allowed {
		require.NoError(t, quote.ValidateTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]quote.Status{
		{quote.StatusApproved, quote.StatusDraft},
		{quote.StatusSent, quote.StatusArchived},
		{quote.StatusRejected, quote.StatusApproved},
		{quote.StatusArchived, quote.StatusSent},
	}
	for _, tr := range denied {
		require.ErrorIs(t, quote.ValidateTransition(tr[0], tr[1]), quote.ErrInvalidTransition, "%s -> %s", tr[0], tr[1])
	}
}

func TestQuoteService_DeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.QuoteRepository{}
	repo.On("Delete", ctx, "q1").Return(repository.ErrNotFound)

	require.ErrorIs(t, quote.NewService(repo, nil).Delete(ctx, "q1"), quote.ErrQuoteNotFound)
}
