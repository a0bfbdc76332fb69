package audit_test

import (
	"context"
	"testing"

	"github.com/rpggio/atelier/internal/domain/audit"
	"github.com/rpggio/atelier/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestAuditService_LogAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.AuditRepository{}
	entry := &audit.Entry{
		EntityType: audit.EntityInvoice,
		EntityID:   "inv1",
		Action:     audit.ActionInvoicePaid,
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, audit.ListOptions{EntityID: "inv1"}).Return([]audit.Entry{*entry}, nil)

	svc := audit.NewService(repo)
	require.NoError(t, svc.Log(ctx, entry))
	require.False(t, entry.Timestamp.IsZero())

	entries, err := svc.List(ctx, audit.ListOptions{EntityID: "inv1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestAuditService_LogRejectsIncompleteEntry(t *testing.T) {
	svc := audit.NewService(&mocks.AuditRepository{})
	require.ErrorIs(t, svc.Log(context.Background(), &audit.Entry{EntityType: audit.EntityQuote}), audit.ErrInvalidInput)
}
