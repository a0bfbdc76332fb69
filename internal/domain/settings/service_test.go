package settings_test

import (
	"context"
	"testing"

	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/domain/settings"
	"github.com/rpggio/atelier/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_GetMergesDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SettingsRepository{}
	repo.On("All", ctx).Return(settings.Settings{settings.KeyTaxRate: "20"}, nil)

	got, err := settings.NewService(repo).Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "20", got[settings.KeyTaxRate])
	require.Equal(t, "INV-", got[settings.KeyInvoicePrefix])
	require.Equal(t, "1001", got[settings.KeyInvoiceNextNumber])
}

func TestSettingsService_UpdateValidates(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SettingsRepository{}

	_, err := settings.NewService(repo).Update(ctx, settings.Settings{settings.KeyTaxRate: "abc"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	repo.AssertNotCalled(t, "Upsert")

	patch := settings.Settings{settings.KeyCompanyName: "Studio"}
	repo.On("Upsert", ctx, patch).Return(nil)
	repo.On("All", ctx).Return(patch, nil)

	got, err := settings.NewService(repo).Update(ctx, patch)
	require.NoError(t, err)
	require.Equal(t, "Studio", got[settings.KeyCompanyName])
}
