package settings_test

import (
	"testing"

	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/domain/settings"
	"github.com/stretchr/testify/require"
)

func TestSettings_Defaults(t *testing.T) {
	s := settings.Settings{}
	require.Equal(t, 0.0, s.TaxRate())
	require.Equal(t, "INV-", s.InvoicePrefix())
	require.Equal(t, 1001, s.InvoiceNextNumber())
	require.Equal(t, 30, s.PaymentTerms())
}

func TestSettings_Parsed(t *testing.T) {
	s := settings.Settings{
		settings.KeyTaxRate:           "7.5",
		settings.KeyInvoicePrefix:     "",
		settings.KeyInvoiceNextNumber: "2000",
		settings.KeyPaymentTerms:      "14",
	}
	require.Equal(t, 7.5, s.TaxRate())
	require.Equal(t, "", s.InvoicePrefix())
	require.Equal(t, 2000, s.InvoiceNextNumber())
	require.Equal(t, 14, s.PaymentTerms())

	merged := s.WithDefaults()
	require.Equal(t, "USD", merged[settings.KeyCurrency])
	require.Equal(t, "2000", merged[settings.KeyInvoiceNextNumber])
}

func TestValidate(t *testing.T) {
	require.NoError(t, settings.Validate(settings.Settings{settings.KeyTaxRate: "20", "companyName": "Studio"}))

	err := settings.Validate(settings.Settings{
		settings.KeyTaxRate:           "abc",
		settings.KeyInvoiceNextNumber: "0",
		settings.KeyPaymentTerms:      "-1",
	})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 3)
}
