package invoice_test

import (
	"testing"

	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	allowed := [][2]invoice.Status{
		{invoice.StatusDraft, invoice.StatusSent},
		{invoice.StatusSent, invoice.StatusOverdue},
		{invoice.StatusSent, invoice.StatusPaid},
		{invoice.StatusOverdue, invoice.StatusPaid},
		{invoice.StatusDraft, invoice.StatusPaid},
		{invoice.StatusPaid, invoice.StatusArchived},
	}
	for _, tr := range allowed {
		require.NoError(t, invoice.ValidateTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]invoice.Status{
		{invoice.StatusPaid, invoice.StatusPaid},
		{invoice.StatusPaid, invoice.StatusSent},
		{invoice.StatusArchived, invoice.StatusArchived},
		{invoice.StatusDraft, invoice.StatusOverdue},
		{invoice.StatusArchived, invoice.StatusPaid},
	}
	for _, tr := range denied {
		require.ErrorIs(t, invoice.ValidateTransition(tr[0], tr[1]), invoice.ErrInvalidTransition, "%s -> %s", tr[0], tr[1])
	}
}
