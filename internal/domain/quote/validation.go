package quote

import (
	"strings"

	"github.com/rpggio/atelier/internal/apperr"
)

// ValidateCreateInput validates fields required to create a quote.
func ValidateCreateInput(req CreateRequest) error {
	v := apperr.Violations{}
	if strings.TrimSpace(req.ClientID) == "" {
		v["client_id"] = "required"
	}
	if strings.TrimSpace(req.Name) == "" {
		v["name"] = "required"
	}
	if req.TaxRate < 0 || req.TaxRate > 100 {
		v["tax_rate"] = "out_of_range"
	}
	if req.DiscountRate < 0 || req.DiscountRate > 100 {
		v["discount_rate"] = "out_of_range"
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.Description) == "" {
			v["items.description"] = "required"
		}
		if item.Quantity < 0 {
			v["items.quantity"] = "must_not_be_negative"
		}
		if item.Rate < 0 {
			v["items.rate"] = "must_not_be_negative"
		}
		if item.Cost < 0 {
			v["items.cost"] = "must_not_be_negative"
		}
	}
	return v.Check()
}

// ValidateTransition checks a status change. Approval is only valid from
// Draft or Sent and is performed by the approve transaction.
func ValidateTransition(from, to Status) error {
	switch from {
	case StatusDraft:
		switch to {
		case StatusSent, StatusApproved, StatusRejected, StatusArchived:
			return nil
		}
	case StatusSent:
		switch to {
		case StatusApproved, StatusRejected:
			return nil
		}
	}
	return ErrInvalidTransition
}
