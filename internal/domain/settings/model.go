package settings

import (
	"strconv"
	"strings"
)

// Known setting keys.
const (
	KeyTaxRate           = "taxRate"
	KeyInvoicePrefix     = "invoicePrefix"
	KeyInvoiceNextNumber = "invoiceNextNumber"
	KeyPaymentTerms      = "paymentTerms"
	KeyCurrency          = "currency"
	KeyCompanyName       = "companyName"
)

// Defaults applied when a key has never been stored.
const (
	DefaultInvoicePrefix     = "INV-"
	DefaultInvoiceNextNumber = 1001
	DefaultPaymentTerms      = 30
)

// Settings is the flat key/value configuration of the studio.
type Settings map[string]string

// TaxRate returns the global tax rate, 0 when unset or malformed.
func (s Settings) TaxRate() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s[KeyTaxRate]), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// InvoicePrefix returns the invoice number prefix.
func (s Settings) InvoicePrefix() string {
	if v, ok := s[KeyInvoicePrefix]; ok {
		return v
	}
	return DefaultInvoicePrefix
}

// InvoiceNextNumber returns the counter the next invoice will claim.
func (s Settings) InvoiceNextNumber() int {
	v, err := strconv.Atoi(strings.TrimSpace(s[KeyInvoiceNextNumber]))
	if err != nil || v <= 0 {
		return DefaultInvoiceNextNumber
	}
	return v
}

// PaymentTerms returns the number of days between issue and due date.
func (s Settings) PaymentTerms() int {
	v, err := strconv.Atoi(strings.TrimSpace(s[KeyPaymentTerms]))
	if err != nil || v < 0 {
		return DefaultPaymentTerms
	}
	return v
}

// WithDefaults returns a copy with every known key filled in.
func (s Settings) WithDefaults() Settings {
	out := Settings{
		KeyTaxRate:           "0",
		KeyInvoicePrefix:     DefaultInvoicePrefix,
		KeyInvoiceNextNumber: strconv.Itoa(DefaultInvoiceNextNumber),
		KeyPaymentTerms:      strconv.Itoa(DefaultPaymentTerms),
		KeyCurrency:          "USD",
	}
	for k, v := range s {
		out[k] = v
	}
	return out
}
