package common

import (
	"strings"

	"golang.org/x/text/message"
)

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"cad": "CA$",
	"aud": "A$",
}

// GetCurrencySymbol returns the display symbol of an ISO currency code.
func GetCurrencySymbol(currency string) (string, bool) {
	symbol, ok := currencySymbols[strings.ToLower(currency)]
	return symbol, ok
}

// FormatMoney formats a major-unit amount with digit grouping, e.g. $1,234.50.
func FormatMoney(p *message.Printer, amount float64, currency string) string {
	symbol, ok := GetCurrencySymbol(currency)
	if !ok {
		return p.Sprintf("%.2f %s", amount, strings.ToUpper(currency))
	}

	return p.Sprintf("%s%.2f", symbol, amount)
}
