package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
)

// StaffRequirement is one position/time-window/headcount line of a staffing request.
type StaffRequirement struct {
	Position  string `json:"position" firestore:"position" validate:"required"`
	Date      string `json:"date" firestore:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" firestore:"startTime" validate:"required"`
	EndTime   string `json:"endTime" firestore:"endTime" validate:"required"`
	Headcount int    `json:"headcount" firestore:"headcount" validate:"gt=0"`
}

// RatedStaffRequirement is a requirement costed against a rate table.
// Start and end times are normalized to 24h HH:MM.
type RatedStaffRequirement struct {
	StaffRequirement
	HourlyRate decimal.Decimal
	Hours      decimal.Decimal
	Subtotal   decimal.Decimal
	RateKnown  bool
}

// InvoiceLine is the persisted copy of a rated requirement. Issued invoices
// never re-read the live rate table.
type InvoiceLine struct {
	Position   string  `json:"position" firestore:"position"`
	Date       string  `json:"date" firestore:"date"`
	StartTime  string  `json:"startTime" firestore:"startTime"`
	EndTime    string  `json:"endTime" firestore:"endTime"`
	Headcount  int     `json:"headcount" firestore:"headcount"`
	HourlyRate float64 `json:"hourlyRate" firestore:"hourlyRate"`
	Hours      float64 `json:"hours" firestore:"hours"`
	Subtotal   float64 `json:"subtotal" firestore:"subtotal"`
	RateKnown  bool    `json:"rateKnown" firestore:"rateKnown"`
}

func NewInvoiceLines(rated []RatedStaffRequirement) []InvoiceLine {
	lines := make([]InvoiceLine, len(rated))

	for i, r := range rated {
		lines[i] = InvoiceLine{
			Position:   r.Position,
			Date:       r.Date,
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
			Headcount:  r.Headcount,
			HourlyRate: r.HourlyRate.InexactFloat64(),
			Hours:      r.Hours.InexactFloat64(),
			Subtotal:   r.Subtotal.InexactFloat64(),
			RateKnown:  r.RateKnown,
		}
	}

	return lines
}

// StaffingRequest is the client's original request, stored next to the invoice it produced.
type StaffingRequest struct {
	ID           string             `json:"id" firestore:"-"`
	ClientName   string             `json:"clientName" firestore:"clientName"`
	ClientEmail  string             `json:"clientEmail" firestore:"clientEmail"`
	AdminEmail   string             `json:"adminEmail" firestore:"adminEmail"`
	Requirements []StaffRequirement `json:"requirements" firestore:"requirements"`
	InvoiceID    string             `json:"invoiceId" firestore:"invoiceId"`
	TimeCreated  time.Time          `json:"timeCreated" firestore:"timeCreated"`
}

// RateTable maps a position name to its hourly rate in major units.
type RateTable map[string]decimal.Decimal

var defaultRates = map[string]string{
	"Bartenders":        "25",
	"Brand Ambassadors": "18",
	"Servers":           "22",
	"Event Staff":       "20",
	"Security":          "30",
	"Promo Models":      "35",
}

// DefaultRateTable returns a fresh copy of the built-in rates.
func DefaultRateTable() RateTable {
	t := make(RateTable, len(defaultRates))
	for position, rate := range defaultRates {
		t[position] = decimal.RequireFromString(rate)
	}

	return t
}

// NewRateTable builds a rate table from persisted float rates.
func NewRateTable(rates map[string]float64) RateTable {
	t := make(RateTable, len(rates))
	for position, rate := range rates {
		t[position] = decimal.NewFromFloat(rate)
	}

	return t
}

// Rate resolves position by exact match.
func (t RateTable) Rate(position string) (decimal.Decimal, bool) {
	rate, ok := t[position]
	return rate, ok
}

// Positions returns the known position names, sorted.
func (t RateTable) Positions() []string {
	positions := maps.Keys(t)
	sort.Strings(positions)

	return positions
}
