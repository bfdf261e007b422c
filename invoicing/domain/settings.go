package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	DefaultNetDays              = 14
	MinFollowUpDelayMinutes     = 1
	MaxFollowUpDelayMinutes     = 60
	defaultFollowUpDelayMinutes = 0
)

// Settings is the app/invoicing document. Zero values fall back to built-in defaults.
type Settings struct {
	Rates                       map[string]float64 `firestore:"rates"`
	StrictRates                 bool               `firestore:"strictRates"`
	NetDays                     int                `firestore:"netDays"`
	DefaultFollowUpDelayMinutes int                `firestore:"defaultFollowUpDelayMinutes"`
	TransactionFeeRate          float64            `firestore:"transactionFeeRate"`
	ServiceFeeRate              float64            `firestore:"serviceFeeRate"`
}

func DefaultSettings() *Settings {
	return &Settings{
		NetDays:                     DefaultNetDays,
		DefaultFollowUpDelayMinutes: defaultFollowUpDelayMinutes,
	}
}

func (s *Settings) RateTable() RateTable {
	if len(s.Rates) == 0 {
		return DefaultRateTable()
	}

	return NewRateTable(s.Rates)
}

func (s *Settings) FeeSchedule() FeeSchedule {
	fees := DefaultFeeSchedule

	if s.TransactionFeeRate > 0 {
		fees.TransactionRate = decimal.NewFromFloat(s.TransactionFeeRate)
	}

	if s.ServiceFeeRate > 0 {
		fees.ServiceRate = decimal.NewFromFloat(s.ServiceFeeRate)
	}

	return fees
}

func (s *Settings) PaymentTermDays() int {
	if s.NetDays <= 0 {
		return DefaultNetDays
	}

	return s.NetDays
}

// ValidFollowUpDelay reports whether minutes is an allowed follow-up tier.
func ValidFollowUpDelay(minutes int) bool {
	return minutes >= MinFollowUpDelayMinutes && minutes <= MaxFollowUpDelayMinutes
}

// FollowUpTier is the followUps map key for a delay tier, e.g. "15m".
func FollowUpTier(delayMinutes int) string {
	return strconv.Itoa(delayMinutes) + "m"
}
