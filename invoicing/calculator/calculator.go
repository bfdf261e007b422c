package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/invoicing/domain"
)

var sixty = decimal.NewFromInt(60)

// CalculateStaffRates costs each requirement against table, preserving order.
// Positions missing from table get a zero rate with RateKnown unset.
func CalculateStaffRates(table domain.RateTable, reqs []domain.StaffRequirement) ([]domain.RatedStaffRequirement, error) {
	rated := make([]domain.RatedStaffRequirement, 0, len(reqs))

	for i, req := range reqs {
		r, err := rateRequirement(table, req)
		if err != nil {
			return nil, fmt.Errorf("requirement %d (%s): %w", i, req.Position, err)
		}

		rated = append(rated, r)
	}

	return rated, nil
}

func rateRequirement(table domain.RateTable, req domain.StaffRequirement) (domain.RatedStaffRequirement, error) {
	if req.Headcount <= 0 {
		return domain.RatedStaffRequirement{}, ErrInvalidHeadcount
	}

	start, err := clockMinutes(req.StartTime)
	if err != nil {
		return domain.RatedStaffRequirement{}, err
	}

	end, err := clockMinutes(req.EndTime)
	if err != nil {
		return domain.RatedStaffRequirement{}, err
	}

	rate, known := table.Rate(req.Position)
	hours := common.RoundMoney(decimal.NewFromInt(int64(shiftMinutes(start, end))).Div(sixty))
	subtotal := common.RoundMoney(rate.Mul(hours).Mul(decimal.NewFromInt(int64(req.Headcount))))

	normalized := req
	normalized.StartTime = fmt.Sprintf("%02d:%02d", start/60, start%60)
	normalized.EndTime = fmt.Sprintf("%02d:%02d", end/60, end%60)

	return domain.RatedStaffRequirement{
		StaffRequirement: normalized,
		HourlyRate:       rate,
		Hours:            hours,
		Subtotal:         subtotal,
		RateKnown:        known,
	}, nil
}

// UnknownPositions lists positions that resolved to no rate, in line order.
func UnknownPositions(rated []domain.RatedStaffRequirement) []string {
	var unknown []string

	for _, r := range rated {
		if !r.RateKnown {
			unknown = append(unknown, r.Position)
		}
	}

	return unknown
}

// CalculateTotals applies the fee cascade. The transaction fee is rounded before it
// joins the service fee base, and the full amount is rounded last.
func CalculateTotals(lines []domain.RatedStaffRequirement, fees domain.FeeSchedule) domain.InvoiceTotals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
	}

	transactionFee := common.RoundMoney(subtotal.Mul(fees.TransactionRate))
	serviceFee := subtotal.Add(transactionFee).Mul(fees.ServiceRate)

	return domain.InvoiceTotals{
		Subtotal:       subtotal,
		TransactionFee: transactionFee,
		ServiceFee:     serviceFee,
		FullAmount:     common.RoundMoney(subtotal.Add(transactionFee).Add(serviceFee)),
	}
}
