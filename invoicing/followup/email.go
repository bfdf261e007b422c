package followup

import (
	"fmt"
	"strings"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	"github.com/evstaffing/invoice-service/mailer"
	"github.com/evstaffing/invoice-service/notification"
)

const dueDateLayout = "January 2, 2006"

func (s *FollowUpService) renderEmail(invoice *domain.Invoice) *mailer.Email {
	balance := common.FormatMoney(s.printer, invoice.Balance, invoice.Currency)

	paragraphs := []string{
		fmt.Sprintf("Hi %s,", invoice.ClientName),
		fmt.Sprintf("This is a friendly reminder that invoice **%s** was due on %s. The outstanding balance is **%s**.",
			invoice.PONumber, invoice.DueDate.Format(dueDateLayout), balance),
		staffingSummary(invoice.Requirements),
	}

	if invoice.CheckoutURL != "" {
		paragraphs = append(paragraphs, fmt.Sprintf("[Pay invoice %s](%s)", invoice.PONumber, invoice.CheckoutURL))
	}

	paragraphs = append(paragraphs, "If you have already paid or have any questions, just reply to this email.")

	return &mailer.Email{
		To:         invoice.ClientEmail,
		Subject:    fmt.Sprintf("Payment reminder: invoice %s (%s due)", invoice.PONumber, balance),
		HTML:       notification.RenderHTML(paragraphs),
		ReplyTo:    invoice.AdminEmail,
		Categories: []string{mailer.CategoryInvoices, mailer.CategoryInvoicesReminder},
	}
}

func staffingSummary(lines []domain.InvoiceLine) string {
	var b strings.Builder

	for _, line := range lines {
		fmt.Fprintf(&b, "- %d x %s on %s, %s-%s\n", line.Headcount, line.Position, line.Date, line.StartTime, line.EndTime)
	}

	return b.String()
}
