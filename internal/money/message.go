package money

import (
	"fmt"
	"strings"

	"daybook/internal/models"
)

// ComposeBookingMessage renders the shareable booking summary. The output is
// deterministic: same booking, labels and currency in, same text out. A blank
// notes field drops the notes line entirely instead of leaving an empty one.
func ComposeBookingMessage(b models.Booking, f *Formatter, labels models.MessageLabels) string {
	var sb strings.Builder

	sb.WriteString(labels.Title + "\n")
	sb.WriteString("---------\n")
	fmt.Fprintf(&sb, "%s: %s\n", labels.DateLabel, b.Date.Time().Format("January 2, 2006"))
	fmt.Fprintf(&sb, "%s: %s\n", labels.PeriodLabel, labels.PeriodText(b.Period))
	fmt.Fprintf(&sb, "%s: %s\n", labels.NameLabel, b.CustomerName)
	fmt.Fprintf(&sb, "%s: %s\n", labels.PhoneLabel, b.PhoneNumber)
	fmt.Fprintf(&sb, "%s: %s\n", labels.AddressLabel, b.Address)
	if b.Notes != "" {
		fmt.Fprintf(&sb, "%s: %s\n", labels.NotesLabel, b.Notes)
	}
	sb.WriteString(labels.PaymentHeader + "\n")
	fmt.Fprintf(&sb, "%s: %s\n", labels.TotalLabel, f.Format(b.TotalAmount))
	fmt.Fprintf(&sb, "%s: %s\n", labels.PaidLabel, f.Format(b.PaidAmount))
	fmt.Fprintf(&sb, "%s: %s\n", labels.RemainingLabel, f.Format(b.RemainingAmount))
	sb.WriteString(labels.Closing)

	return strings.TrimSpace(sb.String())
}
