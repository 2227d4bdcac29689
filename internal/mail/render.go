package mail

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteMailData carries everything the quote notification templates need.
type QuoteMailData struct {
	QuoteNumber string
	PartNumber  string
	Description string
	VendorName  string
	VendorEmail string
	Price       decimal.Decimal
	LeadTime    string
	Notes       *string
	SubmittedAt time.Time
}

var buyerSummaryTmpl = template.Must(template.New("buyer_summary").Parse(`<h2>New quote received</h2>
<p><strong>{{.VendorName}}</strong> submitted quote <strong>{{.QuoteNumber}}</strong>.</p>
<table>
<tr><td>Part</td><td>{{.PartNumber}}</td></tr>
<tr><td>Description</td><td>{{.Description}}</td></tr>
<tr><td>Price</td><td>${{.PriceDisplay}}</td></tr>
<tr><td>Lead time</td><td>{{.LeadTime}}</td></tr>
<tr><td>Notes</td><td>{{.NotesDisplay}}</td></tr>
</table>
<p>Submitted at {{.SubmittedAtDisplay}}.</p>`))

var vendorConfirmationTmpl = template.Must(template.New("vendor_confirmation").Parse(`<h2>Quote submitted</h2>
<p>Your quote <strong>{{.QuoteNumber}}</strong> for part <strong>{{.PartNumber}}</strong> was recorded.</p>
<table>
<tr><td>Price</td><td>${{.PriceDisplay}}</td></tr>
<tr><td>Lead time</td><td>{{.LeadTime}}</td></tr>
<tr><td>Notes</td><td>{{.NotesDisplay}}</td></tr>
</table>
<p>The purchasing team has been notified.</p>`))

type renderData struct {
	QuoteMailData
	PriceDisplay       string
	NotesDisplay       string
	SubmittedAtDisplay string
}

func newRenderData(d QuoteMailData) renderData {
	notes := "None"
	if d.Notes != nil && strings.TrimSpace(*d.Notes) != "" {
		notes = *d.Notes
	}
	return renderData{
		QuoteMailData:      d,
		PriceDisplay:       d.Price.StringFixed(2),
		NotesDisplay:       notes,
		SubmittedAtDisplay: d.SubmittedAt.UTC().Format(time.RFC1123),
	}
}

// BuyerSummary renders the purchasing-team notification for a new quote.
func BuyerSummary(d QuoteMailData) (subject, html string, err error) {
	subject = fmt.Sprintf("New Quote Received: %s (%s)", d.PartNumber, d.QuoteNumber)
	var sb strings.Builder
	if err := buyerSummaryTmpl.Execute(&sb, newRenderData(d)); err != nil {
		return "", "", fmt.Errorf("render buyer summary: %w", err)
	}
	return subject, sb.String(), nil
}

// VendorConfirmation renders the submitter's confirmation message.
func VendorConfirmation(d QuoteMailData) (subject, html string, err error) {
	subject = fmt.Sprintf("Quote %s Submitted", d.QuoteNumber)
	var sb strings.Builder
	if err := vendorConfirmationTmpl.Execute(&sb, newRenderData(d)); err != nil {
		return "", "", fmt.Errorf("render vendor confirmation: %w", err)
	}
	return subject, sb.String(), nil
}
