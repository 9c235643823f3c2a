package templates

import (
	"fmt"
	"html"
	"strings"
)

// RentalEmailData holds the values shown in rental notification emails
type RentalEmailData struct {
	RecipientName   string
	CounterpartName string
	VehicleName     string
	RentalType      string
	StartDate       string
	EndDate         string
	PickupLocation  string
	TotalAmount     string
	Status          string
	Reason          string
	ManageURL       string
}

// RenderRentalRequestedEmail generates the HTML sent to a vehicle owner when
// a renter books one of their vehicles
func RenderRentalRequestedEmail(d RentalEmailData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Hi %s,</h2>", html.EscapeString(d.RecipientName))
	fmt.Fprintf(&b, "<p><strong>%s</strong> has requested to rent your <strong>%s</strong>. The request is waiting for your confirmation.</p>",
		html.EscapeString(d.CounterpartName), html.EscapeString(d.VehicleName))
	b.WriteString(detailsTable(d))
	if d.ManageURL != "" {
		fmt.Fprintf(&b, `<a class="cta-button" href="%s">Review request</a>`, html.EscapeString(d.ManageURL))
	}
	return renderLayout("New Rental Request", b.String())
}

// RenderRentalStatusEmail generates the HTML sent to a renter when their
// rental changes status
func RenderRentalStatusEmail(d RentalEmailData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Hi %s,</h2>", html.EscapeString(d.RecipientName))
	fmt.Fprintf(&b, "<p>Your rental of the <strong>%s</strong> is now <strong>%s</strong>.</p>",
		html.EscapeString(d.VehicleName), html.EscapeString(d.Status))
	if d.Reason != "" {
		fmt.Fprintf(&b, "<p>Reason: %s</p>", html.EscapeString(d.Reason))
	}
	b.WriteString(detailsTable(d))
	if d.ManageURL != "" {
		fmt.Fprintf(&b, `<a class="cta-button" href="%s">View rental</a>`, html.EscapeString(d.ManageURL))
	}
	return renderLayout(html.EscapeString("Rental "+capitalize(d.Status)), b.String())
}

func detailsTable(d RentalEmailData) string {
	rows := [][2]string{
		{"Rental type", d.RentalType},
		{"Start", d.StartDate},
		{"End", d.EndDate},
		{"Pickup", d.PickupLocation},
		{"Total", d.TotalAmount},
	}
	var b strings.Builder
	b.WriteString(`<table class="details">`)
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(&b, `<tr><td class="label">%s</td><td>%s</td></tr>`, r[0], html.EscapeString(r[1]))
	}
	b.WriteString("</table>")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
