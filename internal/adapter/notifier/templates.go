package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var funcs = template.FuncMap{
	"date":  func(t time.Time) string { return t.Format("Mon, 02 Jan 2006 15:04") },
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"deref": func(v any) any {
		switch p := v.(type) {
		case *float64:
			if p != nil {
				return *p
			}
			return 0.0
		case *string:
			if p != nil {
				return *p
			}
			return ""
		}
		return v
	},
}

const layoutOpen = `<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;color:#333">`
const layoutClose = `<p style="color:#888;font-size:12px">Vehicle Rental</p></div>`

var templates = template.Must(template.New("emails").Funcs(funcs).Parse(`
{{define "welcome"}}` + layoutOpen + `
<h2>Welcome, {{.FirstName}}!</h2>
<p>Your Vehicle Rental account for {{.Email}} is ready. Browse the fleet and book your first ride.</p>
` + layoutClose + `{{end}}

{{define "booking_confirmed"}}` + layoutOpen + `
<h2>Booking Confirmed</h2>
<p>Hi {{.User.FirstName}}, your booking is confirmed.</p>
<table>
<tr><td>Booking</td><td>{{.ID}}</td></tr>
<tr><td>Vehicle</td><td>{{.Vehicle.Spec.Manufacturer}} {{.Vehicle.Spec.Model}} ({{.Vehicle.Spec.Year}})</td></tr>
<tr><td>Pickup</td><td>{{date .BookingDate}}</td></tr>
<tr><td>Return</td><td>{{date .ReturnDate}}</td></tr>
<tr><td>Total</td><td>{{money .TotalAmount}}</td></tr>
<tr><td>Status</td><td>{{.Status}}</td></tr>
</table>
` + layoutClose + `{{end}}

{{define "booking_cancelled"}}` + layoutOpen + `
<h2>Booking Cancelled</h2>
<p>Hi {{.User.FirstName}}, your booking for the {{.Vehicle.Spec.Manufacturer}} {{.Vehicle.Spec.Model}} has been cancelled.</p>
<p>Reason: {{deref .CancellationReason}}</p>
<p>Refund: {{money (deref .RefundAmount)}}</p>
` + layoutClose + `{{end}}

{{define "password_reset"}}` + layoutOpen + `
<h2>Reset your password</h2>
<p>Hi {{.User.FirstName}}, use the link below to choose a new password. It expires in 15 minutes.</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>If you did not ask for this, ignore this email.</p>
` + layoutClose + `{{end}}

{{define "ticket_reply"}}` + layoutOpen + `
<h2>New reply on "{{.Ticket.Subject}}"</h2>
<p>{{.AdminName}} replied:</p>
<blockquote>{{.Reply.Message}}</blockquote>
` + layoutClose + `{{end}}

{{define "ticket_status"}}` + layoutOpen + `
<h2>Ticket status updated</h2>
<p>Hi {{.Owner.FirstName}}, your ticket "{{.Subject}}" is now <strong>{{.Status}}</strong>.</p>
` + layoutClose + `{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
