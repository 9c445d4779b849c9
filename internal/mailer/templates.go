package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const brand = "AgendaFácil"

var verificationTmpl = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>{{.Brand}}</h1>
  <h2>Hello, {{.Name}}!</h2>
  <p>{{.Intro}}</p>
  <div style="font-size: 32px; font-weight: bold; letter-spacing: 8px; font-family: 'Courier New', monospace;">{{.Code}}</div>
  <p><strong>Important:</strong> this code expires in 15 minutes.</p>
</div>`))

var appointmentTmpl = template.Must(template.New("appointment").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>{{.Business}}</h1>
  <p>Dear {{.Client}},</p>
  <p>{{.Intro}}</p>
  <ul>
    <li><strong>Service:</strong> {{.Service}}</li>
    <li><strong>When:</strong> {{.When}}</li>
    <li><strong>Duration:</strong> {{.Duration}} min</li>
    <li><strong>Price:</strong> {{.Price}}</li>
  </ul>
</div>`))

func VerificationEmail(to, name, code string, resend bool) Message {
	subject := "Confirm your email - " + brand
	intro := "Thanks for signing up! Use the code below to confirm your account:"
	if resend {
		subject = "New verification code - " + brand
		intro = "Here is your new verification code. Previous codes no longer work:"
	}

	return Message{
		To:      to,
		Subject: subject,
		HTML: render(verificationTmpl, map[string]string{
			"Brand": brand,
			"Name":  name,
			"Intro": intro,
			"Code":  code,
		}),
		Text: fmt.Sprintf("Hello, %s! Your verification code is %s. It expires in 15 minutes.", name, code),
	}
}

type AppointmentDetails struct {
	To       string
	Client   string
	Business string
	Service  string
	When     time.Time
	Duration int
	Price    float64
}

func AppointmentReceivedEmail(d AppointmentDetails) Message {
	return appointmentMessage(d, "Appointment request received - "+d.Business,
		"We received your booking. The provider will confirm it shortly.")
}

func AppointmentReminderEmail(d AppointmentDetails) Message {
	return appointmentMessage(d, "Reminder: upcoming appointment - "+d.Business,
		"This is a reminder of your upcoming appointment.")
}

func appointmentMessage(d AppointmentDetails, subject, intro string) Message {
	when := d.When.Format("2006-01-02 15:04")
	return Message{
		To:      d.To,
		Subject: subject,
		HTML: render(appointmentTmpl, map[string]any{
			"Business": d.Business,
			"Client":   d.Client,
			"Intro":    intro,
			"Service":  d.Service,
			"When":     when,
			"Duration": d.Duration,
			"Price":    fmt.Sprintf("%.2f", d.Price),
		}),
		Text: fmt.Sprintf("%s %s at %s (%d min).", intro, d.Service, when, d.Duration),
	}
}

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}
