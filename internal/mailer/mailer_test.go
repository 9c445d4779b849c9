package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestVerificationEmail(t *testing.T) {
	msg := VerificationEmail("ana@example.com", "Ana", "A1B2C3", false)

	require.Equal(t, "ana@example.com", msg.To)
	require.Contains(t, msg.Subject, "Confirm your email")
	require.Contains(t, msg.HTML, "A1B2C3")
	require.Contains(t, msg.Text, "A1B2C3")

	resend := VerificationEmail("ana@example.com", "Ana", "D4E5F6", true)
	require.Contains(t, resend.Subject, "New verification code")
}

func TestVerificationEmail_EscapesName(t *testing.T) {
	msg := VerificationEmail("x@example.com", "<script>", "A1B2C3", false)
	require.NotContains(t, msg.HTML, "<script>")
}

func TestAppointmentEmails(t *testing.T) {
	d := AppointmentDetails{
		To:       "client@example.com",
		Client:   "Bia",
		Business: "Studio Ana",
		Service:  "Haircut",
		When:     time.Date(2030, 5, 6, 14, 30, 0, 0, time.UTC),
		Duration: 45,
		Price:    80,
	}

	received := AppointmentReceivedEmail(d)
	require.Contains(t, received.HTML, "2030-05-06 14:30")
	require.Contains(t, received.HTML, "80.00")

	reminder := AppointmentReminderEmail(d)
	require.Contains(t, reminder.Subject, "Reminder")
}

func TestTextOfStripsTags(t *testing.T) {
	require.Equal(t, "hi there", textOf(Message{HTML: "<p>hi <b>there</b></p>"}))
	require.Equal(t, "plain", textOf(Message{HTML: "<p>x</p>", Text: "plain"}))
	require.NoError(t, LogSender{}.Send(context.Background(), Message{To: "a@b.c"}))
}
