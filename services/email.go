package services

import (
	"fmt"
	"log"
	"strings"

	"clinic_agenda_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail delivers an email through Resend. In test mode the message is
// logged to the console instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email sent to %s (id: %s)", strings.Join(email.To, ", "), sent.Id)
	return nil
}

// SendEmailAsync sends an email in the background, logging failures
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Create a copy of the email to avoid race conditions
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func() {
		if err := SendEmail(cfg, emailCopy); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}()
}

func logEmailToConsole(email *Email) {
	log.Printf("---- EMAIL (test mode, not sent) ----")
	log.Printf("To: %s", strings.Join(email.To, ", "))
	log.Printf("Subject: %s", email.Subject)
	if email.TextBody != "" {
		log.Printf("Body:\n%s", email.TextBody)
	} else {
		log.Printf("Body (HTML):\n%s", email.HTMLBody)
	}
	log.Printf("-------------------------------------")
}

// AppointmentEmailData carries the fields shared by appointment emails
type AppointmentEmailData struct {
	PatientName      string
	ProfessionalName string
	ClinicName       string
	ServiceType      string
	Date             string // "Monday, January 2, 2006"
	Time             string // "3:04 PM"
	Duration         int    // minutes
	Reason           string // cancellation reason, when applicable
}

func appointmentEmailBody(intro string, data AppointmentEmailData) (html, text string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n%s\n\n", data.PatientName, intro)
	fmt.Fprintf(&b, "Service: %s\n", data.ServiceType)
	fmt.Fprintf(&b, "Professional: %s\n", data.ProfessionalName)
	fmt.Fprintf(&b, "Date: %s\n", data.Date)
	fmt.Fprintf(&b, "Time: %s\n", data.Time)
	if data.Duration > 0 {
		fmt.Fprintf(&b, "Duration: %d minutes\n", data.Duration)
	}
	if data.Reason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", data.Reason)
	}
	fmt.Fprintf(&b, "\n%s\n", data.ClinicName)
	text = b.String()

	html = "<p>" + strings.ReplaceAll(text, "\n", "<br>") + "</p>"
	return html, text
}

// BuildAppointmentConfirmedEmail creates the confirmation notice for a patient
func BuildAppointmentConfirmedEmail(patientEmail string, data AppointmentEmailData) *Email {
	html, text := appointmentEmailBody("Your appointment has been confirmed.", data)
	return &Email{
		To:       []string{patientEmail},
		Subject:  fmt.Sprintf("Appointment confirmed - %s", data.ClinicName),
		HTMLBody: html,
		TextBody: text,
	}
}

// BuildAppointmentCancelledEmail creates the cancellation notice for a patient
func BuildAppointmentCancelledEmail(patientEmail string, data AppointmentEmailData) *Email {
	html, text := appointmentEmailBody("Your appointment has been cancelled.", data)
	return &Email{
		To:       []string{patientEmail},
		Subject:  fmt.Sprintf("Appointment cancelled - %s", data.ClinicName),
		HTMLBody: html,
		TextBody: text,
	}
}

// BuildAppointmentReminderEmail creates the day-before reminder for a patient
func BuildAppointmentReminderEmail(patientEmail string, data AppointmentEmailData) *Email {
	html, text := appointmentEmailBody("This is a reminder of your upcoming appointment.", data)
	return &Email{
		To:       []string{patientEmail},
		Subject:  fmt.Sprintf("Appointment reminder - %s", data.ClinicName),
		HTMLBody: html,
		TextBody: text,
	}
}
