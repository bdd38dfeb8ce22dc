package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	config "github.com/lumenedu/studyhub/configs"
	"github.com/lumenedu/studyhub/internal/core/ports"
)

// EmailService implements the EmailService interface
type EmailService struct {
	config    *config.EmailConfig
	logger    *logrus.Logger
	client    *sendgrid.Client
	templates map[string]*template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig, logger *logrus.Logger) (ports.EmailService, error) {
	client := sendgrid.NewSendClient(cfg.SendGridAPIKey)

	// Load email templates
	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	return &EmailService{
		config:    cfg,
		logger:    logger,
		client:    client,
		templates: templates,
	}, nil
}

// loadTemplates loads all email templates from disk
func loadTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	templateDir := "templates/email"

	templateFiles := []string{
		"confirmation.html",
		"password_reset.html",
		"two_factor.html",
	}

	for _, file := range templateFiles {
		name := file[:len(file)-len(filepath.Ext(file))]

		tmpl, err := template.ParseFiles(filepath.Join(templateDir, file))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
		}

		templates[name] = tmpl
	}

	return templates, nil
}

// sendEmail sends an email using SendGrid
func (e *EmailService) sendEmail(to, subject, htmlContent string) error {
	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, "", htmlContent)

	response, err := e.client.Send(message)
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
			"error":   err,
		}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"to":          to,
		"subject":     subject,
		"status_code": response.StatusCode,
	}).Info("Email sent successfully")

	return nil
}

// renderTemplate renders an email template with the provided data
func (e *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := e.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

// ConfirmationEmailData holds data for the email confirmation template
type ConfirmationEmailData struct {
	CompanyName     string
	ConfirmationURL string
}

// PasswordResetEmailData holds data for the password reset template
type PasswordResetEmailData struct {
	CompanyName string
	ResetURL    string
}

// TwoFactorEmailData holds data for the two-factor code template
type TwoFactorEmailData struct {
	CompanyName string
	Code        string
}

// SendConfirmationEmail sends an email address confirmation link
func (e *EmailService) SendConfirmationEmail(ctx context.Context, email, token string) error {
	data := ConfirmationEmailData{
		CompanyName:     e.config.CompanyName,
		ConfirmationURL: fmt.Sprintf("%s/auth/email-confirmation?token=%s", e.config.BaseURL, token),
	}

	htmlContent, err := e.renderTemplate("confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render confirmation email template: %w", err)
	}

	subject := fmt.Sprintf("Confirm Your Email Address - %s", e.config.CompanyName)

	return e.sendEmail(email, subject, htmlContent)
}

// SendPasswordResetEmail sends a password reset link
func (e *EmailService) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	data := PasswordResetEmailData{
		CompanyName: e.config.CompanyName,
		ResetURL:    fmt.Sprintf("%s/auth/password-recovery/new/%s", e.config.BaseURL, token),
	}

	htmlContent, err := e.renderTemplate("password_reset", data)
	if err != nil {
		return fmt.Errorf("failed to render password reset email template: %w", err)
	}

	subject := fmt.Sprintf("Reset Your Password - %s", e.config.CompanyName)

	return e.sendEmail(email, subject, htmlContent)
}

// SendTwoFactorEmail sends a login verification code. The code goes in the
// message body directly, there is no link to click.
func (e *EmailService) SendTwoFactorEmail(ctx context.Context, email, code string) error {
	data := TwoFactorEmailData{
		CompanyName: e.config.CompanyName,
		Code:        code,
	}

	htmlContent, err := e.renderTemplate("two_factor", data)
	if err != nil {
		return fmt.Errorf("failed to render two-factor email template: %w", err)
	}

	subject := fmt.Sprintf("Your Login Code - %s", e.config.CompanyName)

	return e.sendEmail(email, subject, htmlContent)
}
