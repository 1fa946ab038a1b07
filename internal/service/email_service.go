package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"aicademy/internal/models"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service whose send methods are no-ops.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendPasswordResetEmail sends a password reset email with a reset link
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password reset to %s", toEmail)
		return nil
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appBaseURL, resetToken)

	subject := "Reset Your AIcademy Password"
	textBody := fmt.Sprintf(`Hi %s,

We received a request to reset the password for your AIcademy account.

Click the link below to reset your password:
%s

This link will expire in 1 hour.

If you didn't request a password reset, you can safely ignore this email.

---
This is an automated email from AIcademy. Please do not reply.
`, toName, resetLink)

	htmlBody := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>We received a request to reset the password for your AIcademy account.</p>
<p><a href="%s">Reset your password</a></p>
<p>Or copy and paste this link into your browser:<br>%s</p>
<p><strong>This link will expire in 1 hour.</strong></p>
<p>If you didn't request a password reset, you can safely ignore this email.</p>
<p style="color:#666;font-size:12px;">This is an automated email from AIcademy. Please do not reply.</p>
</body></html>`, toName, resetLink, resetLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendWeeklyProgressEmail sends a parent a digest of each kid's progress
func (s *EmailService) SendWeeklyProgressEmail(ctx context.Context, toEmail, toName string, kids []models.KidProgress) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): weekly progress to %s", toEmail)
		return nil
	}

	subject := "Your AIcademy Weekly Progress Report"

	var text strings.Builder
	var html strings.Builder

	fmt.Fprintf(&text, "Hi %s,\n\nHere's what your kids have been learning this week:\n\n", toName)
	fmt.Fprintf(&html, "<html><body><p>Hi %s,</p><p>Here's what your kids have been learning this week:</p><ul>", toName)

	for _, kp := range kids {
		fmt.Fprintf(&text, "- %s: %d sessions, %d minutes this week, average score %.1f\n",
			kp.Kid.Name, kp.Summary.TotalSessions, kp.Summary.RecentTimeMinutes, kp.Summary.AverageScore)
		fmt.Fprintf(&html, "<li><strong>%s</strong>: %d sessions, %d minutes this week, average score %.1f</li>",
			kp.Kid.Name, kp.Summary.TotalSessions, kp.Summary.RecentTimeMinutes, kp.Summary.AverageScore)
	}

	fmt.Fprintf(&text, "\nSee the full dashboard: %s\n\n---\nThis is an automated email from AIcademy. Please do not reply.\n", s.appBaseURL)
	fmt.Fprintf(&html, "</ul><p><a href=\"%s\">See the full dashboard</a></p><p style=\"color:#666;font-size:12px;\">This is an automated email from AIcademy. Please do not reply.</p></body></html>", s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, html.String(), text.String())
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
