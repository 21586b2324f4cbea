package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"toolshed-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	enabled   bool
}

func NewEmailService(apiKey, fromEmail, fromName string, enabled bool) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   enabled,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText string) error {
	if !s.enabled {
		logger.Debug("Email sending disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "Send", err, "to", to)

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBorrowRequestNotification(ctx context.Context, toEmail, toName, borrowerName, toolName string) error {
	subject := fmt.Sprintf("New Borrow Request: %s", toolName)
	body := fmt.Sprintf("Hello %s,\n\n%s wants to borrow your %s. Open the app to approve or decline the request.\n\nThe Toolshed Team", toName, borrowerName, toolName)
	return s.send(ctx, toEmail, toName, subject, body)
}

func (s *emailService) SendRequestApprovedNotification(ctx context.Context, toEmail, toName, lenderName, toolName string) error {
	subject := fmt.Sprintf("Request Approved: %s", toolName)
	body := fmt.Sprintf("Hello %s,\n\n%s approved your request to borrow %s. Arrange a pickup and confirm it in the app.\n\nThe Toolshed Team", toName, lenderName, toolName)
	return s.send(ctx, toEmail, toName, subject, body)
}

func (s *emailService) SendRequestDeclinedNotification(ctx context.Context, toEmail, toName, lenderName, toolName string) error {
	subject := fmt.Sprintf("Request Declined: %s", toolName)
	body := fmt.Sprintf("Hello %s,\n\n%s declined your request to borrow %s.\n\nThe Toolshed Team", toName, lenderName, toolName)
	return s.send(ctx, toEmail, toName, subject, body)
}

func (s *emailService) SendRequestCancelledNotification(ctx context.Context, toEmail, toName, borrowerName, toolName string) error {
	subject := fmt.Sprintf("Request Cancelled: %s", toolName)
	body := fmt.Sprintf("Hello %s,\n\n%s cancelled their request for %s.\n\nThe Toolshed Team", toName, borrowerName, toolName)
	return s.send(ctx, toEmail, toName, subject, body)
}

func (s *emailService) SendLoanReturnedNotification(ctx context.Context, toEmail, toName, toolName string) error {
	subject := fmt.Sprintf("Tool Returned: %s", toolName)
	body := fmt.Sprintf("Hello %s,\n\nYour %s has been returned and is available to lend again.\n\nThe Toolshed Team", toName, toolName)
	return s.send(ctx, toEmail, toName, subject, body)
}

func (s *emailService) SendWaitlistPromotedNotification(ctx context.Context, toEmail, toName, toolName string) error {
	subject := fmt.Sprintf("You're Next in Line: %s", toolName)
	body := fmt.Sprintf("Hello %s,\n\n%s is available again. Your waitlisted request has moved to the front and is waiting for the lender's approval.\n\nThe Toolshed Team", toName, toolName)
	return s.send(ctx, toEmail, toName, subject, body)
}

func (s *emailService) SendPendingRequestReminder(ctx context.Context, toEmail, toName, borrowerName, toolName string, daysPending int) error {
	subject := fmt.Sprintf("Reminder: %s is waiting on you", borrowerName)
	body := fmt.Sprintf("Hello %s,\n\n%s asked to borrow your %s %d days ago and is still waiting for an answer.\n\nThe Toolshed Team", toName, borrowerName, toolName, daysPending)
	return s.send(ctx, toEmail, toName, subject, body)
}

func (s *emailService) SendLongRunningLoanReminder(ctx context.Context, toEmail, toName, toolName string, daysOut int) error {
	subject := fmt.Sprintf("Friendly Reminder: %s", toolName)
	body := fmt.Sprintf("Hello %s,\n\nYou have had %s on loan for %d days. If you are done with it, arrange a return with the lender.\n\nThe Toolshed Team", toName, toolName, daysOut)
	return s.send(ctx, toEmail, toName, subject, body)
}
