package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESMailer sends plain-text mail through Amazon SES.
type SESMailer struct {
	client *ses.Client
	from   string
}

func NewSESMailer(cfg aws.Config, from string) *SESMailer {
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}
}

func (m *SESMailer) send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.from),
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// SendResetEmail mails a password reset code.
func (m *SESMailer) SendResetEmail(ctx context.Context, to, code string) error {
	subject := "Password Reset Code"
	body := fmt.Sprintf("Your password reset code is: %s\n\nUse it within 15 minutes to set a new password for your calorie tracker account.", code)
	return m.send(ctx, to, subject, body)
}
