package integration

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// sesAPI is the part of the SES client the mailer uses
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Mail is a plain-text email
type Mail struct {
	To      []string
	Subject string
	Body    string
}

// SESMailer sends mail through Amazon SES
type SESMailer struct {
	client sesAPI
	from   string
}

// NewSESMailer creates a mailer from an AWS config
func NewSESMailer(awsCfg aws.Config, from string) (*SESMailer, error) {
	if from == "" {
		return nil, fmt.Errorf("%w: mail sender is empty", ErrNotConfigured)
	}
	return &SESMailer{client: ses.NewFromConfig(awsCfg), from: from}, nil
}

// Send delivers m and returns the SES message id
func (m *SESMailer) Send(ctx context.Context, mail Mail) (string, error) {
	if len(mail.To) == 0 {
		return "", fmt.Errorf("%w: mail has no recipients", ErrRequestFailed)
	}
	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(m.from),
		Destination: &types.Destination{ToAddresses: mail.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(mail.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(mail.Body), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: ses: %v", ErrRequestFailed, err)
	}
	return aws.ToString(out.MessageId), nil
}
