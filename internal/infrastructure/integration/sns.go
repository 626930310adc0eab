package integration

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// snsAPI is the part of the SNS client the publisher uses
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes notifications to one topic
type SNSPublisher struct {
	client   snsAPI
	topicARN string
}

// NewSNSPublisher creates a publisher from an AWS config
func NewSNSPublisher(awsCfg aws.Config, topicARN string) (*SNSPublisher, error) {
	if topicARN == "" {
		return nil, fmt.Errorf("%w: sns topic arn is empty", ErrNotConfigured)
	}
	return &SNSPublisher{client: sns.NewFromConfig(awsCfg), topicARN: topicARN}, nil
}

// Publish sends message with subject and returns the SNS message id.
// SNS limits subjects to 100 characters; longer ones are cut.
func (p *SNSPublisher) Publish(ctx context.Context, subject, message string) (string, error) {
	input := &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(message),
	}
	if subject != "" {
		input.Subject = aws.String(truncateRunes(subject, 100))
	}
	out, err := p.client.Publish(ctx, input)
	if err != nil {
		return "", fmt.Errorf("%w: sns: %v", ErrRequestFailed, err)
	}
	return aws.ToString(out.MessageId), nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
