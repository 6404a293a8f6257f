package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSAPI is the subset of the SNS client used here.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SNSClient struct {
	client SNSAPI
}

func NewSNSClient(cfg awssdk.Config) *SNSClient {
	return &SNSClient{client: sns.NewFromConfig(cfg)}
}

func NewSNSClientFromAPI(api SNSAPI) *SNSClient {
	return &SNSClient{client: api}
}

// Publish sends message to the topic and returns the message id.
func (s *SNSClient) Publish(ctx context.Context, topicARN, subject, message string) (string, error) {
	out, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(topicARN),
		Subject:  awssdk.String(subject),
		Message:  awssdk.String(message),
	})
	if err != nil {
		return "", err
	}
	return awssdk.ToString(out.MessageId), nil
}
