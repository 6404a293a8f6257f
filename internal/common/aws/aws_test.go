package aws

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snsStub struct {
	input *sns.PublishInput
	err   error
}

func (s *snsStub) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	s.input = in
	if s.err != nil {
		return nil, s.err
	}
	return &sns.PublishOutput{MessageId: awssdk.String("msg-1")}, nil
}

type sesStub struct {
	input *ses.SendEmailInput
}

func (s *sesStub) SendEmail(ctx context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	s.input = in
	return &ses.SendEmailOutput{MessageId: awssdk.String("mail-1")}, nil
}

func TestSNSPublish(t *testing.T) {
	stub := &snsStub{}
	id, err := NewSNSClientFromAPI(stub).Publish(context.Background(), "arn:aws:sns:ap-south-1:1:alerts", "Stockout risk", "body")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Equal(t, "arn:aws:sns:ap-south-1:1:alerts", awssdk.ToString(stub.input.TopicArn))
	assert.Equal(t, "Stockout risk", awssdk.ToString(stub.input.Subject))

	stub.err = errors.New("throttled")
	_, err = NewSNSClientFromAPI(stub).Publish(context.Background(), "arn", "s", "m")
	assert.EqualError(t, err, "throttled")
}

func TestSESSendEmail(t *testing.T) {
	stub := &sesStub{}
	id, err := NewSESClientFromAPI(stub).SendEmail(context.Background(), "ops@example.com", []string{"a@example.com"}, "subj", "text")
	require.NoError(t, err)
	assert.Equal(t, "mail-1", id)
	assert.Equal(t, []string{"a@example.com"}, stub.input.Destination.ToAddresses)
	assert.Equal(t, "text", awssdk.ToString(stub.input.Message.Body.Text.Data))
}
