package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// PushSender delivers one push notification to a device token.
type PushSender interface {
	SendPush(ctx context.Context, token, title, body string, data map[string]string) error
}

type FCMSender struct {
	client *messaging.Client
	logger *zap.Logger
}

// NewPushSender returns an FCM sender, or a logging no-op when client is nil.
func NewPushSender(client *messaging.Client, logger *zap.Logger) PushSender {
	if client == nil {
		return &LogPushSender{logger: logger}
	}
	return &FCMSender{client: client, logger: logger}
}

func (s *FCMSender) SendPush(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	id, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("fcm: failed to send message: %w", err)
	}
	s.logger.Debug("Push sent", zap.String("messageId", id))
	return nil
}

type LogPushSender struct {
	logger *zap.Logger
}

func (s *LogPushSender) SendPush(_ context.Context, _, title, _ string, _ map[string]string) error {
	s.logger.Info("Push skipped (no FCM client)", zap.String("title", title))
	return nil
}
