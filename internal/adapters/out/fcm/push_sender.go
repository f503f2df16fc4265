// Package fcm delivers push notifications through Firebase Cloud Messaging.
package fcm

import (
	"context"
	"errors"
	"fmt"

	"orderflow/internal/core/ports"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var ErrEmptyToken = errors.New("push token is empty")

// messagingClient is the subset of *messaging.Client the sender needs.
type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushSender implements ports.PushSender. It is safe for concurrent use.
type PushSender struct {
	client messagingClient
}

func NewPushSender(client messagingClient) *PushSender {
	return &PushSender{client: client}
}

// NewFromCredentials initialises a Firebase app from a service account file and returns
// a sender backed by its messaging client. An empty credentialsFile falls back to
// application default credentials.
func NewFromCredentials(ctx context.Context, projectID, credentialsFile string) (*PushSender, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialising firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialising firebase messaging client: %w", err)
	}

	return NewPushSender(client), nil
}

// Send returns nil once FCM accepted the message and assigned it an id.
func (s *PushSender) Send(ctx context.Context, msg ports.PushMessage) error {
	if msg.Token == "" {
		return ErrEmptyToken
	}

	messageID, err := s.client.Send(ctx, &messaging.Message{
		Token: msg.Token,
		Data:  msg.Data,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	})
	if err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	if messageID == "" {
		return errors.New("fcm send: provider returned no message id")
	}

	return nil
}
