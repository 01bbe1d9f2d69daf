package service

import (
	"context"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// SendResult is the outcome of a single-recipient push send.
type SendResult struct {
	MessageID string    `json:"message_id"`
	Timestamp time.Time `json:"timestamp"`
}

// MulticastResult aggregates per-token outcomes of a multi-recipient send.
type MulticastResult struct {
	SuccessCount int             `json:"success_count"`
	FailureCount int             `json:"failure_count"`
	Timestamp    time.Time       `json:"timestamp"`
	Responses    []TokenResponse `json:"responses,omitempty"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Channel is the external push transport, addressed by per-user device
// tokens. Data payload values must already be strings (FCM wire format).
type Channel interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) (*SendResult, error)
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (*MulticastResult, error)
}

// FCMService delivers push notifications via Firebase Cloud Messaging.
type FCMService struct {
	client *messaging.Client
	log    *zap.Logger
}

// NewFCMService creates the FCM channel. Returns nil if Firebase is not
// configured, in which case push delivery is disabled process-wide.
func NewFCMService(serviceAccountPath string, log *zap.Logger) *FCMService {
	if serviceAccountPath == "" {
		return nil
	}
	ctx := context.Background()
	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Error("failed to init Firebase app", zap.Error(err))
		return nil
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		log.Error("failed to get Messaging client", zap.Error(err))
		return nil
	}
	return &FCMService{client: client, log: log}
}

func (s *FCMService) Send(ctx context.Context, token, title, body string, data map[string]string) (*SendResult, error) {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:    data,
		Android: androidConfig(title, body),
		APNS:    apnsConfig(title, body),
	}
	id, err := s.client.Send(ctx, msg)
	if err != nil {
		s.log.Error("push send failed",
			zap.String("title", title),
			zap.Error(err))
		return nil, err
	}
	return &SendResult{MessageID: id, Timestamp: time.Now()}, nil
}

func (s *FCMService) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (*MulticastResult, error) {
	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:    data,
		Android: androidConfig(title, body),
		APNS:    apnsConfig(title, body),
	}
	br, err := s.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		s.log.Error("multicast push send failed",
			zap.Int("tokens", len(tokens)),
			zap.Error(err))
		return nil, err
	}
	result := &MulticastResult{
		SuccessCount: br.SuccessCount,
		FailureCount: br.FailureCount,
		Timestamp:    time.Now(),
		Responses:    make([]TokenResponse, 0, len(br.Responses)),
	}
	for i, resp := range br.Responses {
		tr := TokenResponse{Token: tokens[i]}
		if resp.Success {
			tr.MessageID = resp.MessageID
		} else if resp.Error != nil {
			tr.Error = resp.Error.Error()
		}
		result.Responses = append(result.Responses, tr)
	}
	return result, nil
}

func androidConfig(title, body string) *messaging.AndroidConfig {
	ttl := time.Hour
	return &messaging.AndroidConfig{
		Priority:    "high",
		TTL:         &ttl,
		CollapseKey: "lokalhunt_notification",
		Notification: &messaging.AndroidNotification{
			Title:     title,
			Body:      body,
			Icon:      "ic_stat_notification",
			Color:     "#4CAF50",
			Sound:     "default",
			ChannelID: "default",
		},
	}
}

func apnsConfig(title, body string) *messaging.APNSConfig {
	badge := 1
	return &messaging.APNSConfig{
		Payload: &messaging.APNSPayload{
			Aps: &messaging.Aps{
				Alert: &messaging.ApsAlert{
					Title: title,
					Body:  body,
				},
				Badge: &badge,
				Sound: "default",
			},
		},
	}
}
