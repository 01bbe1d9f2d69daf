package service

import (
	"context"
	"errors"

	"lokalhunt/internal/domain"
	"lokalhunt/internal/models"
)

// ErrNoDeviceToken is returned by the direct-push operations when no
// addressable recipient exists.
var ErrNoDeviceToken = errors.New("no device token available")

// ErrPushDisabled is returned when the push channel is not configured.
var ErrPushDisabled = errors.New("push delivery is disabled")

// SendDirect pushes a raw title/body to one user without template rendering
// or gating, persisting the in-app record alongside. Used by the
// administrative push endpoints.
func (s *DispatchService) SendDirect(ctx context.Context, userID uint, title, body string, data map[string]interface{}) (*SendResult, error) {
	if s.channel == nil {
		return nil, ErrPushDisabled
	}
	token, err := s.users.DeviceToken(userID)
	if err != nil || token == "" {
		return nil, ErrNoDeviceToken
	}

	notifType := directType(data)
	payload := stringifyAll(data)
	payload["type"] = string(notifType)

	result, err := s.channel.Send(ctx, token, title, body, payload)
	if err != nil {
		return nil, err
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: body,
		Data:    marshalData(data),
	}
	if err := s.records.Create(n); err != nil {
		return nil, err
	}
	if s.feed != nil {
		s.feed.BroadcastToUser(userID, map[string]interface{}{"type": "notification", "notification": n})
	}
	return result, nil
}

// SendDirectToMany pushes a raw title/body to every given user that has a
// device token, via one multicast call, then persists the in-app records for
// the addressed users.
func (s *DispatchService) SendDirectToMany(ctx context.Context, userIDs []uint, title, body string, data map[string]interface{}) (*MulticastResult, error) {
	if s.channel == nil {
		return nil, ErrPushDisabled
	}
	users, err := s.users.ListWithDeviceTokens(userIDs)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNoDeviceToken
	}

	tokens := make([]string, len(users))
	for i, u := range users {
		tokens[i] = u.DeviceToken
	}

	notifType := directType(data)
	payload := stringifyAll(data)
	payload["type"] = string(notifType)

	result, err := s.channel.SendMulticast(ctx, tokens, title, body, payload)
	if err != nil {
		return nil, err
	}

	records := make([]models.Notification, len(users))
	for i, u := range users {
		records[i] = models.Notification{
			UserID:  u.ID,
			Type:    notifType,
			Title:   title,
			Message: body,
			Data:    marshalData(data),
		}
	}
	if err := s.records.CreateMany(records); err != nil {
		return nil, err
	}
	return result, nil
}

// directType reads an explicit type from the caller's data payload; untyped
// direct pushes are recorded as SYSTEM.
func directType(data map[string]interface{}) domain.NotificationType {
	if v, ok := data["type"].(string); ok && v != "" {
		return domain.NotificationType(v)
	}
	return domain.NotifSystem
}
