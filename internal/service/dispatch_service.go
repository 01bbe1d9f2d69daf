package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"lokalhunt/internal/domain"
	"lokalhunt/internal/models"
	"lokalhunt/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Soft-block reasons. The in-app record is already persisted when any of
// these is returned; only push delivery was suppressed.
const (
	ReasonBlockedByPreferences = "blocked_by_preferences"
	ReasonRateLimitExceeded    = "rate_limit_exceeded"
	ReasonNoDeviceToken        = "no_device_token"
	ReasonPushDisabled         = "push_disabled"
)

// DispatchResult is the structured outcome of a single dispatch.
type DispatchResult struct {
	Success      bool                 `json:"success"`
	Reason       string               `json:"reason,omitempty"`
	MessageID    string               `json:"message_id,omitempty"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// MultiDispatchResult aggregates per-recipient dispatch outcomes.
type MultiDispatchResult struct {
	SuccessCount int               `json:"success_count"`
	FailureCount int               `json:"failure_count"`
	Results      []*DispatchResult `json:"results,omitempty"`
}

// Feed receives every persisted in-app record for live delivery to connected
// clients. Implemented by the websocket hub.
type Feed interface {
	BroadcastToUser(userID uint, payload interface{})
}

// DispatchService orchestrates one notification dispatch: render the
// template, persist the in-app record, gate on preferences and rate caps,
// resolve the device token and push. The in-app record is the durable half
// of a dispatch; push is a best-effort accelerant and its suppression or
// failure never undoes the record.
type DispatchService struct {
	renderer *TemplateRenderer
	records  *repository.NotificationRepository
	users    *repository.UserRepository
	gate     *PreferenceGate
	limiter  *RateLimiter
	channel  Channel
	feed     Feed
	log      *zap.Logger
}

func NewDispatchService(
	renderer *TemplateRenderer,
	records *repository.NotificationRepository,
	users *repository.UserRepository,
	gate *PreferenceGate,
	limiter *RateLimiter,
	channel Channel,
	feed Feed,
	log *zap.Logger,
) *DispatchService {
	return &DispatchService{
		renderer: renderer,
		records:  records,
		users:    users,
		gate:     gate,
		limiter:  limiter,
		channel:  channel,
		feed:     feed,
		log:      log,
	}
}

// Dispatch notifies one user of one event. Template failure aborts the whole
// dispatch; all later gate denials return a structured soft-block with the
// record already persisted. A channel send error is the one failure that is
// surfaced to the caller, because the push genuinely did not go out even
// though the in-app record exists.
func (s *DispatchService) Dispatch(ctx context.Context, userID uint, notifType domain.NotificationType, vars map[string]interface{}) (*DispatchResult, error) {
	msg, err := s.renderer.Render(notifType, vars)
	if err != nil {
		return nil, err
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   msg.Title,
		Message: msg.Body,
		Data:    marshalData(vars),
	}
	if err := s.records.Create(n); err != nil {
		return nil, err
	}
	if s.feed != nil {
		s.feed.BroadcastToUser(userID, map[string]interface{}{"type": "notification", "notification": n})
	}

	if v := s.gate.CanSend(userID, notifType); !v.Allowed() {
		return &DispatchResult{Reason: ReasonBlockedByPreferences, Notification: n}, nil
	}
	if v := s.limiter.CheckLimit(userID, notifType); !v.Allowed() {
		return &DispatchResult{Reason: ReasonRateLimitExceeded, Notification: n}, nil
	}

	token, err := s.users.DeviceToken(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Warn("device token lookup failed",
			zap.Uint("user_id", userID), zap.Error(err))
	}
	if token == "" {
		return &DispatchResult{Reason: ReasonNoDeviceToken, Notification: n}, nil
	}
	if s.channel == nil {
		return &DispatchResult{Reason: ReasonPushDisabled, Notification: n}, nil
	}

	sent, err := s.channel.Send(ctx, token, msg.Title, msg.Body, s.pushData(userID, notifType, vars))
	if err != nil {
		return nil, err
	}
	s.limiter.RecordSend(userID, notifType)

	s.log.Info("notification dispatched",
		zap.Uint("user_id", userID),
		zap.String("type", string(notifType)),
		zap.String("message_id", sent.MessageID))
	return &DispatchResult{Success: true, MessageID: sent.MessageID, Notification: n}, nil
}

// DispatchToMany renders and dispatches per recipient, serially. Each
// recipient's outcome is independent: a soft-block or send failure for one
// user never affects the others.
func (s *DispatchService) DispatchToMany(ctx context.Context, userIDs []uint, notifType domain.NotificationType, vars map[string]interface{}) (*MultiDispatchResult, error) {
	out := &MultiDispatchResult{Results: make([]*DispatchResult, 0, len(userIDs))}
	for _, id := range userIDs {
		res, err := s.Dispatch(ctx, id, notifType, vars)
		if err != nil {
			if errors.Is(err, ErrTemplateNotFound) {
				// Fatal for every recipient: the template does not exist.
				return nil, err
			}
			s.log.Warn("dispatch failed for recipient",
				zap.Uint("user_id", id),
				zap.String("type", string(notifType)),
				zap.Error(err))
			out.FailureCount++
			out.Results = append(out.Results, &DispatchResult{Reason: err.Error()})
			continue
		}
		if res.Success {
			out.SuccessCount++
		} else {
			out.FailureCount++
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

// NotifyBranchAdmins fans a notification out to every branch admin
// responsible for a city.
func (s *DispatchService) NotifyBranchAdmins(ctx context.Context, city string, notifType domain.NotificationType, vars map[string]interface{}) (*MultiDispatchResult, error) {
	ids, err := s.users.ListBranchAdminIDs(city)
	if err != nil {
		return nil, err
	}
	return s.DispatchToMany(ctx, ids, notifType, vars)
}

// NotifyJobAlertMatches dispatches JOB_ALERT to every candidate whose
// preferred titles, locations or industries overlap the ad. The predicate is
// a plain attribute-overlap test, no ranking.
func (s *DispatchService) NotifyJobAlertMatches(ctx context.Context, ad *models.JobAd) (*MultiDispatchResult, error) {
	candidates, err := s.users.ListCandidates()
	if err != nil {
		return nil, err
	}
	var ids []uint
	for i := range candidates {
		if matchesJobAlert(&candidates[i], ad) {
			ids = append(ids, candidates[i].ID)
		}
	}
	return s.DispatchToMany(ctx, ids, domain.NotifJobAlert, map[string]interface{}{
		"jobTitle":    ad.Title,
		"companyName": ad.CompanyName,
		"location":    ad.City,
		"salary":      ad.Salary,
	})
}

func matchesJobAlert(u *models.User, ad *models.JobAd) bool {
	return containsFold(u.PreferredTitleList(), ad.Title) ||
		containsFold(u.PreferredLocationList(), ad.City) ||
		containsFold(u.PreferredIndustryList(), ad.Industry)
}

func containsFold(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// pushData builds the string-only FCM payload: the caller's variables plus
// type, userId and a dispatch timestamp.
func (s *DispatchService) pushData(userID uint, notifType domain.NotificationType, vars map[string]interface{}) map[string]string {
	data := stringifyAll(vars)
	data["type"] = string(notifType)
	data["userId"] = strconv.FormatUint(uint64(userID), 10)
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	return data
}

func marshalData(vars map[string]interface{}) string {
	if len(vars) == 0 {
		return ""
	}
	b, _ := json.Marshal(vars)
	return string(b)
}
