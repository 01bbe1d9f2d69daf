package service

import (
	"errors"
	"time"

	"lokalhunt/internal/domain"
	"lokalhunt/internal/repository"

	"go.uber.org/zap"
)

// Verdict is the outcome of a pre-delivery gate check. AllowOnError records
// that a lookup failed and the gate fell open: delivery proceeds, but logs
// and tests can tell it apart from a legitimate allow.
type Verdict int

const (
	VerdictAllow Verdict = iota
	VerdictDeny
	VerdictAllowOnError
)

func (v Verdict) Allowed() bool { return v != VerdictDeny }

func (v Verdict) String() string {
	switch v {
	case VerdictDeny:
		return "deny"
	case VerdictAllowOnError:
		return "allow_on_error"
	default:
		return "allow"
	}
}

// PreferenceGate checks per-user opt-in flags. Lookup failures fall open:
// over-notifying is preferred to silently starving users of alerts.
type PreferenceGate struct {
	prefs *repository.PreferenceRepository
	log   *zap.Logger
}

func NewPreferenceGate(prefs *repository.PreferenceRepository, log *zap.Logger) *PreferenceGate {
	return &PreferenceGate{prefs: prefs, log: log}
}

func (g *PreferenceGate) CanSend(userID uint, notifType domain.NotificationType) Verdict {
	p, err := g.prefs.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// No row means default-allow.
			return VerdictAllow
		}
		g.log.Warn("preference lookup failed, allowing send",
			zap.Uint("user_id", userID),
			zap.String("type", string(notifType)),
			zap.Error(err))
		return VerdictAllowOnError
	}
	if !p.PushNotifications {
		return VerdictDeny
	}
	if !p.CategoryEnabled(string(notifType.Category())) {
		return VerdictDeny
	}
	return VerdictAllow
}

// RateLimiter enforces the per-type daily send caps against the tracker
// store. Same fail-open policy as the preference gate.
type RateLimiter struct {
	trackers *repository.TrackerRepository
	log      *zap.Logger
	now      func() time.Time
}

func NewRateLimiter(trackers *repository.TrackerRepository, log *zap.Logger) *RateLimiter {
	return &RateLimiter{trackers: trackers, log: log, now: time.Now}
}

func (l *RateLimiter) CheckLimit(userID uint, notifType domain.NotificationType) Verdict {
	count, err := l.trackers.Count(userID, string(notifType), l.now())
	if err != nil {
		l.log.Warn("rate tracker lookup failed, allowing send",
			zap.Uint("user_id", userID),
			zap.String("type", string(notifType)),
			zap.Error(err))
		return VerdictAllowOnError
	}
	if count >= notifType.DailyCap() {
		return VerdictDeny
	}
	return VerdictAllow
}

// RecordSend increments today's counter for (user, type). Errors are
// swallowed after logging: a failed increment must not fail the dispatch.
func (l *RateLimiter) RecordSend(userID uint, notifType domain.NotificationType) {
	if err := l.trackers.Increment(userID, string(notifType), l.now()); err != nil {
		l.log.Warn("rate tracker increment failed",
			zap.Uint("user_id", userID),
			zap.String("type", string(notifType)),
			zap.Error(err))
	}
}
