package domain

// NotificationType is the closed set of events the dispatcher knows how to
// deliver. Each type carries the preference category it is gated by and its
// daily per-user send cap, so an unmapped type cannot slip through with
// ad hoc defaults.
type NotificationType string

const (
	// Candidate notifications
	NotifWelcome            NotificationType = "WELCOME"
	NotifJobAlert           NotificationType = "JOB_ALERT"
	NotifApplicationUpdate  NotificationType = "APPLICATION_UPDATE"
	NotifProfileViewed      NotificationType = "PROFILE_VIEWED"
	NotifInterviewScheduled NotificationType = "INTERVIEW_SCHEDULED"
	NotifProfileUpdate      NotificationType = "PROFILE_UPDATE"
	NotifJobClosed          NotificationType = "JOB_CLOSED"

	// Employer notifications
	NotifNewApplication   NotificationType = "NEW_APPLICATION"
	NotifJobApproved      NotificationType = "JOB_APPROVED"
	NotifJobRejected      NotificationType = "JOB_REJECTED"
	NotifJobViewMilestone NotificationType = "JOB_VIEW_MILESTONE"
	NotifJobBookmarked    NotificationType = "JOB_BOOKMARKED"
	NotifJobViewed        NotificationType = "JOB_VIEWED"

	// Branch admin notifications
	NotifAdminAlert             NotificationType = "ADMIN_ALERT"
	NotifNewEmployerRegistered  NotificationType = "NEW_EMPLOYER_REGISTERED"
	NotifNewCandidateRegistered NotificationType = "NEW_CANDIDATE_REGISTERED"
	NotifNewAdSubmitted         NotificationType = "NEW_AD_SUBMITTED"

	// System
	NotifSystem      NotificationType = "SYSTEM"
	NotifPromotional NotificationType = "PROMOTIONAL"
	NotifTest        NotificationType = "TEST"
)

// PreferenceCategory names the per-user opt-out flag a notification type is
// gated by. The empty category means the type is not category-gated (only the
// global push toggle applies).
type PreferenceCategory string

const (
	CategoryNone               PreferenceCategory = ""
	CategoryJobAlerts          PreferenceCategory = "jobAlerts"
	CategoryApplicationUpdates PreferenceCategory = "applicationUpdates"
	CategoryInterviewReminders PreferenceCategory = "interviewReminders"
	CategoryProfileUpdates     PreferenceCategory = "profileUpdates"
	CategorySystem             PreferenceCategory = "systemNotifications"
	CategoryPromotional        PreferenceCategory = "promotionalOffers"
)

// DefaultDailyCap applies to any type without an explicit cap below.
const DefaultDailyCap = 10

type typeInfo struct {
	category PreferenceCategory
	dailyCap int
}

var notificationTypes = map[NotificationType]typeInfo{
	NotifWelcome:            {CategoryNone, 1},
	NotifJobAlert:           {CategoryJobAlerts, 2},
	NotifApplicationUpdate:  {CategoryApplicationUpdates, DefaultDailyCap},
	NotifProfileViewed:      {CategoryNone, 5},
	NotifInterviewScheduled: {CategoryInterviewReminders, DefaultDailyCap},
	NotifProfileUpdate:      {CategoryProfileUpdates, DefaultDailyCap},
	NotifJobClosed:          {CategoryApplicationUpdates, DefaultDailyCap},

	NotifNewApplication:   {CategoryApplicationUpdates, DefaultDailyCap},
	NotifJobApproved:      {CategoryNone, DefaultDailyCap},
	NotifJobRejected:      {CategoryNone, DefaultDailyCap},
	NotifJobViewMilestone: {CategoryNone, DefaultDailyCap},
	NotifJobBookmarked:    {CategoryNone, DefaultDailyCap},
	NotifJobViewed:        {CategoryNone, DefaultDailyCap},

	NotifAdminAlert:             {CategorySystem, DefaultDailyCap},
	NotifNewEmployerRegistered:  {CategoryNone, DefaultDailyCap},
	NotifNewCandidateRegistered: {CategoryNone, DefaultDailyCap},
	NotifNewAdSubmitted:         {CategoryNone, DefaultDailyCap},

	NotifSystem:      {CategorySystem, DefaultDailyCap},
	NotifPromotional: {CategoryPromotional, DefaultDailyCap},
	NotifTest:        {CategoryNone, 10},
}

// Known reports whether t is part of the closed enumeration.
func (t NotificationType) Known() bool {
	_, ok := notificationTypes[t]
	return ok
}

// Category returns the preference category gating t. Unknown types return
// CategoryNone, which the gate treats as allowed.
func (t NotificationType) Category() PreferenceCategory {
	return notificationTypes[t].category
}

// DailyCap returns the per-user daily send cap for t.
func (t NotificationType) DailyCap() int {
	if info, ok := notificationTypes[t]; ok {
		return info.dailyCap
	}
	return DefaultDailyCap
}

func (t NotificationType) String() string { return string(t) }
