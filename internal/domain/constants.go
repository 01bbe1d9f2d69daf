package domain

const (
	RoleCandidate   = "CANDIDATE"
	RoleEmployer    = "EMPLOYER"
	RoleBranchAdmin = "BRANCH_ADMIN"
)

const (
	AdStatusDraft           = "DRAFT"
	AdStatusPendingApproval = "PENDING_APPROVAL"
	AdStatusApproved        = "APPROVED"
	AdStatusRejected        = "REJECTED"
	AdStatusClosed          = "CLOSED"
)

const (
	ApplicationStatusApplied     = "APPLIED"
	ApplicationStatusShortlisted = "SHORTLISTED"
	ApplicationStatusRejected    = "REJECTED"
	ApplicationStatusHired       = "HIRED"
)
