package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordNotSet     = errors.New("account not set up")
	ErrMemberNotFound     = errors.New("member not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrPhoneExists        = errors.New("phone number already registered")

	ErrBillNotFound    = errors.New("bill not found")
	ErrBillExists      = errors.New("bill with this number already exists")
	ErrAlreadyTracked  = errors.New("bill is already being tracked")
	ErrTrackedNotFound = errors.New("tracked bill not found")

	ErrIssueNotFound        = errors.New("issue not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCommentParentMissing = errors.New("parent comment does not belong to this thread")
	ErrCommentTooLong       = errors.New("comment must be less than 2000 characters")
	ErrCommentEmpty         = errors.New("comment text is required")

	ErrEventNotFound        = errors.New("event not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrCommitteeNotFound    = errors.New("committee not found")
	ErrLegislatorNotFound   = errors.New("legislator not found")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")
	ErrUpgradeRequired = errors.New("subscription upgrade required")
)
