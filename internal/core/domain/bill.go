package domain

import "time"

const (
	ChamberHouse  = "house"
	ChamberSenate = "senate"
)

// Bill is a North Carolina legislative bill. Append-mostly; edited by admins.
type Bill struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	BillNumber     string    `json:"bill_number" bson:"bill_number"`
	Title          string    `json:"title" bson:"title"`
	Chamber        string    `json:"chamber" bson:"chamber"`
	Status         string    `json:"status" bson:"status"`
	Topic          string    `json:"topic,omitempty" bson:"topic,omitempty"`
	Summary        string    `json:"summary,omitempty" bson:"summary,omitempty"`
	FullText       string    `json:"full_text,omitempty" bson:"full_text,omitempty"`
	IntroducedDate string    `json:"introduced_date,omitempty" bson:"introduced_date,omitempty"`
	PrimarySponsor string    `json:"primary_sponsor,omitempty" bson:"primary_sponsor,omitempty"`
	Cosponsors     []string  `json:"cosponsors,omitempty" bson:"cosponsors,omitempty"`
	NCLegURL       string    `json:"ncleg_url,omitempty" bson:"ncleg_url,omitempty"`
	LastAction     string    `json:"last_action,omitempty" bson:"last_action,omitempty"`
	LastActionDate string    `json:"last_action_date,omitempty" bson:"last_action_date,omitempty"`
	Keywords       []string  `json:"keywords,omitempty" bson:"keywords,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// BillAction is one entry in a bill's legislative history.
type BillAction struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	BillID     string    `json:"bill_id" bson:"bill_id"`
	Action     string    `json:"action" bson:"action"`
	Chamber    string    `json:"chamber,omitempty" bson:"chamber,omitempty"`
	ActionDate time.Time `json:"action_date" bson:"action_date"`
}

// BillVote is a recorded floor or committee vote on a bill.
type BillVote struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	BillID   string    `json:"bill_id" bson:"bill_id"`
	Chamber  string    `json:"chamber" bson:"chamber"`
	Motion   string    `json:"motion,omitempty" bson:"motion,omitempty"`
	Ayes     int       `json:"ayes" bson:"ayes"`
	Noes     int       `json:"noes" bson:"noes"`
	Result   string    `json:"result,omitempty" bson:"result,omitempty"`
	VoteDate time.Time `json:"vote_date" bson:"vote_date"`
}

// BillVoteRecord is a single legislator's cast on a vote.
type BillVoteRecord struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	VoteID       string `json:"vote_id" bson:"vote_id"`
	LegislatorID string `json:"legislator_id" bson:"legislator_id"`
	VoteCast     string `json:"vote_cast" bson:"vote_cast"`
}

// BillVersion is a published text version of a bill.
type BillVersion struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	BillID      string    `json:"bill_id" bson:"bill_id"`
	Version     string    `json:"version" bson:"version"`
	URL         string    `json:"url,omitempty" bson:"url,omitempty"`
	VersionDate time.Time `json:"version_date" bson:"version_date"`
}

// TrackedBill joins a member to a bill they follow. The (member_id, bill_id)
// pair is unique, enforced by a unique index rather than a pre-read check.
type TrackedBill struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	MemberID  string    `json:"member_id" bson:"member_id"`
	BillID    string    `json:"bill_id" bson:"bill_id"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	TrackedAt time.Time `json:"tracked_at" bson:"tracked_at"`
}
