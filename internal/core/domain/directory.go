package domain

import "time"

// Committee is a standing or select legislative committee.
type Committee struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	Chamber       string    `json:"chamber" bson:"chamber"`
	CommitteeType string    `json:"committee_type,omitempty" bson:"committee_type,omitempty"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	IsActive      bool      `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// ElectedOfficial covers state and county offices outside the legislature.
type ElectedOfficial struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	FullName    string    `json:"full_name" bson:"full_name"`
	LastName    string    `json:"last_name" bson:"last_name"`
	OfficeType  string    `json:"office_type" bson:"office_type"`
	OfficeTitle string    `json:"office_title" bson:"office_title"`
	County      string    `json:"county,omitempty" bson:"county,omitempty"`
	District    string    `json:"district,omitempty" bson:"district,omitempty"`
	Party       string    `json:"party,omitempty" bson:"party,omitempty"`
	Email       string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone       string    `json:"phone,omitempty" bson:"phone,omitempty"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Legislator is a sitting member of the NC House or Senate.
type Legislator struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	FirstName     string    `json:"first_name" bson:"first_name"`
	LastName      string    `json:"last_name" bson:"last_name"`
	FullName      string    `json:"full_name" bson:"full_name"`
	Chamber       string    `json:"chamber" bson:"chamber"`
	District      string    `json:"district,omitempty" bson:"district,omitempty"`
	Party         string    `json:"party,omitempty" bson:"party,omitempty"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty"`
	OfficeAddress string    `json:"office_address,omitempty" bson:"office_address,omitempty"`
	WebsiteURL    string    `json:"website_url,omitempty" bson:"website_url,omitempty"`
	PhotoURL      string    `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	IsActive      bool      `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// Contact positions a constituent may take on a bill.
const (
	PositionSupport = "support"
	PositionOppose  = "oppose"
	PositionNeutral = "neutral"
)

// ContactMessage is a message a user sends to a legislator, optionally
// referencing a bill.
type ContactMessage struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	UserID       string    `json:"user_id" bson:"user_id"`
	LegislatorID string    `json:"legislator_id" bson:"legislator_id"`
	BillID       string    `json:"bill_id,omitempty" bson:"bill_id,omitempty"`
	Subject      string    `json:"subject" bson:"subject"`
	Message      string    `json:"message" bson:"message"`
	Position     string    `json:"position,omitempty" bson:"position,omitempty"`
	SentAt       time.Time `json:"sent_at" bson:"sent_at"`
}

// ActivityEntry records a member action (comment, track, issue submission)
// for the member dashboard and admin audit trail.
type ActivityEntry struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	MemberID     string         `json:"member_id,omitempty" bson:"member_id,omitempty"`
	ActivityType string         `json:"activity_type" bson:"activity_type"`
	Data         map[string]any `json:"activity_data,omitempty" bson:"activity_data,omitempty"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
}
