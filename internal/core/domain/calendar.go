package domain

import "time"

// CommitteeRef is the embedded committee view attached to events and
// subscriptions.
type CommitteeRef struct {
	ID      string `json:"id" bson:"id"`
	Name    string `json:"name" bson:"name"`
	Chamber string `json:"chamber" bson:"chamber"`
}

// LegislativeEvent is a session, committee meeting, or deadline on the
// legislative calendar. Read-mostly reference data.
type LegislativeEvent struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	EventType   string        `json:"event_type" bson:"event_type"`
	Chamber     string        `json:"chamber,omitempty" bson:"chamber,omitempty"`
	CommitteeID string        `json:"committee_id,omitempty" bson:"committee_id,omitempty"`
	Committee   *CommitteeRef `json:"committee,omitempty" bson:"committee,omitempty"`
	Location    string        `json:"location,omitempty" bson:"location,omitempty"`
	EventDate   string        `json:"event_date" bson:"event_date"`
	StartTime   string        `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime     string        `json:"end_time,omitempty" bson:"end_time,omitempty"`
	IsPublic    bool          `json:"is_public" bson:"is_public"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}

// EventSubscription holds a member's calendar notification preferences.
type EventSubscription struct {
	ID                   string        `json:"id" bson:"_id,omitempty"`
	MemberID             string        `json:"member_id" bson:"member_id"`
	SubscribeAllSessions bool          `json:"subscribe_all_sessions" bson:"subscribe_all_sessions"`
	SubscribeAllMeetings bool          `json:"subscribe_all_committee_meetings" bson:"subscribe_all_committee_meetings"`
	SubscribeDeadlines   bool          `json:"subscribe_deadlines" bson:"subscribe_deadlines"`
	Chamber              string        `json:"chamber,omitempty" bson:"chamber,omitempty"`
	CommitteeID          string        `json:"committee_id,omitempty" bson:"committee_id,omitempty"`
	Committee            *CommitteeRef `json:"committee,omitempty" bson:"committee,omitempty"`
	ReminderHoursBefore  int           `json:"reminder_hours_before" bson:"reminder_hours_before"`
	CreatedAt            time.Time     `json:"created_at" bson:"created_at"`
}
