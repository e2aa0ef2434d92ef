package handler

import (
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

type billDetailResponse struct {
	Bill        *domain.Bill             `json:"bill"`
	History     []*domain.BillAction     `json:"history"`
	Votes       []*domain.BillVote       `json:"votes"`
	VoteRecords []*domain.BillVoteRecord `json:"vote_records"`
	Versions    []*domain.BillVersion    `json:"versions"`
	// IsTracked is set only when the request carries a member session.
	IsTracked *bool `json:"is_tracked,omitempty"`
}

func newBillDetailResponse(d *ports.BillDetail) billDetailResponse {
	res := billDetailResponse{
		Bill:        d.Bill,
		History:     d.History,
		Votes:       d.Votes,
		VoteRecords: d.VoteRecords,
		Versions:    d.Versions,
	}
	if res.History == nil {
		res.History = []*domain.BillAction{}
	}
	if res.Votes == nil {
		res.Votes = []*domain.BillVote{}
	}
	if res.VoteRecords == nil {
		res.VoteRecords = []*domain.BillVoteRecord{}
	}
	if res.Versions == nil {
		res.Versions = []*domain.BillVersion{}
	}
	return res
}

type createCommentRequest struct {
	Text            string `json:"comment_text" validate:"required"`
	ParentCommentID string `json:"parent_comment_id"`
}

type createBillRequest struct {
	BillNumber     string   `json:"bill_number" validate:"required"`
	Title          string   `json:"title" validate:"required"`
	Chamber        string   `json:"chamber" validate:"required,oneof=house senate"`
	Status         string   `json:"status"`
	Topic          string   `json:"topic"`
	Summary        string   `json:"summary"`
	FullText       string   `json:"full_text"`
	IntroducedDate string   `json:"introduced_date"`
	PrimarySponsor string   `json:"primary_sponsor"`
	Cosponsors     []string `json:"cosponsors"`
	NCLegURL       string   `json:"ncleg_url"`
	LastAction     string   `json:"last_action"`
	LastActionDate string   `json:"last_action_date"`
	Keywords       []string `json:"keywords"`
}

type updateBillRequest struct {
	Title          *string  `json:"title"`
	Chamber        *string  `json:"chamber" validate:"omitempty,oneof=house senate"`
	Status         *string  `json:"status"`
	Topic          *string  `json:"topic"`
	Summary        *string  `json:"summary"`
	FullText       *string  `json:"full_text"`
	IntroducedDate *string  `json:"introduced_date"`
	PrimarySponsor *string  `json:"primary_sponsor"`
	Cosponsors     []string `json:"cosponsors"`
	NCLegURL       *string  `json:"ncleg_url"`
	LastAction     *string  `json:"last_action"`
	LastActionDate *string  `json:"last_action_date"`
	Keywords       []string `json:"keywords"`
}

type trackBillRequest struct {
	BillID string `json:"bill_id" validate:"required"`
	Notes  string `json:"notes"`
}

type adminBillListResponse struct {
	Bills []*domain.Bill `json:"bills"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
