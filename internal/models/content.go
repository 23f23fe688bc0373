package models

import (
	"time"
)

// Status represents the review state of a content item
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

// ValidStatuses defines the states a content item may be in
var ValidStatuses = map[Status]bool{
	StatusDraft:     true,
	StatusSubmitted: true,
	StatusApproved:  true,
	StatusRejected:  true,
}

// IsTerminal reports whether no transition leaves this status
func (s Status) IsTerminal() bool {
	return s == StatusApproved
}

// Content is a piece of writing moving through the review workflow
type Content struct {
	ID               string    `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Body             string    `json:"body" db:"body"`
	Status           Status    `json:"status" db:"status"`
	AuthorID         string    `json:"authorId" db:"author_id"`
	ReviewerID       *string   `json:"reviewerId,omitempty" db:"reviewer_id"`
	RejectionComment *string   `json:"rejectionComment,omitempty" db:"rejection_comment"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// Clone returns a deep copy so callers never share pointer fields
func (c *Content) Clone() *Content {
	out := *c
	if c.ReviewerID != nil {
		v := *c.ReviewerID
		out.ReviewerID = &v
	}
	if c.RejectionComment != nil {
		v := *c.RejectionComment
		out.RejectionComment = &v
	}
	return &out
}

// DraftInput carries the writer-editable fields of a content item
type DraftInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// RejectInput is the optional reviewer feedback attached to a rejection
type RejectInput struct {
	Comment string `json:"comment"`
}

// StatusCounts maps each status to the number of content items in it
type StatusCounts map[Status]int
