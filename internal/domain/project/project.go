package project

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Project is a deliverable engagement with status, tags and media. It belongs
// to exactly one client.
type Project struct {
	ID           uuid.UUID
	ClientID     uuid.UUID
	Name         string
	Slug         string
	Status       Status
	Tags         []string
	HeroPhotoURL string
	Photos       []Photo
	Videos       []Video
	LastUpdate   time.Time
	CreatedAt    time.Time
}

// Photo is keyed positionally: the ID is "photo-{index}" and the collection
// order is the definitive display order.
type Photo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Order int    `json:"order"`
}

type Video struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type CreateProjectInput struct {
	ClientID uuid.UUID
	Name     string
	Status   Status
	Tags     []string
}

type UpdateProjectInput struct {
	Name         *string
	Status       *Status
	Tags         *[]string
	HeroPhotoURL *string
	Photos       *[]Photo
	Videos       *[]Video
}

type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusDelivered  Status = "delivered"
	StatusOnHold     Status = "on_hold"
	StatusArchived   Status = "archived"

	errInvalidStatusFmt = "invalid project status: %s"
)

// Validate validates the status
func (s Status) Validate() error {
	switch s {
	case StatusDraft, StatusInProgress, StatusInReview, StatusDelivered, StatusOnHold, StatusArchived:
		return nil
	default:
		return fmt.Errorf(errInvalidStatusFmt, s)
	}
}

// PhotoID builds the positional photo key for an index.
func PhotoID(index int) string {
	return fmt.Sprintf("photo-%d", index)
}
