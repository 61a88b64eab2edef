package client

import (
	"time"

	"github.com/google/uuid"
)

// Client is a studio's customer, grouping projects. The slug is derived from
// the name at creation; uniqueness is not enforced, so two same-named clients
// under one studio collide on slug lookup (known limitation).
type Client struct {
	ID           uuid.UUID
	StudioID     uuid.UUID
	Name         string
	Slug         string
	ContactName  string
	ContactEmail string
	Phone        string
	Address      string
	ProjectCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateClientInput struct {
	StudioID     uuid.UUID
	Name         string
	ContactName  string
	ContactEmail string
	Phone        string
	Address      string
}

type UpdateClientInput struct {
	Name         *string
	ContactName  *string
	ContactEmail *string
	Phone        *string
	Address      *string
}
