package studio

import (
	"time"

	"github.com/google/uuid"
)

// Studio is a tenant account. Only active studios may authenticate.
type Studio struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	LogoURL      string
	Phone        string
	Website      string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateStudioInput struct {
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Website      string
}

type UpdateStudioInput struct {
	Name    *string
	LogoURL *string
	Phone   *string
	Website *string
}

// MasterAdmin is the platform operator principal. It shares the credential
// scheme with studios but authenticates against its own cookie and routes.
type MasterAdmin struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

const RoleMasterAdmin = "master_admin"
