package domain

import (
	"time"

	"github.com/google/uuid"
)

// ServiceDataset is a dataset attached to a service.
type ServiceDataset struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"serviceId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
