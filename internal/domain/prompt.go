package domain

import (
	"time"

	"github.com/google/uuid"
)

// ServicePrompt is a prompt template attached to a service.
type ServicePrompt struct {
	ID        uuid.UUID `json:"id"`
	ServiceID uuid.UUID `json:"serviceId"`
	Name      string    `json:"name"`
	Content   string    `json:"content,omitempty"`
	Type      string    `json:"type,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
