package domain

import (
	"time"

	"github.com/google/uuid"
)

// ServiceMonitoring is a monitoring record attached to a service.
// Config carries the monitor configuration as JSON text.
type ServiceMonitoring struct {
	ID        uuid.UUID `json:"id"`
	ServiceID uuid.UUID `json:"serviceId"`
	Name      string    `json:"name"`
	Type      string    `json:"type,omitempty"`
	Config    string    `json:"config,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
