package domain

import (
	"time"

	"github.com/google/uuid"
)

// ServiceWorkflow is a workflow attached to a service. Workflows are
// populated by the pipeline subsystem; this API only reads them.
type ServiceWorkflow struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"serviceId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
