package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service represents a managed service in the gateway catalog
type Service struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Tag         string        `json:"tag,omitempty"`
	Status      ServiceStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	DeletedAt   *time.Time    `json:"deletedAt,omitempty"`
}

// ServiceInput represents input for creating a service
type ServiceInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Tag         *string `json:"tag,omitempty" validate:"omitempty,max=255"`
}

// ServiceUpdateInput represents input for partially updating a service.
// Nil fields are left unchanged.
type ServiceUpdateInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Tag         *string `json:"tag,omitempty" validate:"omitempty,max=255"`
}

// ServiceFilter represents filter options for querying services
type ServiceFilter struct {
	// Search is matched case-insensitively against name and description.
	Search string
}

// ServiceList represents a paginated list of services
type ServiceList struct {
	Services []Service `json:"services"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Size     int       `json:"size"`
}

// ServiceDetail is the composite read of a service with all child collections.
type ServiceDetail struct {
	Service
	Workflows  []ServiceWorkflow   `json:"workflows"`
	Datasets   []ServiceDataset    `json:"datasets"`
	Models     []ServiceModel      `json:"models"`
	Prompts    []ServicePrompt     `json:"prompts"`
	Monitoring []ServiceMonitoring `json:"monitoring"`
}
