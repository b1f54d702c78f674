package dto

import "github.com/aipaas/console/internal/domain"

// CreateServiceRequest represents the request to create a service
type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Tag         *string `json:"tag,omitempty" validate:"omitempty,max=255"`
}

// Input converts the request to a domain input.
func (r CreateServiceRequest) Input() *domain.ServiceInput {
	return &domain.ServiceInput{
		Name:        r.Name,
		Description: r.Description,
		Tag:         r.Tag,
	}
}

// UpdateServiceRequest represents the request to partially update a service.
// Absent fields are left unchanged.
type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Tag         *string `json:"tag,omitempty" validate:"omitempty,max=255"`
}

// Input converts the request to a domain update input.
func (r UpdateServiceRequest) Input() *domain.ServiceUpdateInput {
	return &domain.ServiceUpdateInput{
		Name:        r.Name,
		Description: r.Description,
		Tag:         r.Tag,
	}
}
