package domain

// ServiceStatus is the lifecycle state of a service. A tagged status field
// leaves room for future states without schema churn.
type ServiceStatus string

const (
	// ServiceStatusActive marks a live service visible to all reads.
	ServiceStatusActive ServiceStatus = "active"
	// ServiceStatusDeleted marks a soft-deleted service. The row persists
	// but is excluded from list, read and child-listing endpoints.
	ServiceStatusDeleted ServiceStatus = "deleted"
)

// Valid reports whether the status is a known lifecycle state.
func (s ServiceStatus) Valid() bool {
	switch s {
	case ServiceStatusActive, ServiceStatusDeleted:
		return true
	}
	return false
}
