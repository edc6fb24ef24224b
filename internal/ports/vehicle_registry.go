package ports

import "green-route-service/internal/domain"

// Port: a boundary for looking up vehicle profiles by name.
type VehicleRegistry interface {
	// Get returns the profile for a name, with ok=false when unknown.
	Get(name string) (domain.VehicleProfile, bool)
	// List returns all registered profiles ordered by name.
	List() []domain.VehicleProfile
}
