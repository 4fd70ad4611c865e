package domain

import "context"

// UserProfile is the slice of the user directory this service consumes.
type UserProfile struct {
	ID         string
	TenantID   string
	Active     bool
	NationalID string
}

// UserDirectory is the external collaborator holding employee records and
// device authorizations. Implementations must scope every lookup to the
// given tenant.
type UserDirectory interface {
	GetUser(ctx context.Context, tenantID, userID string) (*UserProfile, error)
	IsDeviceAuthorized(ctx context.Context, tenantID, userID, deviceID string) (bool, error)
}
