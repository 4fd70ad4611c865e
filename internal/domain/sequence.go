package domain

import "context"

// TenantNSRCounter holds the last issued NSR for one tenant. It is
// mutated only by the allocator's atomic increment.
type TenantNSRCounter struct {
	TenantID   string
	CurrentNSR int64
}

// NSRAllocator issues the next strictly increasing, gap-free sequence
// number for a tenant. Concurrent calls for the same tenant serialize on
// the tenant's counter row; different tenants never contend.
type NSRAllocator interface {
	AllocateNext(ctx context.Context, tenantID string) (int64, error)
}
