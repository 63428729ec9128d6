// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package enrollments

import "context"

// OwnerLookup adapts the repository to the authorization layer's ownership
// resolution contract.
type OwnerLookup struct {
	repository Repository
}

// NewOwnerLookup constructs the enrollment [OwnerLookup].
func NewOwnerLookup(repository Repository) *OwnerLookup {
	return &OwnerLookup{repository: repository}
}

// ResourceName is the client-facing entity name used in 404 details.
func (lookup *OwnerLookup) ResourceName() string { return "Enrollment" }

// OwnerID resolves the owning user of an enrollment.
func (lookup *OwnerLookup) OwnerID(ctx context.Context, id int) (int, bool, error) {
	return lookup.repository.OwnerUserID(ctx, id)
}
