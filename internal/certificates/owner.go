// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package certificates

import "context"

// OwnerLookup adapts the repository to the authorization layer's ownership
// resolution contract.
type OwnerLookup struct {
	repository Repository
}

// NewOwnerLookup constructs the certificate [OwnerLookup].
func NewOwnerLookup(repository Repository) *OwnerLookup {
	return &OwnerLookup{repository: repository}
}

// ResourceName is the client-facing entity name used in 404 details.
func (lookup *OwnerLookup) ResourceName() string { return "Certificate" }

// OwnerID resolves the holding user of a certificate.
func (lookup *OwnerLookup) OwnerID(ctx context.Context, id int) (int, bool, error) {
	return lookup.repository.OwnerUserID(ctx, id)
}
