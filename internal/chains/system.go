package chains

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for chain store operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// List returns every chain ordered by last update, each with its latest version.
	List(ctx context.Context) ([]Chain, error)
	Find(ctx context.Context, id uuid.UUID) (*Chain, error)
	// Versions returns the full history of a chain in ascending version order.
	Versions(ctx context.Context, id uuid.UUID) ([]Version, error)

	// Create inserts a chain together with its default version 1.
	Create(ctx context.Context, cmd CreateCommand) (*Created, error)
	// Update applies only the fields present in cmd. An empty command is a no-op.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) error
	// Delete removes a chain and all of its versions.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateVersion appends the next version number to a chain.
	CreateVersion(ctx context.Context, chainID uuid.UUID, cmd CreateVersionCommand) (*VersionCreated, error)
	// SetPreview stores an uploaded image and points the chain's preview at it.
	SetPreview(ctx context.Context, id uuid.UUID, cmd PreviewCommand) (*Chain, error)
}
