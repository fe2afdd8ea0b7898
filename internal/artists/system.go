package artists

import "context"

// System defines the public contract for artist operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, filters Filters) ([]Artist, error)
	Save(ctx context.Context, cmd SaveCommand) (*Artist, error)
	Delete(ctx context.Context, id string) error
}
