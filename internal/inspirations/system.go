package inspirations

import "context"

// System defines the public contract for inspiration operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, filters Filters) ([]Inspiration, error)
	Save(ctx context.Context, cmd SaveCommand) (*Inspiration, error)
	Delete(ctx context.Context, id string) error
}
