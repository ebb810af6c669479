package calculation

import "context"

// Repository defines user-scoped data access for calculations. Every read
// and mutation is constrained by owner, so one account can never touch
// another account's rows.
type Repository interface {
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Calculation, int, error)
	GetForUser(context context.Context, id, userID string) (*Calculation, error)
	Create(context context.Context, calculation *Calculation) error
	Update(context context.Context, calculation *Calculation) error
	DeleteForUser(context context.Context, id, userID string) error
}
