package session

import "context"

// Repository holds the single session state record.
type Repository interface {
	Get(ctx context.Context) (State, error)
	Set(ctx context.Context, state State) error
}
