package game

import "context"

// Store owns the live competition state. Update serializes compound
// mutations: the callback receives a private copy, and the store installs it
// only when the callback returns nil, so readers never observe the two halves
// of a team/challenge mutation disagreeing.
type Store interface {
	Snapshot(ctx context.Context) (Dataset, error)
	Update(ctx context.Context, fn func(*Dataset) error) (Dataset, error)
	Reset(ctx context.Context) (Dataset, error)
}
