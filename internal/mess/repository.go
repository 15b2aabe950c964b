package mess

import (
	"context"
	"errors"

	"github.com/MaheshKadam182/meals-spotter-new/internal/timeline"
)

var ErrNotFound = errors.New("mess profile not found")

type Repository interface {
	Create(ctx context.Context, m *Mess) error
	GetByID(ctx context.Context, id string) (*Mess, error)
	GetByOwner(ctx context.Context, ownerID string) (*Mess, error)
	List(ctx context.Context) ([]*Mess, error)

	// UpdateProfile writes every field except the menu.
	UpdateProfile(ctx context.Context, m *Mess) error

	// SaveMenu replaces the stored timeline. Last writer wins.
	SaveMenu(ctx context.Context, id string, menu timeline.Timeline) error

	DeleteAll(ctx context.Context) error
}
