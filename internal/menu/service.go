package menu

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/MaheshKadam182/meals-spotter-new/internal/mess"
	"github.com/MaheshKadam182/meals-spotter-new/internal/timeline"
)

// Store is the part of the mess repository the menu service needs.
type Store interface {
	GetByOwner(ctx context.Context, ownerID string) (*mess.Mess, error)
	SaveMenu(ctx context.Context, id string, menu timeline.Timeline) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// --------------------------------------------------
// Read the owner's timeline
// --------------------------------------------------
func (s *Service) Get(ctx context.Context, ownerID string) (*Response, error) {
	m, current, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &Response{MessID: m.ID, Menu: current}, nil
}

// --------------------------------------------------
// Add dishes to a date (creates or merges the day)
// --------------------------------------------------
func (s *Service) AddDishes(ctx context.Context, ownerID string, req AddRequest) (*Response, error) {
	date, err := timeline.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	return s.apply(ctx, ownerID, func(t timeline.Timeline) (timeline.Timeline, error) {
		return timeline.UpsertDay(t, date, req.Dishes)
	}, "added dishes for "+date.Format("2006-01-02"))
}

// --------------------------------------------------
// Edit one dish; extra dishes join the same day
// --------------------------------------------------
func (s *Service) EditDish(ctx context.Context, ownerID string, dayIndex, dishIndex int, req EditRequest) (*Response, error) {
	if len(req.Dishes) == 0 {
		return nil, fmt.Errorf("%w: at least one dish is required", timeline.ErrValidation)
	}

	replacement := req.Dishes[0]
	var extras []timeline.Dish
	for _, d := range req.Dishes[1:] {
		if strings.TrimSpace(d.Name) != "" {
			extras = append(extras, d)
		}
	}

	return s.apply(ctx, ownerID, func(t timeline.Timeline) (timeline.Timeline, error) {
		next, err := timeline.EditDish(t, dayIndex, dishIndex, replacement)
		if err != nil {
			return nil, err
		}
		if len(extras) == 0 {
			return next, nil
		}
		return timeline.UpsertDay(next, next[dayIndex].Date, extras)
	}, fmt.Sprintf("edited dish %d/%d", dayIndex, dishIndex))
}

// --------------------------------------------------
// Delete one dish (empty days disappear)
// --------------------------------------------------
func (s *Service) DeleteDish(ctx context.Context, ownerID string, dayIndex, dishIndex int) (*Response, error) {
	return s.apply(ctx, ownerID, func(t timeline.Timeline) (timeline.Timeline, error) {
		return timeline.DeleteDish(t, dayIndex, dishIndex)
	}, fmt.Sprintf("deleted dish %d/%d", dayIndex, dishIndex))
}

// apply runs one engine mutation against the stored timeline and persists
// the result only when the mutation succeeds.
func (s *Service) apply(
	ctx context.Context,
	ownerID string,
	mutate func(timeline.Timeline) (timeline.Timeline, error),
	action string,
) (*Response, error) {
	m, current, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	next, err := mutate(current)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveMenu(ctx, m.ID, next); err != nil {
		return nil, fmt.Errorf("save menu: %w", err)
	}

	log.Printf("[MENU] mess %s: %s (%d days, %d dishes)", m.ID, action, len(next), next.DishCount())
	return &Response{MessID: m.ID, Menu: next}, nil
}

func (s *Service) load(ctx context.Context, ownerID string) (*mess.Mess, timeline.Timeline, error) {
	m, err := s.store.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return m, timeline.Normalize(m.Menu), nil
}
