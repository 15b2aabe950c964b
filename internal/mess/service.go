package mess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/MaheshKadam182/meals-spotter-new/internal/clock"
	"github.com/MaheshKadam182/meals-spotter-new/internal/storage"
	"github.com/MaheshKadam182/meals-spotter-new/internal/timeline"
)

var (
	ErrInvalidProfile = errors.New("invalid mess profile")
	ErrImagesDisabled = errors.New("image uploads are not configured")
)

// ImageStore hosts uploaded pictures and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo   Repository
	images ImageStore
	clock  clock.Clock
	loc    *time.Location
}

// NewService wires the mess service. images may be nil, in which case
// uploads fail with ErrImagesDisabled. loc decides which calendar day is
// "today" for directory listings.
func NewService(repo Repository, images ImageStore, clk clock.Clock, loc *time.Location) *Service {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:   repo,
		images: images,
		clock:  clk,
		loc:    loc,
	}
}

// --------------------------------------------------
// Starter profile for a freshly registered owner
// --------------------------------------------------
func (s *Service) ProvisionForOwner(ctx context.Context, ownerID, ownerName string) error {
	if _, err := s.repo.GetByOwner(ctx, ownerID); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	m := &Mess{
		OwnerID:       ownerID,
		Name:          fmt.Sprintf("%s's Mess", ownerName),
		Type:          TypeBoth,
		Cuisine:       []string{},
		Location:      "Please update your location",
		Address:       "Please update your address",
		ContactNumber: "",
		Plans:         []timeline.SubscriptionPlan{},
		Menu:          timeline.Timeline{},
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return fmt.Errorf("provision mess: %w", err)
	}

	log.Printf("[MESS] provisioned profile %s for owner %s", m.ID, ownerID)
	return nil
}

// --------------------------------------------------
// Public directory
// --------------------------------------------------
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	messes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	out := make([]Summary, 0, len(messes))
	for _, m := range messes {
		out = append(out, summarize(m, today))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Mess, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Menu = timeline.Normalize(m.Menu)
	return m, nil
}

// Today is the current calendar day in the service's time zone.
func (s *Service) Today() time.Time {
	return timeline.Day(s.clock.Now().In(s.loc))
}

func summarize(m *Mess, today time.Time) Summary {
	image := m.Image
	if image == "" {
		image = DefaultImage
	}

	dishes := []timeline.Dish{}
	if day, ok := timeline.Normalize(m.Menu).On(today); ok {
		dishes = day.Dishes
	}

	cuisine := m.Cuisine
	if cuisine == nil {
		cuisine = []string{}
	}

	return Summary{
		ID:            m.ID,
		Name:          m.Name,
		Type:          m.Type,
		Location:      m.Location,
		Address:       m.Address,
		ContactNumber: m.ContactNumber,
		Description:   m.Description,
		Cuisine:       cuisine,
		Image:         image,
		TodayMenu:     dishes,
	}
}

// --------------------------------------------------
// Owner profile
// --------------------------------------------------
func (s *Service) GetMyProfile(ctx context.Context, ownerID string) (*Mess, error) {
	m, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	m.Menu = timeline.Normalize(m.Menu)
	return m, nil
}

// UpdateProfile creates the owner's mess on first use and otherwise
// overwrites the profile fields. The menu is never touched here.
func (s *Service) UpdateProfile(ctx context.Context, ownerID string, in ProfileInput) (*Mess, error) {
	in, err := cleanProfile(in)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.GetByOwner(ctx, ownerID)
	switch {
	case errors.Is(err, ErrNotFound):
		m = &Mess{
			OwnerID: ownerID,
			Plans:   []timeline.SubscriptionPlan{},
			Menu:    timeline.Timeline{},
		}
		applyProfile(m, in)
		if err := s.repo.Create(ctx, m); err != nil {
			return nil, err
		}
		log.Printf("[MESS] created profile %s for owner %s", m.ID, ownerID)
	case err != nil:
		return nil, err
	default:
		applyProfile(m, in)
		if err := s.repo.UpdateProfile(ctx, m); err != nil {
			return nil, err
		}
	}

	m.Menu = timeline.Normalize(m.Menu)
	return m, nil
}

func applyProfile(m *Mess, in ProfileInput) {
	m.Name = in.Name
	m.Type = in.Type
	m.Cuisine = in.Cuisine
	m.Location = in.Location
	m.Address = in.Address
	m.ContactNumber = in.ContactNumber
	m.Image = in.Image
	m.Description = in.Description
	if in.Plans != nil {
		m.Plans = in.Plans
	}
}

func cleanProfile(in ProfileInput) (ProfileInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Address = strings.TrimSpace(in.Address)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.Image = strings.TrimSpace(in.Image)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" || in.Location == "" || in.Address == "" {
		return in, fmt.Errorf("%w: name, location and address are required", ErrInvalidProfile)
	}

	switch t := strings.ToLower(strings.TrimSpace(in.Type)); t {
	case "":
		in.Type = TypeBoth
	case TypeVeg, TypeNonVeg, TypeBoth:
		in.Type = t
	default:
		return in, fmt.Errorf("%w: unknown type %q", ErrInvalidProfile, in.Type)
	}

	cuisine := make([]string, 0, len(in.Cuisine))
	for _, c := range in.Cuisine {
		if c = strings.TrimSpace(c); c != "" {
			cuisine = append(cuisine, c)
		}
	}
	in.Cuisine = cuisine

	if in.Plans != nil {
		plans := make([]timeline.SubscriptionPlan, 0, len(in.Plans))
		for i, p := range in.Plans {
			p.Name = strings.TrimSpace(p.Name)
			p.Description = strings.TrimSpace(p.Description)
			switch {
			case p.Name == "":
				return in, fmt.Errorf("%w: plan %d has no name", ErrInvalidProfile, i)
			case p.Price < 0:
				return in, fmt.Errorf("%w: plan %q has a negative price", ErrInvalidProfile, p.Name)
			case p.DurationDays <= 0:
				return in, fmt.Errorf("%w: plan %q needs a positive duration", ErrInvalidProfile, p.Name)
			}
			plans = append(plans, p)
		}
		in.Plans = plans
	}

	return in, nil
}

// --------------------------------------------------
// Image upload
// --------------------------------------------------
func (s *Service) UploadImage(
	ctx context.Context,
	ownerID string,
	filename string,
	contentType string,
	body io.Reader,
) (string, error) {
	if s.images == nil {
		return "", ErrImagesDisabled
	}

	m, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}

	key, err := storage.ImageKey(m.ID, filename)
	if err != nil {
		return "", err
	}

	url, err := s.images.Upload(ctx, key, body, contentType)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	log.Printf("[MESS] uploaded %s for mess %s", key, m.ID)
	return url, nil
}
