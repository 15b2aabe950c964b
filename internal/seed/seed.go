// Package seed fills an empty store with demo accounts and messes.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/MaheshKadam182/meals-spotter-new/internal/auth"
	"github.com/MaheshKadam182/meals-spotter-new/internal/clock"
	"github.com/MaheshKadam182/meals-spotter-new/internal/menu"
	"github.com/MaheshKadam182/meals-spotter-new/internal/mess"
	"github.com/MaheshKadam182/meals-spotter-new/internal/timeline"
	"github.com/jaswdr/faker"
)

const DemoPassword = "password123"

type Account struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Options struct {
	FakeMesses int
	// MenuDays is how many past days of menu each fake mess gets, today included.
	MenuDays int
	// RandSeed makes the fake data reproducible.
	RandSeed int64
}

type Result struct {
	Accounts []Account
	Messes   int
}

type Seeder struct {
	users  auth.UserRepository
	messes mess.Repository
	auth   *auth.Service
	mess   *mess.Service
	menu   *menu.Service
}

func New(users auth.UserRepository, messes mess.Repository, clk clock.Clock, loc *time.Location) *Seeder {
	messService := mess.NewService(messes, nil, clk, loc)
	return &Seeder{
		users:  users,
		messes: messes,
		auth:   auth.NewService(users, messService),
		mess:   messService,
		menu:   menu.NewService(messes),
	}
}

// Run wipes users and messes and writes the demo data set.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	log.Println("[SEED] cleaning existing data")
	if err := s.messes.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear messes: %w", err)
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear users: %w", err)
	}

	res := &Result{}

	accounts := []struct {
		name, email, role string
	}{
		{"Admin User", "admin@example.com", auth.RoleAdmin},
		{"Mess Owner", "messowner@example.com", auth.RoleMessOwner},
		{"Student User", "student@example.com", auth.RoleStudent},
	}

	var ownerID string
	for _, a := range accounts {
		u, err := s.auth.Register(ctx, a.name, a.email, DemoPassword, a.role)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", a.email, err)
		}
		if a.role == auth.RoleMessOwner {
			ownerID = u.ID
		}
		res.Accounts = append(res.Accounts, Account{Email: u.Email, Password: DemoPassword, Role: u.Role})
	}

	log.Println("[SEED] creating Annapurna Mess")
	if err := s.seedAnnapurna(ctx, ownerID); err != nil {
		return nil, err
	}
	res.Messes++

	if opts.FakeMesses > 0 {
		n, err := s.seedFake(ctx, opts)
		res.Messes += n
		if err != nil {
			return res, err
		}
	}

	log.Printf("[SEED] done: %d accounts, %d messes", len(res.Accounts), res.Messes)
	return res, nil
}

func (s *Seeder) seedAnnapurna(ctx context.Context, ownerID string) error {
	_, err := s.mess.UpdateProfile(ctx, ownerID, mess.ProfileInput{
		Name:          "Annapurna Mess",
		Type:          mess.TypeVeg,
		Cuisine:       []string{"North Indian", "South Indian"},
		Location:      "North Campus",
		Address:       "123, College Road, North Campus",
		ContactNumber: "+91 9876543210",
		Plans: []timeline.SubscriptionPlan{
			{Name: "Basic", Description: "Lunch only", Price: 2000, DurationDays: 30},
			{Name: "Standard", Description: "Lunch and Dinner", Price: 3500, DurationDays: 30},
			{Name: "Premium", Description: "Breakfast, Lunch and Dinner", Price: 4500, DurationDays: 30},
		},
	})
	if err != nil {
		return fmt.Errorf("annapurna profile: %w", err)
	}

	today := s.mess.Today().Format("2006-01-02")
	_, err = s.menu.AddDishes(ctx, ownerID, menu.AddRequest{
		Date: today,
		Dishes: []timeline.Dish{
			{Name: "Rice", Kind: timeline.KindVeg},
			{Name: "Dal", Kind: timeline.KindVeg},
			{Name: "Mixed Vegetables", Kind: timeline.KindVeg},
			{Name: "Chapati", Kind: timeline.KindVeg},
			{Name: "Curd", Kind: timeline.KindVeg},
		},
	})
	if err != nil {
		return fmt.Errorf("annapurna menu: %w", err)
	}
	return nil
}

var (
	vegDishes = []string{
		"Rice", "Jeera Rice", "Dal Tadka", "Dal Makhani", "Rajma", "Chole", "Aloo Gobi",
		"Paneer Butter Masala", "Palak Paneer", "Mixed Vegetables", "Chapati", "Puri",
		"Idli", "Dosa", "Sambar", "Upma", "Poha", "Curd", "Raita", "Gulab Jamun",
	}
	nonVegDishes = []string{
		"Chicken Curry", "Egg Curry", "Fish Fry", "Mutton Rogan Josh", "Chicken Biryani",
		"Egg Bhurji", "Butter Chicken",
	}
	cuisines = []string{
		"North Indian", "South Indian", "Maharashtrian", "Gujarati", "Bengali", "Punjabi",
	}
	messTypes = []string{mess.TypeVeg, mess.TypeNonVeg, mess.TypeBoth}
)

func (s *Seeder) seedFake(ctx context.Context, opts Options) (int, error) {
	fake := faker.NewWithSeed(rand.NewSource(opts.RandSeed))
	days := opts.MenuDays
	if days <= 0 {
		days = 1
	}
	today := s.mess.Today()

	created := 0
	for i := 0; i < opts.FakeMesses; i++ {
		ownerName := fake.Person().Name()
		email := fmt.Sprintf("owner%d@example.com", i+1)

		u, err := s.auth.Register(ctx, ownerName, email, DemoPassword, auth.RoleMessOwner)
		if err != nil {
			return created, fmt.Errorf("fake owner %d: %w", i+1, err)
		}

		messType := fake.RandomStringElement(messTypes)
		_, err = s.mess.UpdateProfile(ctx, u.ID, mess.ProfileInput{
			Name:          fake.Company().Name() + " Mess",
			Type:          messType,
			Cuisine:       []string{fake.RandomStringElement(cuisines)},
			Location:      fake.Address().City(),
			Address:       fake.Address().StreetAddress(),
			ContactNumber: fake.Phone().Number(),
			Description:   fake.Lorem().Sentence(10),
			Plans: []timeline.SubscriptionPlan{
				{Name: "Monthly", Price: float64(fake.IntBetween(15, 45) * 100), DurationDays: 30},
				{Name: "Weekly", Price: float64(fake.IntBetween(5, 12) * 100), DurationDays: 7},
			},
		})
		if err != nil {
			return created, fmt.Errorf("fake profile %d: %w", i+1, err)
		}

		for d := 0; d < days; d++ {
			date := today.AddDate(0, 0, -d).Format("2006-01-02")
			if _, err := s.menu.AddDishes(ctx, u.ID, menu.AddRequest{
				Date:   date,
				Dishes: fakeDishes(fake, messType),
			}); err != nil {
				return created, fmt.Errorf("fake menu %d: %w", i+1, err)
			}
		}

		created++
	}

	log.Printf("[SEED] created %d fake messes", created)
	return created, nil
}

func fakeDishes(fake faker.Faker, messType string) []timeline.Dish {
	n := fake.IntBetween(3, 5)
	dishes := make([]timeline.Dish, 0, n)
	for i := 0; i < n; i++ {
		if messType != mess.TypeVeg && fake.IntBetween(0, 3) == 0 {
			dishes = append(dishes, timeline.Dish{
				Name: fake.RandomStringElement(nonVegDishes),
				Kind: timeline.KindNonVeg,
			})
			continue
		}
		dishes = append(dishes, timeline.Dish{
			Name: fake.RandomStringElement(vegDishes),
			Kind: timeline.KindVeg,
		})
	}
	return dishes
}
