package mess

import (
	"time"

	"github.com/MaheshKadam182/meals-spotter-new/internal/timeline"
)

const (
	TypeVeg    = "veg"
	TypeNonVeg = "non-veg"
	TypeBoth   = "both"
)

// DefaultImage is shown in listings for messes without their own picture.
const DefaultImage = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?auto=format&fit=crop&w=1760&q=80"

// Mess is a meal-service vendor: profile, plans and the menu timeline.
type Mess struct {
	ID            string                      `json:"id" bson:"_id"`
	OwnerID       string                      `json:"owner_id" bson:"owner_id"`
	Name          string                      `json:"name" bson:"name"`
	Type          string                      `json:"type" bson:"type"`
	Cuisine       []string                    `json:"cuisine" bson:"cuisine"`
	Location      string                      `json:"location" bson:"location"`
	Address       string                      `json:"address" bson:"address"`
	ContactNumber string                      `json:"contact_number" bson:"contact_number"`
	Image         string                      `json:"image,omitempty" bson:"image,omitempty"`
	Description   string                      `json:"description,omitempty" bson:"description,omitempty"`
	Plans         []timeline.SubscriptionPlan `json:"plans" bson:"plans"`
	Menu          timeline.Timeline           `json:"menu" bson:"menu"`
	CreatedAt     time.Time                   `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at" bson:"updated_at"`
}

// Summary is the directory card for one mess.
type Summary struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Location      string          `json:"location"`
	Address       string          `json:"address"`
	ContactNumber string          `json:"contact_number"`
	Description   string          `json:"description,omitempty"`
	Cuisine       []string        `json:"cuisine"`
	Image         string          `json:"image"`
	TodayMenu     []timeline.Dish `json:"today_menu"`
}

// ProfileInput is the editable part of a mess profile.
// Plans is replaced only when non-nil.
type ProfileInput struct {
	Name          string                      `json:"name"`
	Type          string                      `json:"type"`
	Cuisine       []string                    `json:"cuisine"`
	Location      string                      `json:"location"`
	Address       string                      `json:"address"`
	ContactNumber string                      `json:"contact_number"`
	Image         string                      `json:"image"`
	Description   string                      `json:"description"`
	Plans         []timeline.SubscriptionPlan `json:"plans"`
}
