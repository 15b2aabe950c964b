package timeline

import "time"

// Kind marks a dish as vegetarian or not.
type Kind string

const (
	KindVeg    Kind = "veg"
	KindNonVeg Kind = "non-veg"
)

// Dish is one offering within a day's menu.
type Dish struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Kind        Kind   `json:"type" bson:"type"`
	ImageRef    string `json:"image,omitempty" bson:"image,omitempty"`
}

// DayMenu holds the dishes served on one calendar date.
// Dishes is never empty while the day is part of a Timeline.
type DayMenu struct {
	Date   time.Time `json:"date" bson:"date"`
	Dishes []Dish    `json:"items" bson:"items"`
}

// Timeline is a vendor's menu history, newest day first,
// with at most one DayMenu per calendar date.
type Timeline []DayMenu

// SubscriptionPlan is carried on the vendor record next to the timeline.
type SubscriptionPlan struct {
	Name         string  `json:"name" bson:"name"`
	Description  string  `json:"description,omitempty" bson:"description,omitempty"`
	Price        float64 `json:"price" bson:"price"`
	DurationDays int     `json:"duration" bson:"duration"`
}
