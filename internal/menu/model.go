package menu

import "github.com/MaheshKadam182/meals-spotter-new/internal/timeline"

// AddRequest is the body of POST /mess/menu.
type AddRequest struct {
	Date   string          `json:"date"`
	Dishes []timeline.Dish `json:"dishes"`
}

// EditRequest is the body of PUT /mess/menu/:day/:dish. The first dish
// replaces the addressed one; the rest are appended to the same day.
type EditRequest struct {
	Dishes []timeline.Dish `json:"dishes"`
}

// Response wraps the vendor's timeline after a read or mutation.
type Response struct {
	MessID string            `json:"mess_id"`
	Menu   timeline.Timeline `json:"menu"`
}
