package timeline

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func veg(name string) Dish {
	return Dish{Name: name, Kind: KindVeg}
}

func names(dm DayMenu) []string {
	out := make([]string, 0, len(dm.Dishes))
	for _, d := range dm.Dishes {
		out = append(out, d.Name)
	}
	return out
}

func assertInvariants(t *testing.T, tl Timeline) {
	t.Helper()
	for i, dm := range tl {
		if len(dm.Dishes) == 0 {
			t.Fatalf("day %d (%s) has no dishes", i, dm.Date.Format(dateLayout))
		}
		if i > 0 && !Day(tl[i-1].Date).After(Day(dm.Date)) {
			t.Fatalf("days %d and %d not strictly descending: %s, %s",
				i-1, i, tl[i-1].Date.Format(dateLayout), dm.Date.Format(dateLayout))
		}
	}
}

// --------------------------------------------------
// UpsertDay
// --------------------------------------------------

func TestUpsertDay_CreatesDay(t *testing.T) {
	out, err := UpsertDay(nil, date("2024-06-01T00:00:00Z"), []Dish{veg("Rice"), veg("Dal")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 day, got %d", len(out))
	}
	if got := names(out[0]); !reflect.DeepEqual(got, []string{"Rice", "Dal"}) {
		t.Fatalf("unexpected dishes: %v", got)
	}
}

func TestUpsertDay_MergeIsAdditive(t *testing.T) {
	d := date("2024-06-01T00:00:00Z")

	first, err := UpsertDay(nil, d, []Dish{veg("a"), veg("b")})
	if err != nil {
		t.Fatal(err)
	}
	second, err := UpsertDay(first, d, []Dish{veg("c")})
	if err != nil {
		t.Fatal(err)
	}

	if len(second) != 1 {
		t.Fatalf("expected a single day, got %d", len(second))
	}
	if got := names(second[0]); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("expected [a b c], got %v", got)
	}
	if got := names(first[0]); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("input timeline was modified: %v", got)
	}
}

func TestUpsertDay_TimeOfDayIndependent(t *testing.T) {
	morning := date("2024-05-01T09:00:00Z")
	evening := date("2024-05-01T21:00:00Z")

	tl, err := UpsertDay(nil, morning, []Dish{veg("Poha")})
	if err != nil {
		t.Fatal(err)
	}
	tl, err = UpsertDay(tl, evening, []Dish{veg("Khichdi")})
	if err != nil {
		t.Fatal(err)
	}

	if len(tl) != 1 {
		t.Fatalf("expected one day for 2024-05-01, got %d", len(tl))
	}
	if !tl[0].Date.Equal(date("2024-05-01T00:00:00Z")) {
		t.Fatalf("expected normalized date, got %s", tl[0].Date)
	}
}

func TestUpsertDay_OffsetDatesUseOwnCalendarDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2024, 5, 1, 23, 30, 0, 0, ist)
	early := time.Date(2024, 5, 1, 0, 15, 0, 0, ist)

	tl, err := UpsertDay(nil, late, []Dish{veg("Paneer")})
	if err != nil {
		t.Fatal(err)
	}
	tl, err = UpsertDay(tl, early, []Dish{veg("Roti")})
	if err != nil {
		t.Fatal(err)
	}

	if len(tl) != 1 {
		t.Fatalf("expected one day, got %d", len(tl))
	}
}

func TestUpsertDay_SortsNewestFirst(t *testing.T) {
	var tl Timeline
	var err error
	for _, d := range []string{"2024-06-02", "2024-06-05", "2024-06-01", "2024-06-03"} {
		day, perr := ParseDate(d)
		if perr != nil {
			t.Fatal(perr)
		}
		tl, err = UpsertDay(tl, day, []Dish{veg("x")})
		if err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"2024-06-05", "2024-06-03", "2024-06-02", "2024-06-01"}
	for i, dm := range tl {
		if got := dm.Date.Format(dateLayout); got != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestUpsertDay_FiltersBlankNames(t *testing.T) {
	tl, err := UpsertDay(nil, date("2024-06-01T00:00:00Z"), []Dish{
		{Name: "  "},
		{Name: " Curd ", Kind: KindVeg},
		{Name: ""},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := names(tl[0]); !reflect.DeepEqual(got, []string{"Curd"}) {
		t.Fatalf("expected [Curd], got %v", got)
	}
}

func TestUpsertDay_DefaultsKindToVeg(t *testing.T) {
	tl, err := UpsertDay(nil, date("2024-06-01T00:00:00Z"), []Dish{{Name: "Dal"}})
	if err != nil {
		t.Fatal(err)
	}
	if tl[0].Dishes[0].Kind != KindVeg {
		t.Fatalf("expected veg, got %q", tl[0].Dishes[0].Kind)
	}
}

func TestUpsertDay_ValidationErrors(t *testing.T) {
	existing, err := UpsertDay(nil, date("2024-06-01T00:00:00Z"), []Dish{veg("Rice")})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		date   time.Time
		dishes []Dish
	}{
		{"no dishes", date("2024-06-02T00:00:00Z"), nil},
		{"only blank names", date("2024-06-02T00:00:00Z"), []Dish{{Name: ""}, {Name: "   "}}},
		{"zero date", time.Time{}, []Dish{veg("Rice")}},
		{"unknown kind", date("2024-06-02T00:00:00Z"), []Dish{{Name: "Fish", Kind: "pescatarian"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := existing.Clone()
			out, err := UpsertDay(existing, tt.date, tt.dishes)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if out != nil {
				t.Fatalf("expected no timeline on error, got %v", out)
			}
			if !reflect.DeepEqual(existing, before) {
				t.Fatalf("input timeline changed on failure")
			}
		})
	}
}

// --------------------------------------------------
// EditDish
// --------------------------------------------------

func buildTimeline(t *testing.T) Timeline {
	t.Helper()
	tl, err := UpsertDay(nil, date("2024-06-01T00:00:00Z"), []Dish{veg("Rice"), veg("Dal")})
	if err != nil {
		t.Fatal(err)
	}
	tl, err = UpsertDay(tl, date("2024-06-02T00:00:00Z"), []Dish{veg("Idli"), veg("Sambar"), veg("Chutney")})
	if err != nil {
		t.Fatal(err)
	}
	return tl
}

func TestEditDish_ReplacesOnlyTarget(t *testing.T) {
	tl := buildTimeline(t)
	replacement := Dish{Name: "Chicken Curry", Kind: KindNonVeg, Description: "spicy"}

	out, err := EditDish(tl, 0, 1, replacement)
	if err != nil {
		t.Fatal(err)
	}

	expected := tl.Clone()
	expected[0].Dishes[1] = replacement
	if !reflect.DeepEqual(out, expected) {
		t.Fatalf("unexpected timeline:\n got %+v\nwant %+v", out, expected)
	}
	if tl[0].Dishes[1].Name != "Sambar" {
		t.Fatalf("input timeline was modified")
	}
}

func TestEditDish_DoesNotResort(t *testing.T) {
	tl := buildTimeline(t)
	out, err := EditDish(tl, 1, 0, veg("Jeera Rice"))
	if err != nil {
		t.Fatal(err)
	}
	if !out[1].Date.Equal(tl[1].Date) || !out[0].Date.Equal(tl[0].Date) {
		t.Fatalf("day order changed on edit")
	}
}

func TestEditDish_OutOfRange(t *testing.T) {
	tl := buildTimeline(t)

	positions := []struct{ day, dish int }{
		{-1, 0},
		{2, 0},
		{0, -1},
		{0, 3},
		{1, 2},
	}
	for _, p := range positions {
		out, err := EditDish(tl, p.day, p.dish, veg("x"))
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("(%d,%d): expected ErrIndexOutOfRange, got %v", p.day, p.dish, err)
		}
		if out != nil {
			t.Fatalf("(%d,%d): expected nil timeline", p.day, p.dish)
		}
	}

	if _, err := EditDish(nil, 0, 0, veg("x")); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("empty timeline: expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestEditDish_BlankReplacement(t *testing.T) {
	tl := buildTimeline(t)
	if _, err := EditDish(tl, 0, 0, Dish{Name: " "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// --------------------------------------------------
// DeleteDish
// --------------------------------------------------

func TestDeleteDish_ShiftsRemaining(t *testing.T) {
	tl := buildTimeline(t)

	out, err := DeleteDish(tl, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := names(out[0]); !reflect.DeepEqual(got, []string{"Idli", "Chutney"}) {
		t.Fatalf("expected [Idli Chutney], got %v", got)
	}
	if got := names(tl[0]); len(got) != 3 {
		t.Fatalf("input timeline was modified: %v", got)
	}
}

func TestDeleteDish_CascadesEmptyDay(t *testing.T) {
	tl, err := UpsertDay(nil, date("2024-06-03T00:00:00Z"), []Dish{veg("Upma")})
	if err != nil {
		t.Fatal(err)
	}
	tl, err = UpsertDay(tl, date("2024-06-01T00:00:00Z"), []Dish{veg("Rice")})
	if err != nil {
		t.Fatal(err)
	}

	out, err := DeleteDish(tl, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 day after cascade, got %d", len(out))
	}
	if out[0].Date.Format(dateLayout) != "2024-06-01" {
		t.Fatalf("wrong day survived: %s", out[0].Date.Format(dateLayout))
	}
}

func TestDeleteDish_OutOfRange(t *testing.T) {
	tl := buildTimeline(t)
	if _, err := DeleteDish(tl, 5, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := DeleteDish(tl, 1, 9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRiceDalScenario(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	if err != nil {
		t.Fatal(err)
	}

	tl, err := UpsertDay(Timeline{}, d, []Dish{veg("Rice"), veg("Dal")})
	if err != nil {
		t.Fatal(err)
	}
	if len(tl) != 1 || len(tl[0].Dishes) != 2 {
		t.Fatalf("expected one day with two dishes, got %+v", tl)
	}

	tl, err = DeleteDish(tl, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := names(tl[0]); !reflect.DeepEqual(got, []string{"Dal"}) {
		t.Fatalf("expected [Dal], got %v", got)
	}

	tl, err = DeleteDish(tl, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(tl) != 0 {
		t.Fatalf("expected empty timeline, got %+v", tl)
	}
	if tl == nil {
		t.Fatalf("expected empty, non-nil timeline")
	}
}

// --------------------------------------------------
// Random sequences
// --------------------------------------------------

func TestRandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := date("2024-01-01T00:00:00Z")

	var tl Timeline
	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(tl) == 0:
			day := base.AddDate(0, 0, rng.Intn(20)).Add(time.Duration(rng.Intn(24)) * time.Hour)
			n := 1 + rng.Intn(3)
			dishes := make([]Dish, n)
			for i := range dishes {
				dishes[i] = veg("dish")
			}
			before := tl.DishCount()
			out, err := UpsertDay(tl, day, dishes)
			if err != nil {
				t.Fatalf("step %d: upsert: %v", step, err)
			}
			if out.DishCount() != before+n {
				t.Fatalf("step %d: expected %d dishes, got %d", step, before+n, out.DishCount())
			}
			tl = out
		case op == 1:
			i := rng.Intn(len(tl))
			j := rng.Intn(len(tl[i].Dishes))
			out, err := EditDish(tl, i, j, veg("edited"))
			if err != nil {
				t.Fatalf("step %d: edit: %v", step, err)
			}
			tl = out
		default:
			i := rng.Intn(len(tl))
			j := rng.Intn(len(tl[i].Dishes))
			before := tl.DishCount()
			out, err := DeleteDish(tl, i, j)
			if err != nil {
				t.Fatalf("step %d: delete: %v", step, err)
			}
			if out.DishCount() != before-1 {
				t.Fatalf("step %d: expected %d dishes, got %d", step, before-1, out.DishCount())
			}
			tl = out
		}
		assertInvariants(t, tl)
	}
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func TestNormalize(t *testing.T) {
	raw := Timeline{
		{Date: date("2024-06-01T08:00:00Z"), Dishes: []Dish{{Name: "Rice"}}},
		{Date: date("2024-06-03T00:00:00Z"), Dishes: []Dish{{Name: ""}}},
		{Date: date("2024-06-02T00:00:00Z"), Dishes: []Dish{veg("Idli")}},
		{Date: date("2024-06-01T20:00:00Z"), Dishes: []Dish{veg("Dal")}},
	}

	out := Normalize(raw)
	assertInvariants(t, out)

	if len(out) != 2 {
		t.Fatalf("expected 2 days, got %d", len(out))
	}
	if got := names(out[1]); !reflect.DeepEqual(got, []string{"Rice", "Dal"}) {
		t.Fatalf("expected merged [Rice Dal], got %v", got)
	}
	if out[1].Dishes[0].Kind != KindVeg {
		t.Fatalf("expected default kind, got %q", out[1].Dishes[0].Kind)
	}
	if len(raw[0].Dishes) != 1 {
		t.Fatalf("input timeline was modified")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-06-01", "2024-06-01", false},
		{"2024-06-01T21:30:00Z", "2024-06-01", false},
		{"2024-06-01T23:30:00+05:30", "2024-06-01", false},
		{"2024-05-01T09:00", "2024-05-01", false},
		{"2024-05-01T21:00:00", "2024-05-01", false},
		{"2024-05-01 09:00", "", true},
		{"", "", true},
		{"01/06/2024", "", true},
		{"tomorrow", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ParseDate(%q): expected ErrValidation, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got.Format(dateLayout) != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Format(dateLayout), tt.want)
		}
	}
}

func TestOn(t *testing.T) {
	tl := buildTimeline(t)

	dm, ok := tl.On(date("2024-06-02T18:45:00Z"))
	if !ok {
		t.Fatal("expected a menu for 2024-06-02")
	}
	if got := names(dm); !reflect.DeepEqual(got, []string{"Idli", "Sambar", "Chutney"}) {
		t.Fatalf("unexpected dishes: %v", got)
	}

	if _, ok := tl.On(date("2024-07-01T00:00:00Z")); ok {
		t.Fatal("expected no menu for 2024-07-01")
	}
}
