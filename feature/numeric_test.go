package feature

import (
	"testing"
	"time"

	"github.com/rushteam/scorekit/core"
)

func TestUserNumericFeaturesShape(t *testing.T) {
	if got := UserNumericFeatures(nil); len(got) != NumericDim {
		t.Fatalf("dim = %d, want %d", len(got), NumericDim)
	}

	es := 0.7
	rctx := &core.RecommendContext{
		UserID: "u1",
		User: &core.UserProfile{
			UserID:    "u1",
			Age:       30,
			Interests: []string{"a", "b"},
		},
		Meta:     &core.InteractionMeta{EngagementScore: &es},
		Location: &core.LocationSnapshot{City: "Berlin"},
		History: core.InteractionHistory{
			core.CategoryMovies: {{Title: "X", Action: "liked", Timestamp: "2024-05-01"}},
		},
	}

	out := UserNumericFeatures(rctx)
	if out[0] != 0.3 {
		t.Fatalf("age feature = %v", out[0])
	}
	if out[1] != 0.2 {
		t.Fatalf("interests feature = %v", out[1])
	}
	if out[3] != 0.7 {
		t.Fatalf("engagement feature = %v", out[3])
	}
	if out[7] != 1.0 {
		t.Fatalf("location flag = %v", out[7])
	}
	for i, v := range out {
		if v < 0 || v > 1 {
			t.Fatalf("feature %d = %v out of [0,1]", i, v)
		}
	}
}

func TestItemNumericFeatures(t *testing.T) {
	item := core.NewItem(core.CategoryMovies, map[string]any{
		"title":  "Inception",
		"genre":  "sci-fi",
		"rating": 8.0,
		"year":   2010,
	})

	out := ItemNumericFeatures(item)
	if out[0] != 0.8 {
		t.Fatalf("rating feature = %v", out[0])
	}
	if out[1] != 1.0 {
		t.Fatalf("has-rating flag = %v", out[1])
	}
	if out[7] != 1.0 {
		t.Fatalf("has-genre flag = %v", out[7])
	}

	empty := ItemNumericFeatures(core.NewItem(core.CategoryPlaces, map[string]any{}))
	for i, v := range empty {
		if i == 6 {
			continue // token 数特征
		}
		if v != 0 {
			t.Fatalf("empty item feature %d = %v", i, v)
		}
	}
}

func TestReleaseAgeYears(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	movie := core.NewItem(core.CategoryMovies, map[string]any{"year": 2010})
	if age, ok := ReleaseAgeYears(movie, now); !ok || age != 14 {
		t.Fatalf("age = (%v, %v)", age, ok)
	}

	place := core.NewItem(core.CategoryPlaces, map[string]any{"year": 2010})
	if _, ok := ReleaseAgeYears(place, now); ok {
		t.Fatal("places should not have a release age")
	}

	bogus := core.NewItem(core.CategoryMovies, map[string]any{"year": 10})
	if _, ok := ReleaseAgeYears(bogus, now); ok {
		t.Fatal("implausible year should be missing")
	}
}

func TestEventDeltaDays(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	future := core.NewItem(core.CategoryEvents, map[string]any{"date": "2024-06-11"})
	if days, ok := EventDeltaDays(future, now); !ok || days != 10 {
		t.Fatalf("delta = (%v, %v), want 10", days, ok)
	}

	past := core.NewItem(core.CategoryEvents, map[string]any{"start_date": "2024-05-22"})
	if days, ok := EventDeltaDays(past, now); !ok || days != -10 {
		t.Fatalf("delta = (%v, %v), want -10", days, ok)
	}

	movie := core.NewItem(core.CategoryMovies, map[string]any{"date": "2024-06-11"})
	if _, ok := EventDeltaDays(movie, now); ok {
		t.Fatal("movies should not have an event delta")
	}

	noDate := core.NewItem(core.CategoryEvents, map[string]any{})
	if _, ok := EventDeltaDays(noDate, now); ok {
		t.Fatal("event without date should be missing")
	}
}
