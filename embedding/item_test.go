package embedding

import (
	"math"
	"testing"
	"time"

	"github.com/rushteam/scorekit/core"
)

func TestBuildItemEmpty(t *testing.T) {
	if got := BuildItem(nil); len(got) != Dim || norm(got) != 0 {
		t.Fatal("nil item should give zero vector")
	}

	empty := BuildItem(core.NewItem(core.CategoryMovies, map[string]any{}))
	if norm(empty) != 0 {
		t.Fatal("attribute-free item should give zero vector")
	}
}

func TestBuildItemNormalized(t *testing.T) {
	item := core.NewItem(core.CategoryMovies, map[string]any{
		"title":  "Interstellar",
		"genre":  "sci-fi",
		"rating": "8.7/10",
	})
	vec := BuildItem(item)
	if math.Abs(norm(vec)-1.0) > 1e-9 {
		t.Fatalf("norm = %v, want 1", norm(vec))
	}
}

func TestBuildItemDirtyNumericsIgnored(t *testing.T) {
	clean := core.NewItem(core.CategoryMovies, map[string]any{"title": "X"})
	dirty := core.NewItem(core.CategoryMovies, map[string]any{
		"title":      "X",
		"rating":     "n/a",
		"popularity": "unknown",
	})

	a, b := BuildItem(clean), BuildItem(dirty)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("unparseable numerics must not change the embedding")
		}
	}
}

func TestBuildItemRatingScalePerCategory(t *testing.T) {
	now := time.Now()
	movie := core.NewItem(core.CategoryMovies, map[string]any{"title": "X", "rating": 4.6})
	place := core.NewItem(core.CategoryPlaces, map[string]any{"name": "X", "rating": 4.6})

	// 4.6 在 10 分制里是低分桶，在 5 分制里是高分桶，向量必须不同
	mv, pv := BuildItemAt(movie, now), BuildItemAt(place, now)
	same := true
	for i := range mv {
		if mv[i] != pv[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("same rating on different scales should bucket differently")
	}
}

func TestBuildItemEventDelta(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	future := core.NewItem(core.CategoryEvents, map[string]any{
		"name": "Jazz Night", "date": "2024-06-15",
	})
	past := core.NewItem(core.CategoryEvents, map[string]any{
		"name": "Jazz Night", "date": "2024-05-15",
	})

	fv, pv := BuildItemAt(future, now), BuildItemAt(past, now)
	same := true
	for i := range fv {
		if fv[i] != pv[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("future and past events should embed differently")
	}
}
