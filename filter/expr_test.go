package filter

import (
	"context"
	"testing"

	"github.com/rushteam/scorekit/core"
)

func TestExprFilter(t *testing.T) {
	ctx := context.Background()
	rctx := &core.RecommendContext{UserID: "u1"}

	closed := core.NewItem(core.CategoryPlaces, map[string]any{
		"name": "Old Cafe", "status": "closed",
	})
	open := core.NewItem(core.CategoryPlaces, map[string]any{
		"name": "New Cafe", "status": "open",
	})

	f := NewExprFilter(`attrs.status == "closed"`)

	if got, err := f.ShouldFilter(ctx, rctx, closed); err != nil || !got {
		t.Fatalf("closed place: (%v, %v), want filtered", got, err)
	}
	if got, err := f.ShouldFilter(ctx, rctx, open); err != nil || got {
		t.Fatalf("open place: (%v, %v), want kept", got, err)
	}
}

func TestExprFilterCategory(t *testing.T) {
	f := NewExprFilter(`item.category == "events"`)
	ctx := context.Background()

	event := core.NewItem(core.CategoryEvents, map[string]any{"name": "X"})
	movie := core.NewItem(core.CategoryMovies, map[string]any{"title": "X"})

	if got, _ := f.ShouldFilter(ctx, nil, event); !got {
		t.Fatal("event should match category expression")
	}
	if got, _ := f.ShouldFilter(ctx, nil, movie); got {
		t.Fatal("movie should not match")
	}
}

func TestExprFilterEmptyAndInvalid(t *testing.T) {
	ctx := context.Background()
	item := core.NewItem(core.CategoryMovies, map[string]any{"title": "X"})

	empty := NewExprFilter("")
	if got, err := empty.ShouldFilter(ctx, nil, item); err != nil || got {
		t.Fatal("empty expression should keep everything")
	}

	invalid := NewExprFilter("not a valid ((( expression")
	if _, err := invalid.ShouldFilter(ctx, nil, item); err == nil {
		t.Fatal("invalid expression should surface an error")
	}
}
