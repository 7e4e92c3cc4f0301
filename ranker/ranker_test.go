package ranker

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/filter"
	"github.com/rushteam/scorekit/model"
	"github.com/rushteam/scorekit/rank"
)

func rankContext() *core.RecommendContext {
	now := time.Now()
	return &core.RecommendContext{
		UserID: "u1",
		User: &core.UserProfile{
			UserID:    "u1",
			Age:       29,
			Interests: []string{"sci-fi", "jazz"},
		},
		History: core.InteractionHistory{
			core.CategoryMovies: {
				{Title: "Inception", Genre: "sci-fi", Action: "liked",
					Timestamp: now.AddDate(0, 0, -2).Format(time.RFC3339)},
				{Title: "The Notebook", Genre: "romance", Action: "disliked",
					Timestamp: now.AddDate(0, 0, -5).Format(time.RFC3339)},
			},
		},
	}
}

func TestRankNeverFailsOnDegenerateInput(t *testing.T) {
	r := New()
	ctx := context.Background()

	tests := []struct {
		name       string
		rctx       *core.RecommendContext
		candidates map[core.Category][]*core.Item
	}{
		{"no candidates", rankContext(), map[core.Category][]*core.Item{}},
		{"empty category", rankContext(), map[core.Category][]*core.Item{core.CategoryMovies: {}}},
		{
			"attribute-free item",
			rankContext(),
			map[core.Category][]*core.Item{
				core.CategoryMovies: {core.NewItem(core.CategoryMovies, map[string]any{})},
			},
		},
		{
			"no history no profile",
			&core.RecommendContext{UserID: "u2"},
			map[core.Category][]*core.Item{
				core.CategoryMusic: {core.NewItem(core.CategoryMusic, map[string]any{"title": "X"})},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Rank(ctx, tt.rctx, tt.candidates)
			if err != nil {
				t.Fatalf("rank must not fail: %v", err)
			}
			for _, items := range out {
				for _, item := range items {
					if item.Score < rank.RawScoreMin || item.Score > rank.RawScoreMax {
						t.Fatalf("raw score %v out of range", item.Score)
					}
				}
			}
		})
	}
}

func TestRankPreferenceOrdering(t *testing.T) {
	r := New()
	candidates := map[core.Category][]*core.Item{
		core.CategoryMovies: {
			core.NewItem(core.CategoryMovies, map[string]any{
				"title": "Interstellar", "genre": "sci-fi", "description": "space sci-fi epic",
			}),
			core.NewItem(core.CategoryMovies, map[string]any{
				"title": "Another Notebook", "genre": "romance", "description": "romance drama",
			}),
		},
	}

	out, err := r.Rank(context.Background(), rankContext(), candidates)
	if err != nil {
		t.Fatal(err)
	}

	movies := out[core.CategoryMovies]
	if len(movies) != 2 {
		t.Fatalf("movies = %d", len(movies))
	}
	if movies[0].Identifier() != "Interstellar" {
		t.Fatalf("top = %s, want the sci-fi movie for a sci-fi liker", movies[0].Identifier())
	}
	if movies[0].RankingScore < movies[1].RankingScore {
		t.Fatal("output must be sorted descending")
	}
	for _, m := range movies {
		if m.RankingScore < 0.1 || m.RankingScore > 1.0 {
			t.Fatalf("ranking score %v out of [0.1, 1.0]", m.RankingScore)
		}
	}
}

func TestRankCategoriesAreIndependent(t *testing.T) {
	r := New()
	candidates := map[core.Category][]*core.Item{
		core.CategoryMovies: {
			core.NewItem(core.CategoryMovies, map[string]any{"title": "A", "genre": "sci-fi"}),
			core.NewItem(core.CategoryMovies, map[string]any{"title": "B", "genre": "romance"}),
		},
		core.CategoryPlaces: {
			core.NewItem(core.CategoryPlaces, map[string]any{"name": "Solo Place"}),
		},
	}

	out, err := r.Rank(context.Background(), rankContext(), candidates)
	if err != nil {
		t.Fatal(err)
	}

	// 单元素类目归一为中性 0.5，不受其它类目分布影响
	places := out[core.CategoryPlaces]
	if len(places) != 1 || places[0].RankingScore != 0.5 {
		t.Fatalf("places = %+v", places)
	}
}

func TestRankWithSeenFilter(t *testing.T) {
	r := New(WithFilters(filter.NewSeenFilter()))
	candidates := map[core.Category][]*core.Item{
		core.CategoryMovies: {
			core.NewItem(core.CategoryMovies, map[string]any{"title": "Inception"}),
			core.NewItem(core.CategoryMovies, map[string]any{"title": "Arrival"}),
		},
	}

	out, err := r.Rank(context.Background(), rankContext(), candidates)
	if err != nil {
		t.Fatal(err)
	}
	movies := out[core.CategoryMovies]
	if len(movies) != 1 || movies[0].Identifier() != "Arrival" {
		t.Fatalf("movies = %+v", movies)
	}
}

func TestRankWithTowerScorer(t *testing.T) {
	scorer, err := model.NewTowerScorer(42)
	if err != nil {
		t.Fatal(err)
	}
	r := New(WithScorer(scorer), WithFallback(model.NewHashingScorer()))

	candidates := map[core.Category][]*core.Item{
		core.CategoryMusic: {
			core.NewItem(core.CategoryMusic, map[string]any{"title": "Blue Train", "genre": "jazz"}),
			core.NewItem(core.CategoryMusic, map[string]any{"title": "Noise", "genre": "industrial"}),
		},
	}

	out, err := r.Rank(context.Background(), rankContext(), candidates)
	if err != nil {
		t.Fatal(err)
	}
	music := out[core.CategoryMusic]
	if len(music) != 2 {
		t.Fatalf("music = %d", len(music))
	}
	if music[0].Labels["rank_model"].Value != "two_tower" {
		t.Fatalf("rank_model = %q", music[0].Labels["rank_model"].Value)
	}
}

func TestRankHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New()
	_, err := r.Rank(ctx, rankContext(), map[core.Category][]*core.Item{
		core.CategoryMovies: {core.NewItem(core.CategoryMovies, map[string]any{"title": "X"})},
	})
	if err == nil {
		t.Fatal("canceled context should surface an error")
	}
}
