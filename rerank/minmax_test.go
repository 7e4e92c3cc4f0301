package rerank

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/scorekit/core"
)

func scored(title string, raw float64) *core.Item {
	item := core.NewItem(core.CategoryMovies, map[string]any{"title": title})
	item.Score = raw
	return item
}

func TestMinMaxNormalization(t *testing.T) {
	node := NewMinMaxNode()
	items := []*core.Item{
		scored("low", 0.2),
		scored("mid", 0.5),
		scored("high", 0.8),
	}

	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatal(err)
	}

	// 降序排序后：high=1.00, mid=0.55, low=0.10
	wants := []struct {
		title string
		score float64
	}{
		{"high", 1.00},
		{"mid", 0.55},
		{"low", 0.10},
	}
	for i, want := range wants {
		if got := out[i]; got.Identifier() != want.title || got.RankingScore != want.score {
			t.Fatalf("out[%d] = %s %.2f, want %s %.2f",
				i, got.Identifier(), got.RankingScore, want.title, want.score)
		}
	}
}

func TestMinMaxAllEqual(t *testing.T) {
	node := NewMinMaxNode()
	items := []*core.Item{scored("a", 0.7), scored("b", 0.7), scored("c", 0.7)}

	out, _ := node.Process(context.Background(), nil, items)
	for i, item := range out {
		if item.RankingScore != NormalizedFlat {
			t.Fatalf("flat score = %v, want %v", item.RankingScore, NormalizedFlat)
		}
		// 同分必须保持输入顺序（稳定排序）
		if item.Identifier() != []string{"a", "b", "c"}[i] {
			t.Fatalf("order changed: out[%d] = %s", i, item.Identifier())
		}
	}
}

func TestMinMaxSingleItem(t *testing.T) {
	node := NewMinMaxNode()
	out, _ := node.Process(context.Background(), nil, []*core.Item{scored("only", 1.2)})
	if out[0].RankingScore != NormalizedFlat {
		t.Fatalf("single item score = %v, want %v", out[0].RankingScore, NormalizedFlat)
	}
}

func TestMinMaxWritesBackAttrs(t *testing.T) {
	node := NewMinMaxNode()
	items := []*core.Item{scored("a", 0.2), scored("b", 1.0)}

	out, _ := node.Process(context.Background(), nil, items)
	for _, item := range out {
		got, ok := item.Attrs["ranking_score"].(float64)
		if !ok || got != item.RankingScore {
			t.Fatalf("attrs ranking_score = %v, item = %v", item.Attrs["ranking_score"], item.RankingScore)
		}
		if _, ok := item.Labels["ranking_score"]; !ok {
			t.Fatal("ranking_score label missing")
		}
	}
}

func TestMinMaxRounding(t *testing.T) {
	node := NewMinMaxNode()
	items := []*core.Item{scored("a", 0.0), scored("b", 0.1), scored("c", 0.3)}

	out, _ := node.Process(context.Background(), nil, items)
	for _, item := range out {
		scaled := item.RankingScore * 100
		if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			t.Fatalf("score %v not rounded to 2 decimals", item.RankingScore)
		}
	}
}

func TestMinMaxEmpty(t *testing.T) {
	node := NewMinMaxNode()
	out, err := node.Process(context.Background(), nil, nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("empty input: out=%v err=%v", out, err)
	}
}
