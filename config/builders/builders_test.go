package builders

import (
	"context"
	"testing"

	"github.com/rushteam/scorekit/config"
	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/pipeline"
)

func TestRegisteredTypes(t *testing.T) {
	factory := config.DefaultFactory()
	for _, typ := range []string{"filter", "score", "normalize.minmax"} {
		node, err := factory.Build(typ, defaultConfig(typ))
		if err != nil {
			t.Fatalf("build %s: %v", typ, err)
		}
		if node == nil {
			t.Fatalf("build %s returned nil node", typ)
		}
	}
}

func defaultConfig(typ string) map[string]any {
	switch typ {
	case "filter":
		return map[string]any{
			"filters": []any{
				map[string]any{"type": "seen"},
			},
		}
	default:
		return map[string]any{}
	}
}

func TestBuildFilterNodeErrors(t *testing.T) {
	if _, err := BuildFilterNode(map[string]any{}); err == nil {
		t.Fatal("missing filters should error")
	}
	bad := map[string]any{
		"filters": []any{map[string]any{"type": "mystery"}},
	}
	if _, err := BuildFilterNode(bad); err == nil {
		t.Fatal("unknown filter type should error")
	}
	noExpr := map[string]any{
		"filters": []any{map[string]any{"type": "expr"}},
	}
	if _, err := BuildFilterNode(noExpr); err == nil {
		t.Fatal("expr filter without expr should error")
	}
}

func TestConfigDrivenPipeline(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "test"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "score", Config: map[string]any{"enable_tower": false}},
		{Type: "normalize.minmax"},
	}

	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatal(err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatal(err)
	}

	rctx := &core.RecommendContext{
		UserID: "u1",
		User:   &core.UserProfile{UserID: "u1", Interests: []string{"jazz"}},
	}
	items := []*core.Item{
		core.NewItem(core.CategoryMusic, map[string]any{"title": "Blue Train", "genre": "jazz"}),
		core.NewItem(core.CategoryMusic, map[string]any{"title": "Noise", "genre": "industrial"}),
	}

	out, err := p.Run(context.Background(), rctx, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("out = %d", len(out))
	}
	for _, item := range out {
		if item.RankingScore < 0.1 || item.RankingScore > 1.0 {
			t.Fatalf("ranking score %v out of range", item.RankingScore)
		}
	}
}

func TestValidateRejectsUnknownType(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "mystery"}}
	if err := config.ValidatePipelineConfig(cfg); err == nil {
		t.Fatal("unknown type should fail validation")
	}
}
