// Package builders 注册内置 Node 的配置构建器。
// 只需匿名 import 本包即可让配置文件驱动 filter/score/normalize 的组装。
package builders

import (
	"fmt"

	"github.com/rushteam/scorekit/config"
	"github.com/rushteam/scorekit/filter"
	"github.com/rushteam/scorekit/model"
	"github.com/rushteam/scorekit/pipeline"
	"github.com/rushteam/scorekit/pkg/conv"
	"github.com/rushteam/scorekit/rank"
	"github.com/rushteam/scorekit/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("score", BuildScoreNode)
	config.Register("normalize.minmax", BuildMinMaxNode)
}

// BuildFilterNode 构建过滤 Node。配置形如：
//
//	type: filter
//	config:
//	  filters:
//	    - type: seen
//	      disliked_only: true
//	    - type: expr
//	      expr: 'attrs.status == "closed"'
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "seen":
			f := filter.NewSeenFilter()
			f.FilterDislikedOnly = conv.ConfigGet(filterMap, "disliked_only", false)
			filters = append(filters, f)
		case "expr":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("expr filter requires expr")
			}
			filters = append(filters, filter.NewExprFilter(expr))
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return filter.NewFilterNode(filters...), nil
}

// BuildScoreNode 构建打分 Node。打分器选择与双塔 seed 走 model.Select：
//
//	type: score
//	config:
//	  enable_tower: true
//	  tower_seed: 20240817
func BuildScoreNode(cfg map[string]any) (pipeline.Node, error) {
	scorer := model.Select(model.SelectConfig{
		EnableTower: conv.ConfigGet(cfg, "enable_tower", false),
		TowerSeed:   conv.ConfigGetInt64(cfg, "tower_seed", 0),
	})
	node := rank.NewScoreNode(scorer, model.NewHashingScorer())
	if v := conv.ConfigGetFloat64(cfg, "boost_per_match", 0); v > 0 {
		node.Booster.PerMatch = v
	}
	if lex := conv.SliceAnyToString(cfg["boost_lexicon"]); len(lex) > 0 {
		node.Booster.Lexicon = lex
	}
	return node, nil
}

// BuildMinMaxNode 构建归一化 Node（无配置项）。
func BuildMinMaxNode(_ map[string]any) (pipeline.Node, error) {
	return rerank.NewMinMaxNode(), nil
}
