// Package rerank 实现归一阶段：把 raw score 映射到最终的 ranking_score 并排序。
package rerank

import (
	"context"
	"math"
	"sort"
	"strconv"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/pipeline"
	"github.com/rushteam/scorekit/pkg/utils"
)

// 归一化输出区间与并列时的中性值。
const (
	NormalizedMin  = 0.1
	NormalizedMax  = 1.0
	NormalizedFlat = 0.5
)

// MinMaxNode 在类目内做 min-max 归一化并按分数降序排序。
//
// normalized = 0.1 + 0.9 * (raw - min) / (max - min)，保留两位小数。
// 全员同分时 (max == min) 统一取 0.5：同分没有序信息，不该被映射到端点。
// 排序是稳定的，同分保持输入顺序。归一分同时写回 Attrs["ranking_score"]，
// 调用方序列化 Attrs 即可拿到最终分。
//
// 归一只在同一次调用的 items 内进行：不同类目、不同请求的分数互不可比。
type MinMaxNode struct{}

func NewMinMaxNode() *MinMaxNode { return &MinMaxNode{} }

func (n *MinMaxNode) Name() string { return "normalize.minmax" }

func (n *MinMaxNode) Kind() pipeline.Kind { return pipeline.KindNormalize }

func (n *MinMaxNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	minRaw, maxRaw := items[0].Score, items[0].Score
	for _, item := range items[1:] {
		if item.Score < minRaw {
			minRaw = item.Score
		}
		if item.Score > maxRaw {
			maxRaw = item.Score
		}
	}

	span := maxRaw - minRaw
	for _, item := range items {
		score := NormalizedFlat
		if span > 0 {
			score = round2(NormalizedMin + (NormalizedMax-NormalizedMin)*(item.Score-minRaw)/span)
		}
		item.RankingScore = score
		item.Attrs["ranking_score"] = score
		item.PutLabel("ranking_score", utils.Label{
			Value:  strconv.FormatFloat(score, 'f', 2, 64),
			Source: "normalize",
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RankingScore > items[j].RankingScore
	})
	return items, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var _ pipeline.Node = (*MinMaxNode)(nil)
