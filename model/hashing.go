// Package model 提供 core.Scorer 的两种实现：始终可用的哈希兜底打分器，
// 以及可选的双塔打分器。选择在服务启动时做一次（见 Select），热路径不探测。
package model

import (
	"context"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/embedding"
	"github.com/rushteam/scorekit/feature"
)

// HashingScorer 是确定性的兜底打分器：
// 用户/物品各自构建 128 维哈希 embedding，相似度取余弦，范围 [-1, 1]。
// 无状态、无 I/O，任何环境下都可用，也是双塔路径所有失败的降级目标。
type HashingScorer struct{}

// NewHashingScorer 创建哈希打分器。
func NewHashingScorer() *HashingScorer {
	return &HashingScorer{}
}

func (s *HashingScorer) Name() string { return "hashing" }

// UserVector 构建用户的 128 维哈希 embedding，一次请求内复用。
func (s *HashingScorer) UserVector(_ context.Context, rctx *core.RecommendContext) ([]float64, error) {
	return embedding.BuildUser(rctx), nil
}

// Score 计算用户向量与物品 embedding 的余弦相似度。
func (s *HashingScorer) Score(_ context.Context, user []float64, item *core.Item) (float64, error) {
	return feature.CosineSimilarity(user, embedding.BuildItem(item)), nil
}

var _ core.Scorer = (*HashingScorer)(nil)
