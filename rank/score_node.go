package rank

import (
	"context"
	"fmt"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/pipeline"
	"github.com/rushteam/scorekit/pkg/utils"
)

// raw score 融合公式的常量。
const (
	// RawScoreBase 是基础分偏置
	RawScoreBase = 0.1

	// SimilarityWeight 把 [0,1] 的相似度压到 [0, 1.4] 区间
	SimilarityWeight = 1.4

	// RawScoreMin / RawScoreMax 是 raw score 的钳位范围
	RawScoreMin = 0.0
	RawScoreMax = 1.5

	// NeutralRawScore 是单条打分失败时的中性兜底分
	NeutralRawScore = 0.5
)

// ScoreNode 是打分阶段的 Node：对每个候选计算 raw score 并写入 Item.Score。
//
// raw = clamp(0.1 + 1.4 * (sim+1)/2 + prior + boost, 0.0, 1.5)
//
// 其中 sim 是打分器给出的余弦相似度（[-1,1]），prior 是物品质量先验，
// boost 是偏好词面加成。用户向量一次请求只算一次，逐条复用。
//
// 失败语义是 fail-soft：主打分器的用户向量失败则整体切到兜底打分器；
// 单条物品打分出错或 panic 则该条取中性分 0.5，绝不让一条脏数据拖垮整批。
// Process 不返回 error。
type ScoreNode struct {
	Scorer   core.Scorer
	Fallback core.Scorer
	Priors   *PriorsEngine
	Booster  *PreferenceBooster
}

// NewScoreNode 创建打分 Node。scorer 由启动时的模型选择逻辑注入；
// fallback 为 nil 时使用 scorer 自身（即没有独立兜底）。
func NewScoreNode(scorer, fallback core.Scorer) *ScoreNode {
	return &ScoreNode{
		Scorer:   scorer,
		Fallback: fallback,
		Priors:   NewPriorsEngine(),
		Booster:  NewPreferenceBooster(),
	}
}

func (n *ScoreNode) Name() string { return "score" }

func (n *ScoreNode) Kind() pipeline.Kind { return pipeline.KindScore }

func (n *ScoreNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	scorer, user := n.resolveUser(ctx, rctx)

	for _, item := range items {
		if item == nil {
			continue
		}
		raw, modelName := n.scoreOne(ctx, scorer, rctx, user, item)
		item.Score = raw
		item.PutLabel("rank_model", utils.Label{Value: modelName, Source: "score"})
	}
	return items, nil
}

// resolveUser 计算一次用户向量；主打分器失败时切到兜底打分器。
// 两者都失败时返回 (nil, nil)，逐条打分将全部落到中性分。
func (n *ScoreNode) resolveUser(ctx context.Context, rctx *core.RecommendContext) (core.Scorer, []float64) {
	if user, ok := n.userVector(ctx, n.Scorer, rctx); ok {
		return n.Scorer, user
	}
	if n.Fallback == nil || n.Fallback == n.Scorer {
		return nil, nil
	}
	if user, ok := n.userVector(ctx, n.Fallback, rctx); ok {
		if rctx != nil {
			rctx.PutLabel("scorer_fallback", utils.Label{Value: n.Fallback.Name(), Source: "score"})
		}
		return n.Fallback, user
	}
	return nil, nil
}

func (n *ScoreNode) userVector(ctx context.Context, scorer core.Scorer, rctx *core.RecommendContext) (user []float64, ok bool) {
	if scorer == nil {
		return nil, false
	}
	defer func() {
		if r := recover(); r != nil {
			user, ok = nil, false
		}
	}()
	user, err := scorer.UserVector(ctx, rctx)
	if err != nil {
		return nil, false
	}
	return user, true
}

// scoreOne 计算单条候选的 raw score。相似度、先验、boost 任何一步 panic
// 都被这里的 recover 吸收，该条取中性分并打上降级标签。
func (n *ScoreNode) scoreOne(
	ctx context.Context,
	scorer core.Scorer,
	rctx *core.RecommendContext,
	user []float64,
	item *core.Item,
) (raw float64, modelName string) {
	defer func() {
		if r := recover(); r != nil {
			raw = NeutralRawScore
			modelName = "neutral"
			item.PutLabel("score_degraded", utils.Label{Value: fmt.Sprint(r), Source: "score"})
		}
	}()

	if scorer == nil {
		return NeutralRawScore, "neutral"
	}
	sim, err := scorer.Score(ctx, user, item)
	if err != nil {
		item.PutLabel("score_degraded", utils.Label{Value: err.Error(), Source: "score"})
		return NeutralRawScore, "neutral"
	}

	raw = RawScoreBase +
		SimilarityWeight*(sim+1)/2 +
		n.Priors.Prior(item) +
		n.Booster.Boost(rctx, item)
	if raw < RawScoreMin {
		raw = RawScoreMin
	}
	if raw > RawScoreMax {
		raw = RawScoreMax
	}
	return raw, scorer.Name()
}

var _ pipeline.Node = (*ScoreNode)(nil)
