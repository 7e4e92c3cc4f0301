// Package rank 实现打分链路的 Score 阶段：
// 模型相似度 + 物品先验 + 偏好词面 boost 融合为 raw score。
package rank

import "github.com/rushteam/scorekit/core"

// 先验各分量的默认参数。
const (
	// DefaultRatingPriorCap 是评分先验的绝对值上限
	DefaultRatingPriorCap = 0.1

	// DefaultPopularityPriorCap 是热度先验的上限
	DefaultPopularityPriorCap = 0.08

	// DefaultPopularityDivisor 把热度计数压到先验量级（1e6 听众 → 0.1，再被 cap 截断）
	DefaultPopularityDivisor = 1e7

	// 距离先验：近处给大加成，中距离给小加成
	DefaultNearDistance = 5.0
	DefaultNearBonus    = 0.08
	DefaultMidDistance  = 20.0
	DefaultMidBonus     = 0.04
)

// ratingAttrs 与 popularityAttrs 是异构候选里承载同一语义的字段名序列。
var (
	ratingAttrs     = []string{"rating", "vote_average", "score"}
	popularityAttrs = []string{"popularity", "monthly_listeners", "listeners", "ratings_count", "review_count"}
	distanceAttrs   = []string{"distance_from_user", "distance"}
)

// PriorsEngine 计算与用户无关的物品质量先验。
//
// 三个分量相加：评分偏离量表中点（有符号，差评是负先验）、
// 热度（只加不减）、地理邻近度（只对带距离的物品生效）。
// 字段缺失或解析失败时对应分量为 0，先验永远不会让打分失败。
type PriorsEngine struct {
	RatingCap         float64
	PopularityCap     float64
	PopularityDivisor float64
	NearDistance      float64
	NearBonus         float64
	MidDistance       float64
	MidBonus          float64
}

// NewPriorsEngine 返回默认参数的先验引擎。
func NewPriorsEngine() *PriorsEngine {
	return &PriorsEngine{
		RatingCap:         DefaultRatingPriorCap,
		PopularityCap:     DefaultPopularityPriorCap,
		PopularityDivisor: DefaultPopularityDivisor,
		NearDistance:      DefaultNearDistance,
		NearBonus:         DefaultNearBonus,
		MidDistance:       DefaultMidDistance,
		MidBonus:          DefaultMidBonus,
	}
}

// Prior 返回物品先验，绝对值量级约 [-0.1, 0.26]。
func (p *PriorsEngine) Prior(item *core.Item) float64 {
	if item == nil {
		return 0
	}
	return p.ratingPrior(item) + p.popularityPrior(item) + p.proximityPrior(item)
}

// ratingPrior 把评分映射为有符号先验：超过量表中点加分，低于中点减分。
// 10 分制与 5 分制共用一个相对公式，满分先验恰好等于 RatingCap。
func (p *PriorsEngine) ratingPrior(item *core.Item) float64 {
	rating, ok := item.FirstNumeric(ratingAttrs...)
	if !ok {
		return 0
	}
	scale := item.Category.RatingScale()
	midpoint := scale / 2
	prior := (rating - midpoint) / (scale * 5)
	if prior > p.RatingCap {
		return p.RatingCap
	}
	if prior < -p.RatingCap {
		return -p.RatingCap
	}
	return prior
}

// popularityPrior 把热度计数线性压缩并截断。热度只加分：冷门不是差的证据。
func (p *PriorsEngine) popularityPrior(item *core.Item) float64 {
	value, ok := item.FirstNumeric(popularityAttrs...)
	if !ok || value <= 0 {
		return 0
	}
	prior := value / p.PopularityDivisor
	if prior > p.PopularityCap {
		return p.PopularityCap
	}
	return prior
}

// proximityPrior 对带距离字段的物品（places 等）给邻近加成，两档阶梯。
func (p *PriorsEngine) proximityPrior(item *core.Item) float64 {
	distance, ok := item.FirstNumeric(distanceAttrs...)
	if !ok || distance < 0 {
		return 0
	}
	switch {
	case distance < p.NearDistance:
		return p.NearBonus
	case distance < p.MidDistance:
		return p.MidBonus
	}
	return 0
}
