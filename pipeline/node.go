package pipeline

import (
	"context"

	"github.com/rushteam/scorekit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindFilter    Kind = "filter"    // 过滤阶段：剔除不符合约束的候选
	KindScore     Kind = "score"     // 打分阶段：计算每个候选的 raw score
	KindNormalize Kind = "normalize" // 归一阶段：类目内 min-max 归一并排序
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，过滤可截断、归一可重排。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
