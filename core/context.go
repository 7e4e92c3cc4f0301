package core

import "github.com/rushteam/scorekit/pkg/utils"

// RecommendContext 承载一次打分请求的用户侧信息，贯穿整个链路透传。
// 除 UserID 外所有字段都可缺失：缺画像、缺位置、缺历史都必须能打出分数。
type RecommendContext struct {
	UserID string

	// User 是用户画像快照（可为 nil）
	User *UserProfile

	// Location 是当前位置快照（可为 nil）
	Location *LocationSnapshot

	// History 是类目维度的交互历史（可为空）
	History InteractionHistory

	// Meta 是交互元信息，如 engagement score（可为 nil）
	Meta *InteractionMeta

	// Labels 是用户级标签，用于解释与策略驱动
	Labels map[string]utils.Label

	// Params 请求级上下文参数（设备、场景、实验桶等），打分核心不依赖，
	// 留给 Filter 表达式与上层策略使用
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

// CategoryHistory 返回某类目的交互历史（可能为 nil）。
func (rctx *RecommendContext) CategoryHistory(c Category) []InteractionRecord {
	if rctx == nil || rctx.History == nil {
		return nil
	}
	return rctx.History[c]
}

// EngagementScore 返回交互元信息中的 engagement score。
func (rctx *RecommendContext) EngagementScore() (float64, bool) {
	if rctx == nil || rctx.Meta == nil || rctx.Meta.EngagementScore == nil {
		return 0, false
	}
	return *rctx.Meta.EngagementScore, true
}
