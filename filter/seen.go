package filter

import (
	"context"
	"strings"

	"github.com/rushteam/scorekit/core"
)

// SeenFilter 过滤用户已经交互过的候选：历史里出现过的标识不再推荐。
//
// 匹配按类目内的标识文本（title/name）小写精确比对。标识为空的候选
// 无从判断，一律保留。明确表达过负反馈（disliked）的物品也会被滤掉，
// 打分阶段的负相似度只能压低它，滤掉才是正确语义。
type SeenFilter struct {
	// FilterDislikedOnly 为 true 时只过滤负反馈，浏览过的仍可重复推荐
	FilterDislikedOnly bool
}

// NewSeenFilter 创建交互历史去重过滤器。
func NewSeenFilter() *SeenFilter {
	return &SeenFilter{}
}

func (f *SeenFilter) Name() string {
	return "filter.seen"
}

func (f *SeenFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil {
		return false, nil
	}

	id := strings.ToLower(item.Identifier())
	if id == "" {
		return false, nil
	}

	for _, r := range rctx.CategoryHistory(item.Category) {
		if f.FilterDislikedOnly && r.Action != "disliked" {
			continue
		}
		if strings.ToLower(r.Identifier()) == id {
			return true, nil
		}
	}
	return false, nil
}
