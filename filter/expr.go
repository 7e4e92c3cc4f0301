package filter

import (
	"context"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/pkg/dsl"
)

// ExprFilter 是表达式过滤器：用 CEL 表达式描述过滤规则，命中即过滤。
//
// 例如：
//   - `attrs.status != null && attrs.status == "closed"` 过滤已停业的地点
//   - `item.category == "events" && attrs.date == null` 过滤无日期的活动
//
// 表达式求值出错时保留候选（过滤规则坏了不应该清空召回）。
type ExprFilter struct {
	// Expr 是 CEL 过滤表达式，空表达式不过滤任何候选
	Expr string
}

// NewExprFilter 创建表达式过滤器。
func NewExprFilter(expr string) *ExprFilter {
	return &ExprFilter{Expr: expr}
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}

	hit, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return hit, nil
}
