package pipeline

import (
	"context"

	"github.com/rushteam/scorekit/core"
)

// Pipeline 是 scorekit 的核心抽象：把一个类目的打分逻辑拆成可组合的 Node 链
// （Filter → Score → Normalize）。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
