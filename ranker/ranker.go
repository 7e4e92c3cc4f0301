// Package ranker 是 scorekit 的编排入口：对异构类目的候选集做并发打分与排序。
package ranker

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/filter"
	"github.com/rushteam/scorekit/model"
	"github.com/rushteam/scorekit/pipeline"
	"github.com/rushteam/scorekit/rank"
	"github.com/rushteam/scorekit/rerank"
)

// Ranker 把每个类目的候选送进同一条 Node 链（Filter → Score → Normalize），
// 类目之间并发执行。打分器在构造时注入并全程复用，Rank 可被并发调用。
//
// 失败语义：Rank 不会因为打分问题返回错误。用户向量失败降级到兜底打分器，
// 单条候选失败取中性分。唯一的错误来源是 ctx 取消。
type Ranker struct {
	scorer   core.Scorer
	fallback core.Scorer
	filters  []filter.Filter
}

// Option 配置 Ranker。
type Option func(*Ranker)

// WithScorer 注入主打分器（不设置时用哈希打分器）。
func WithScorer(s core.Scorer) Option {
	return func(r *Ranker) { r.scorer = s }
}

// WithFallback 注入兜底打分器。
func WithFallback(s core.Scorer) Option {
	return func(r *Ranker) { r.fallback = s }
}

// WithFilters 追加前置过滤器，对所有类目生效。
func WithFilters(filters ...filter.Filter) Option {
	return func(r *Ranker) { r.filters = append(r.filters, filters...) }
}

// New 创建 Ranker。零配置可用：默认哈希打分器、无过滤器。
func New(opts ...Option) *Ranker {
	r := &Ranker{}
	for _, opt := range opts {
		opt(r)
	}
	if r.scorer == nil {
		r.scorer = model.NewHashingScorer()
	}
	if r.fallback == nil {
		r.fallback = model.NewHashingScorer()
	}
	return r
}

// Rank 对各类目候选并发打分并类目内排序，返回 category → 有序 items。
//
// 入参的 items 切片会被就地修改（写 Score/RankingScore/Labels）并重排；
// 空类目原样返回空结果。除 ctx 取消外不返回错误。
func (r *Ranker) Rank(
	ctx context.Context,
	rctx *core.RecommendContext,
	candidates map[core.Category][]*core.Item,
) (map[core.Category][]*core.Item, error) {
	out := make(map[core.Category][]*core.Item, len(candidates))
	if len(candidates) == 0 {
		return out, nil
	}

	var mu sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)

	for category, items := range candidates {
		category, items := category, items
		eg.Go(func() error {
			ranked, err := r.rankCategory(ctx, rctx, items)
			if err != nil {
				return err
			}
			mu.Lock()
			out[category] = ranked
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RankCategory 对单个类目打分排序，语义与 Rank 的单类目分支一致。
func (r *Ranker) RankCategory(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	return r.rankCategory(ctx, rctx, items)
}

func (r *Ranker) rankCategory(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return []*core.Item{}, nil
	}

	nodes := make([]pipeline.Node, 0, 3)
	if len(r.filters) > 0 {
		nodes = append(nodes, filter.NewFilterNode(r.filters...))
	}
	nodes = append(nodes,
		rank.NewScoreNode(r.scorer, r.fallback),
		rerank.NewMinMaxNode(),
	)

	p := &pipeline.Pipeline{Nodes: nodes}
	ranked, err := p.Run(ctx, rctx, items)
	if err != nil {
		return nil, err
	}
	if ranked == nil {
		ranked = []*core.Item{}
	}
	return ranked, nil
}
