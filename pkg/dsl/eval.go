package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/scorekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("attrs", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是候选规则表达式的解释器，使用 CEL (Common Expression Language) 实现。
//
// 表达式语法（CEL 标准语法）：
//   - 属性：attrs.genre == "jazz" / attrs.rating != null
//   - 分数：item.score > 0.7 / item.ranking_score >= 0.5
//   - 类目：item.category == "movies"
//   - 标签：label.rank_model == "two_tower"
//   - 上下文：rctx.user_id != "" / rctx.params.scene == "home"
//   - 逻辑组合：attrs.genre == "jazz" && item.score > 0.8
//
// 访问不存在的 key 会报错，用 `attrs.key != null` 先检查存在性。
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的表达式解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行表达式，返回布尔结果。空表达式恒为 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]any {
	labels := make(map[string]any)
	var attrs map[string]any
	item := map[string]any{}

	if e.item != nil {
		for k, v := range e.item.Labels {
			// label.rank_model 直接取 value，source 不参与表达式
			labels[k] = v.Value
		}
		attrs = e.item.Attrs
		item = map[string]any{
			"category":      string(e.item.Category),
			"score":         e.item.Score,
			"ranking_score": e.item.RankingScore,
			"identifier":    e.item.Identifier(),
		}
	}

	// 固定提供 user_id/params，nil 上下文也能安全求值
	rctx := map[string]any{
		"user_id": "",
		"params":  map[string]any{},
	}
	if e.rctx != nil {
		rctx["user_id"] = e.rctx.UserID
		if e.rctx.Params != nil {
			rctx["params"] = e.rctx.Params
		}
	}

	return map[string]any{
		"item":  item,
		"attrs": attrs,
		"label": labels,
		"rctx":  rctx,
	}
}
