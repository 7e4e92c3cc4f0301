// Package scorekit 是一个异构候选打分与排序工具包（Scoring Kit）。
//
// 设计要点：
// - Pipeline-first: 打分逻辑通过 Node 串联（Filter → Score → Normalize）
// - Fail-soft: 打分永远给出分数，模型失败降级、单条失败取中性分
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测
package scorekit

import "github.com/rushteam/scorekit/pipeline"

// 轻量 facade：便于用户直接 import "scorekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindFilter    = pipeline.KindFilter
	KindScore     = pipeline.KindScore
	KindNormalize = pipeline.KindNormalize
)
