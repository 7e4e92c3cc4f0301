package core

import (
	"strings"

	"github.com/rushteam/scorekit/pkg/conv"
	"github.com/rushteam/scorekit/pkg/utils"
)

// Item 是打分链路中的统一承载结构：异构属性、分数、标签。
// Attrs 由调用方传入并持有（服务层的原始 JSON 解码结果），本库只读取其中字段，
// 打分完成后把 ranking_score 写回 Attrs，调用方拿到的仍是同一份结构。
// Labels 用于解释与观测；Score 是归一化前的 raw score，RankingScore 是最终序分。
type Item struct {
	Category Category
	Attrs    map[string]any

	// Score 是未归一化的 raw score，范围 [0.0, 1.5]
	Score float64

	// RankingScore 是类目内 min-max 归一化后的最终分，范围 [0.1, 1.0]
	RankingScore float64

	Labels map[string]utils.Label
}

// NewItem 创建一个候选物品。attrs 为 nil 时初始化为空 map，避免调用方判空。
func NewItem(category Category, attrs map[string]any) *Item {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	return &Item{
		Category: category,
		Attrs:    attrs,
		Labels:   make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Identifier 返回物品的标识文本（movies/music 的 title，places/events 的 name）。
// 两个字段互为兜底：异构数据里经常串用。
func (it *Item) Identifier() string {
	if s := it.stringAttr(it.Category.IdentifierField()); s != "" {
		return s
	}
	if s := it.stringAttr("title"); s != "" {
		return s
	}
	return it.stringAttr("name")
}

// GenreLike 返回物品的风格文本（genre/type/category，按类目取）。
func (it *Item) GenreLike() string {
	if s := it.stringAttr(it.Category.GenreField()); s != "" {
		return s
	}
	return it.stringAttr("genre")
}

// Text 拼出物品的全文本（标识 + 描述 + 风格 + 关键词），用于向量化与词面匹配。
func (it *Item) Text() string {
	parts := make([]string, 0, 4)
	if s := it.Identifier(); s != "" {
		parts = append(parts, s)
	}
	if s := it.stringAttr("description"); s != "" {
		parts = append(parts, s)
	}
	if s := it.GenreLike(); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, conv.SliceAnyToString(it.Attrs["keywords"])...)
	return strings.Join(parts, " ")
}

// Numeric 对属性做宽松数值解析（兼容 "8.5/10"、"1.2M"、"12,345" 这类脏数据）。
// 解析失败视为特征缺失，返回 (0, false)。
func (it *Item) Numeric(key string) (float64, bool) {
	if it.Attrs == nil {
		return 0, false
	}
	v, ok := it.Attrs[key]
	if !ok {
		return 0, false
	}
	return conv.ParseNumeric(v)
}

// FirstNumeric 按顺序尝试多个属性名，返回第一个能解析出的数值。
// 异构候选里同一语义常有多个字段名（rating/vote_average、popularity/monthly_listeners）。
func (it *Item) FirstNumeric(keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := it.Numeric(k); ok {
			return v, true
		}
	}
	return 0, false
}

func (it *Item) stringAttr(key string) string {
	if it.Attrs == nil {
		return ""
	}
	s, _ := conv.ToString(it.Attrs[key])
	return strings.TrimSpace(s)
}
