package core

import (
	"strings"

	"github.com/rushteam/scorekit/pkg/conv"
)

// InteractionRecord 是一条用户历史交互：对某个物品做过什么、什么时候。
// 字段与候选物品同构（movies/music 用 Title，places/events 用 Name），
// 原始数据用 map 传入时通过 RecordFromAttrs 归一。
type InteractionRecord struct {
	Title     string `json:"title,omitempty"`
	Name      string `json:"name,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Action    string `json:"action,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Identifier 返回记录的标识文本（title 与 name 互为兜底）。
func (r InteractionRecord) Identifier() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Text 拼出记录的可向量化文本。
func (r InteractionRecord) Text() string {
	parts := make([]string, 0, 2)
	if s := r.Identifier(); s != "" {
		parts = append(parts, s)
	}
	if r.Genre != "" {
		parts = append(parts, r.Genre)
	}
	return strings.Join(parts, " ")
}

// RecordFromAttrs 从服务层的原始 map 构建一条交互记录。
// genre/type/category 三个字段都会被认作风格字段（历史数据与候选同样异构）。
func RecordFromAttrs(attrs map[string]any) InteractionRecord {
	get := func(key string) string {
		s, _ := conv.ToString(attrs[key])
		return strings.TrimSpace(s)
	}
	genre := get("genre")
	if genre == "" {
		genre = get("type")
	}
	if genre == "" {
		genre = get("category")
	}
	return InteractionRecord{
		Title:     get("title"),
		Name:      get("name"),
		Genre:     genre,
		Action:    strings.ToLower(get("action")),
		Timestamp: get("timestamp"),
	}
}

// InteractionHistory 是类目 → 交互记录列表的映射，插入顺序无语义。
type InteractionHistory map[Category][]InteractionRecord

// InteractionMeta 是交互元信息（可缺失），目前只承载 engagement score。
// 生产环境通常由特征服务（见 FeatureService）在线补齐。
type InteractionMeta struct {
	EngagementScore *float64
}

// 交互行为权重表。正向行为放大贡献，负向行为反向抑制；未知行为给弱正权重，
// 避免新行为类型上线时历史被整体忽略。
const UnknownActionWeight = 0.2

var actionWeights = map[string]float64{
	"liked":    2.0,
	"saved":    1.5,
	"shared":   1.2,
	"clicked":  0.8,
	"view":     0.4,
	"ignored":  -1.0,
	"disliked": -1.5,
}

// ActionWeight 返回行为的贡献权重，未知行为返回 UnknownActionWeight。
func ActionWeight(action string) float64 {
	if w, ok := actionWeights[strings.ToLower(strings.TrimSpace(action))]; ok {
		return w
	}
	return UnknownActionWeight
}
