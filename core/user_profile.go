package core

import (
	"strings"

	"github.com/rushteam/scorekit/pkg/conv"
)

// UserProfile 是用户画像的不可变快照，按请求传入，打分过程中只读。
//
// 它不是某一个 Node，而是：
//   - 被 embedding 构建、偏好词面 boost 共享
//   - 缺失时打分链路自动退化（只用交互历史与物品先验）
//
// Preferences 保留服务层的原始嵌套结构（map[string]any），本库只做 best-effort
// 提取：key 一律参与向量化，value 中形如 "very likely X" 的偏好线索会被抽出。
type UserProfile struct {
	UserID string

	// 静态属性
	Age       int
	Interests []string

	// 偏好信号（自由结构，来自画像服务）
	Preferences map[string]any
}

// NewUserProfile 创建一个新的用户画像快照。
func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:      userID,
		Interests:   make([]string, 0),
		Preferences: make(map[string]any),
	}
}

// PreferenceEntries 按稳定上限展开偏好 map 的 (key, value 文本) 对。
// 嵌套 map 只下钻一层；条目数以 limit 截断，约束超大画像的成本。
func (p *UserProfile) PreferenceEntries(limit int) []PreferenceEntry {
	if p == nil || len(p.Preferences) == 0 || limit <= 0 {
		return nil
	}
	out := make([]PreferenceEntry, 0, limit)
	var walk func(m map[string]any)
	walk = func(m map[string]any) {
		for k, v := range m {
			if len(out) >= limit {
				return
			}
			switch val := v.(type) {
			case string:
				out = append(out, PreferenceEntry{Key: k, Value: val})
			case map[string]any:
				out = append(out, PreferenceEntry{Key: k})
				walk(val)
			default:
				if s, ok := conv.ToString(v); ok {
					out = append(out, PreferenceEntry{Key: k, Value: s})
				} else {
					out = append(out, PreferenceEntry{Key: k})
				}
			}
		}
	}
	walk(p.Preferences)
	return out
}

// PreferenceEntry 是偏好 map 展开后的一条记录。Value 可能为空（纯结构性 key）。
type PreferenceEntry struct {
	Key   string
	Value string
}

// PreferenceCue 从偏好值里抽取 "very likely <X>" 形式的线索词。
// 画像服务会把推断出的倾向写成这种自由文本，X 即线索（如 "very likely vegan"）。
func PreferenceCue(value string) (string, bool) {
	lower := strings.ToLower(value)
	idx := strings.Index(lower, "very likely ")
	if idx < 0 {
		return "", false
	}
	cue := strings.TrimSpace(lower[idx+len("very likely "):])
	if cue == "" {
		return "", false
	}
	return cue, true
}

// PreferenceCues 收集画像中全部 "very likely" 线索词（按 PreferenceEntries 的上限截断）。
func (p *UserProfile) PreferenceCues(limit int) []string {
	var cues []string
	for _, entry := range p.PreferenceEntries(limit) {
		if cue, ok := PreferenceCue(entry.Value); ok {
			cues = append(cues, cue)
		}
	}
	return cues
}

// LocationSnapshot 是请求时刻的用户位置快照，可缺失。
// 既支持纯字符串城市，也支持结构化 {city: ...} 形式。
type LocationSnapshot struct {
	City string
}

// LocationFromAny 从服务层的原始位置数据构建快照。
// 支持 string、map[string]any{"city": ...}；解析不出城市时返回 nil。
func LocationFromAny(v any) *LocationSnapshot {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil
		}
		return &LocationSnapshot{City: val}
	case map[string]any:
		if city, ok := conv.ToString(val["city"]); ok && city != "" {
			return &LocationSnapshot{City: city}
		}
	case *LocationSnapshot:
		return val
	}
	return nil
}
