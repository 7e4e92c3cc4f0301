package feature

import (
	"math"
	"strings"
	"time"
)

// 半衰期 30 天：一个月前的交互贡献减半。
const RecencyHalfLifeDays = 30.0

// NeutralRecencyWeight 是时间戳缺失/非法时的中性权重。
const NeutralRecencyWeight = 0.5

// 时间戳的容错解析格式：RFC3339（含尾部 Z）、无时区（视为 UTC）、纯日期。
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// RecencyWeight 计算交互时间戳的指数衰减权重，范围 [0.1, 1.0]。
//
// w = exp(-ln2 · age_days / 30)，age_days = max(0, now-ts)。
// 对合法时间戳关于 age 单调不增；解析失败或时间戳为空返回中性值 0.5。
func RecencyWeight(timestamp string) float64 {
	return RecencyWeightAt(timestamp, time.Now())
}

// RecencyWeightAt 是 RecencyWeight 的可注入时钟版本，供测试与回放使用。
func RecencyWeightAt(timestamp string, now time.Time) float64 {
	ts, ok := ParseTimestamp(timestamp)
	if !ok {
		return NeutralRecencyWeight
	}
	ageDays := now.Sub(ts).Hours() / 24.0
	if ageDays < 0 {
		ageDays = 0
	}
	w := math.Exp(-math.Ln2 * ageDays / RecencyHalfLifeDays)
	return clamp(w, 0.1, 1.0)
}

// ParseTimestamp 容错解析 ISO-8601 时间戳；无时区信息按 UTC 处理。
func ParseTimestamp(timestamp string) (time.Time, bool) {
	s := strings.TrimSpace(timestamp)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
