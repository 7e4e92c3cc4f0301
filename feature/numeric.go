package feature

import (
	"math"
	"time"

	"github.com/rushteam/scorekit/core"
)

// NumericDim 是塔模型数值分支的固定维度。
const NumericDim = 8

// 年龄分桶阈值（用户 embedding 与塔特征共用）。
var AgeBucketThresholds = []float64{18, 25, 35, 45, 55, 65}

// Engagement 分桶阈值。
var EngagementBucketThresholds = []float64{0.2, 0.4, 0.6, 0.8}

// UserNumericFeatures 抽取用户侧 8 维数值特征，供双塔模型的数值分支使用。
// 所有维度都压到 [0,1] 量级附近，缺失值置 0；不做在线 I/O。
func UserNumericFeatures(rctx *core.RecommendContext) []float64 {
	out := make([]float64, NumericDim)
	if rctx == nil {
		return out
	}
	if rctx.User != nil {
		if rctx.User.Age > 0 {
			out[0] = math.Min(1.0, float64(rctx.User.Age)/100.0)
		}
		out[1] = math.Min(1.0, float64(len(rctx.User.Interests))/10.0)
		out[2] = math.Min(1.0, float64(len(rctx.User.Preferences))/20.0)
	}
	if es, ok := rctx.EngagementScore(); ok {
		out[3] = clamp(es, 0, 1)
	}
	total := 0
	weightSum := 0.0
	recencySum := 0.0
	now := time.Now()
	for _, records := range rctx.History {
		for _, r := range records {
			total++
			weightSum += core.ActionWeight(r.Action)
			recencySum += RecencyWeightAt(r.Timestamp, now)
		}
	}
	out[4] = math.Min(1.0, float64(total)/100.0)
	if total > 0 {
		// 平均行为权重落在 [-1.5, 2.0]，线性搬到 [0,1]
		out[5] = clamp((weightSum/float64(total)+1.5)/3.5, 0, 1)
		out[6] = recencySum / float64(total)
	}
	if rctx.Location != nil && rctx.Location.City != "" {
		out[7] = 1.0
	}
	return out
}

// ItemNumericFeatures 抽取物品侧 8 维数值特征。
// 评分按类目满分归一；热度取对数压缩；缺失值置 0。
func ItemNumericFeatures(item *core.Item) []float64 {
	out := make([]float64, NumericDim)
	if item == nil {
		return out
	}
	if rating, ok := item.FirstNumeric("rating", "vote_average", "score"); ok {
		out[0] = clamp(rating/item.Category.RatingScale(), 0, 1)
		out[1] = 1.0 // 有评分本身就是一个信号
	}
	if pop, ok := item.FirstNumeric("popularity", "monthly_listeners", "listeners", "ratings_count", "review_count"); ok && pop > 0 {
		out[2] = math.Min(1.0, math.Log10(1+pop)/8.0)
	}
	if dist, ok := item.FirstNumeric("distance_from_user", "distance"); ok && dist >= 0 {
		out[3] = math.Min(1.0, dist/100.0)
	}
	if age, ok := ReleaseAgeYears(item, time.Now()); ok {
		out[4] = math.Min(1.0, age/50.0)
	}
	if days, ok := EventDeltaDays(item, time.Now()); ok {
		// 未来活动为正、过去为负，压到 [0,1]，0.5 为“正在发生”
		out[5] = clamp(0.5+days/730.0, 0, 1)
	}
	out[6] = math.Min(1.0, float64(len(Tokenize(item.Text())))/50.0)
	if item.GenreLike() != "" {
		out[7] = 1.0
	}
	return out
}

// ReleaseAgeYears 返回 movies/music 发行年距今的年数；其他类目视为缺失。
func ReleaseAgeYears(item *core.Item, now time.Time) (float64, bool) {
	if item.Category != core.CategoryMovies && item.Category != core.CategoryMusic {
		return 0, false
	}
	year, ok := item.FirstNumeric("year", "release_year")
	if !ok || year < 1800 {
		return 0, false
	}
	age := float64(now.Year()) - year
	if age < 0 {
		age = 0
	}
	return age, true
}

// EventDeltaDays 返回活动日期距今的天数（未来为正）；非 events 类目视为缺失。
func EventDeltaDays(item *core.Item, now time.Time) (float64, bool) {
	if item.Category != core.CategoryEvents || item.Attrs == nil {
		return 0, false
	}
	raw, _ := item.Attrs["date"].(string)
	if raw == "" {
		raw, _ = item.Attrs["start_date"].(string)
	}
	ts, ok := ParseTimestamp(raw)
	if !ok {
		return 0, false
	}
	return ts.Sub(now).Hours() / 24.0, true
}
