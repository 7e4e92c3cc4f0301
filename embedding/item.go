package embedding

import (
	"fmt"
	"math"
	"time"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/feature"
)

// 物品侧分桶阈值。评分阈值按类目满分区分；热度/距离阈值全类目共用。
var (
	ratingThresholds10 = []float64{4, 6, 7, 8, 9}
	ratingThresholds5  = []float64{2, 3, 3.5, 4, 4.5}

	popularityThresholds = []float64{1e3, 1e4, 1e5, 1e6, 1e7, 5e7}
	distanceThresholds   = []float64{1, 5, 10, 20, 50}

	releaseAgeThresholds = []float64{1, 3, 5, 10, 20}
	eventDayThresholds   = []float64{7, 30, 90, 365}
)

// BuildItem 从候选物品的异构属性构建物品 embedding。
//
// 文本部分：标识 + 描述 + 风格字段 + 关键词，哈希向量化。
// 数值部分：评分/热度/距离/时效分桶后合成 synthetic token 再向量化，
// 数值解析全部 best-effort（conv.ParseNumeric），失败即跳过该特征。
// 最后做 L2 归一。
func BuildItem(item *core.Item) []float64 {
	return BuildItemAt(item, time.Now())
}

// BuildItemAt 是 BuildItem 的可注入时钟版本，供测试使用。
func BuildItemAt(item *core.Item, now time.Time) []float64 {
	acc := make([]float64, Dim)
	if item == nil {
		return acc
	}

	if text := item.Text(); text != "" {
		addScaled(acc, feature.Vectorize(text, Dim), 1.0)
	}

	if rating, ok := item.FirstNumeric("rating", "vote_average", "score"); ok {
		thresholds := ratingThresholds10
		if item.Category.RatingScale() == 5.0 {
			thresholds = ratingThresholds5
		}
		addBucketToken(acc, "rating_bucket", rating, thresholds)
	}

	if pop, ok := item.FirstNumeric("popularity", "monthly_listeners", "listeners", "ratings_count", "review_count"); ok {
		addBucketToken(acc, "popularity_bucket", pop, popularityThresholds)
	}

	if dist, ok := item.FirstNumeric("distance_from_user", "distance"); ok {
		addBucketToken(acc, "distance_bucket", dist, distanceThresholds)
	}

	addRecencyToken(acc, item, now)

	return feature.L2Normalize(acc)
}

// addRecencyToken 按类目加时效 token：movies/music 用发行年龄（年），
// events 用活动日期差（天），未来与过去用不同 token 前缀区分。
func addRecencyToken(acc []float64, item *core.Item, now time.Time) {
	if age, ok := feature.ReleaseAgeYears(item, now); ok {
		addBucketToken(acc, "release_age_bucket", age, releaseAgeThresholds)
	}
	if days, ok := feature.EventDeltaDays(item, now); ok {
		prefix := "event_past_bucket"
		if days >= 0 {
			prefix = "event_future_bucket"
		}
		addBucketToken(acc, prefix, math.Abs(days), eventDayThresholds)
	}
}

func addBucketToken(acc []float64, name string, value float64, thresholds []float64) {
	bucket := feature.Bucketize(&value, thresholds)
	addScaled(acc, feature.Vectorize(fmt.Sprintf("%s_%d", name, bucket), Dim), 1.0)
}
