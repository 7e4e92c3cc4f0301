// Package embedding 构建用户与物品的定长向量表示。
// 维度 Dim 是模型版本常量，用户/物品共用同一维度，余弦相似度才良定义。
package embedding

import (
	"fmt"
	"strings"
	"time"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/feature"
)

// Dim 是 embedding 维度（模型版本常量）。
const Dim = 128

// MaxRecordsPerCategory 限制每个类目参与 embedding 的历史条数，约束计算成本。
const MaxRecordsPerCategory = 200

// MaxPreferenceEntries 限制参与 embedding 的偏好条目数。
const MaxPreferenceEntries = 20

// BuildUser 从画像、位置与交互历史构建用户 embedding。
//
// 累加的贡献：年龄分桶 token、兴趣文本、所在城市、偏好 map 的 key/线索值、
// 每条历史交互（行为权重 × 时间衰减权重 加权）、engagement 分桶 token。
// 所有输入都可缺失，缺什么就少加什么；最后做 L2 归一。
func BuildUser(rctx *core.RecommendContext) []float64 {
	return BuildUserAt(rctx, time.Now())
}

// BuildUserAt 是 BuildUser 的可注入时钟版本，供测试使用。
func BuildUserAt(rctx *core.RecommendContext, now time.Time) []float64 {
	acc := make([]float64, Dim)
	if rctx == nil {
		return acc
	}

	if rctx.User != nil {
		if rctx.User.Age > 0 {
			age := float64(rctx.User.Age)
			bucket := feature.Bucketize(&age, feature.AgeBucketThresholds)
			addScaled(acc, feature.Vectorize(fmt.Sprintf("age_bucket_%d", bucket), Dim), 1.0)
		}
		if len(rctx.User.Interests) > 0 {
			addScaled(acc, feature.Vectorize(strings.Join(rctx.User.Interests, " "), Dim), 1.0)
		}
		for _, entry := range rctx.User.PreferenceEntries(MaxPreferenceEntries) {
			text := entry.Key
			if cue, ok := core.PreferenceCue(entry.Value); ok {
				text += " " + cue
			}
			addScaled(acc, feature.Vectorize(text, Dim), 1.0)
		}
	}

	if rctx.Location != nil && rctx.Location.City != "" {
		addScaled(acc, feature.Vectorize(rctx.Location.City, Dim), 1.0)
	}

	for _, records := range rctx.History {
		capped := records
		if len(capped) > MaxRecordsPerCategory {
			capped = capped[:MaxRecordsPerCategory]
		}
		for _, r := range capped {
			text := r.Text()
			if text == "" {
				continue
			}
			w := core.ActionWeight(r.Action) * feature.RecencyWeightAt(r.Timestamp, now)
			addScaled(acc, feature.Vectorize(text, Dim), w)
		}
	}

	if es, ok := rctx.EngagementScore(); ok {
		bucket := feature.Bucketize(&es, feature.EngagementBucketThresholds)
		addScaled(acc, feature.Vectorize(fmt.Sprintf("engagement_bucket_%d", bucket), Dim), 1.0)
	}

	return feature.L2Normalize(acc)
}

func addScaled(acc, vec []float64, w float64) {
	for i := range vec {
		acc[i] += w * vec[i]
	}
}
