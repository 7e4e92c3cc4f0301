package rank

import (
	"strings"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/embedding"
)

// 词面 boost 的默认参数。
const (
	// DefaultBoostPerMatch 是单个命中线索的加成
	DefaultBoostPerMatch = 0.04

	// DefaultBoostMaxMatches 限制计入加成的命中数（上限 0.2 的总加成）
	DefaultBoostMaxMatches = 5
)

// DefaultBoostLexicon 返回默认的偏好线索词表。
// 这些词在各类目的描述文本里高频出现且有明确偏好语义；
// 业务侧可整体替换，词表属于策略配置而非代码。
func DefaultBoostLexicon() []string {
	return []string{
		"vegan", "vegetarian", "organic", "outdoor", "live music",
		"family friendly", "indie", "jazz", "documentary", "art",
	}
}

// PreferenceBooster 做偏好线索与物品文本的词面匹配加成。
//
// 线索来自两处：静态词表 Lexicon，以及画像偏好值中 "very likely <X>" 的 X。
// 匹配是小写子串包含，每个命中加 PerMatch，计入 MaxMatches 个为止。
// 它补的是向量相似度容易稀释的强词面信号（如 "vegan" 对一家素食餐厅）。
type PreferenceBooster struct {
	Lexicon    []string
	PerMatch   float64
	MaxMatches int
}

// NewPreferenceBooster 返回默认词表与默认参数的 booster。
func NewPreferenceBooster() *PreferenceBooster {
	return &PreferenceBooster{
		Lexicon:    DefaultBoostLexicon(),
		PerMatch:   DefaultBoostPerMatch,
		MaxMatches: DefaultBoostMaxMatches,
	}
}

// Boost 返回物品的词面加成，范围 [0, PerMatch*MaxMatches]。
// 只有词表里的线索命中用户侧信号（兴趣或偏好）才参与匹配，
// 避免把与该用户无关的词面当成偏好。
func (b *PreferenceBooster) Boost(rctx *core.RecommendContext, item *core.Item) float64 {
	if item == nil {
		return 0
	}
	cues := b.activeCues(rctx)
	if len(cues) == 0 {
		return 0
	}
	text := strings.ToLower(item.Text())
	if text == "" {
		return 0
	}

	matches := 0
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			matches++
			if matches >= b.MaxMatches {
				break
			}
		}
	}
	return float64(matches) * b.PerMatch
}

// activeCues 收集该用户生效的线索词：画像 "very likely" 线索全部生效，
// 词表线索仅当出现在用户兴趣或偏好文本中才生效。结果去重、小写。
func (b *PreferenceBooster) activeCues(rctx *core.RecommendContext) []string {
	if rctx == nil || rctx.User == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var cues []string
	add := func(cue string) {
		cue = strings.ToLower(strings.TrimSpace(cue))
		if cue == "" {
			return
		}
		if _, ok := seen[cue]; ok {
			return
		}
		seen[cue] = struct{}{}
		cues = append(cues, cue)
	}

	for _, cue := range rctx.User.PreferenceCues(embedding.MaxPreferenceEntries) {
		add(cue)
	}

	userText := b.userText(rctx.User)
	for _, cue := range b.Lexicon {
		if strings.Contains(userText, strings.ToLower(cue)) {
			add(cue)
		}
	}
	return cues
}

func (b *PreferenceBooster) userText(user *core.UserProfile) string {
	parts := append([]string(nil), user.Interests...)
	for _, entry := range user.PreferenceEntries(embedding.MaxPreferenceEntries) {
		parts = append(parts, entry.Key, entry.Value)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
