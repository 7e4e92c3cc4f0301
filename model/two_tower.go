package model

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/embedding"
	"github.com/rushteam/scorekit/feature"
)

// 双塔模型的结构常量。
const (
	// VocabSize 是哈希 token id 空间大小（无词表，token 直接 hash 取模）
	VocabSize = 50000

	// tokenDim 是 token 嵌入行的维度，mean-pool 后得到文本分支输出
	tokenDim = 32

	// numericHidden 是数值分支 MLP 的隐层/输出宽度
	numericHidden = 32

	// OutputDim 是两塔共享的投影空间维度
	OutputDim = 64
)

// TowerScorer 是双塔打分器（User Tower + Item Tower）。
//
// 每座塔：哈希 token id 序列 → 嵌入查表 mean-pool（文本分支），
// 8 维数值特征 → 两层 MLP（数值分支），拼接后投影到共享 64 维空间并 L2 归一。
// 分数为两塔输出的余弦相似度，范围 [-1, 1]。
//
// token 嵌入行不物化 5 万行表，而是由 seed 按 id 确定性派生（splitmix64），
// 同一 seed 下推理结果跨进程一致。权重无训练语义，排序价值来自共享的
// token 空间与结构先验；线上效果依赖离线训练产物时应替换 seed 初始化。
// 初始化后只读，可被任意多个 goroutine 并发调用。
type TowerScorer struct {
	userTower *tower
	itemTower *tower
}

type tower struct {
	tokenSeed uint64
	numeric   *mlp
	proj      [][]float64 // OutputDim x (tokenDim + numericHidden)
	projBias  []float64
}

// NewTowerScorer 用固定 seed 构建双塔打分器。
// seed 相同则模型逐位一致；构建失败返回错误，由 Select 降级处理。
func NewTowerScorer(seed int64) (*TowerScorer, error) {
	if seed == 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "model: tower seed must be non-zero")
	}
	rng := rand.New(rand.NewSource(seed))
	return &TowerScorer{
		userTower: newTower(rng, uint64(seed)*0x9e3779b97f4a7c15),
		itemTower: newTower(rng, uint64(seed)*0xbf58476d1ce4e5b9),
	}, nil
}

func newTower(rng *rand.Rand, tokenSeed uint64) *tower {
	t := &tower{
		tokenSeed: tokenSeed,
		numeric:   newMLP([]int{feature.NumericDim, numericHidden, numericHidden}, rng),
		proj:      make([][]float64, OutputDim),
		projBias:  make([]float64, OutputDim),
	}
	in := tokenDim + numericHidden
	for i := range t.proj {
		t.proj[i] = make([]float64, in)
		for j := range t.proj[i] {
			t.proj[i][j] = (rng.Float64()*2 - 1) * 0.1
		}
	}
	return t
}

func (s *TowerScorer) Name() string { return "two_tower" }

// UserVector 通过 User Tower 编码用户，一次请求内复用。
func (s *TowerScorer) UserVector(_ context.Context, rctx *core.RecommendContext) ([]float64, error) {
	return s.userTower.encode(userTokens(rctx), feature.UserNumericFeatures(rctx)), nil
}

// Score 通过 Item Tower 编码物品，与用户塔输出取余弦。
func (s *TowerScorer) Score(_ context.Context, user []float64, item *core.Item) (float64, error) {
	if len(user) != OutputDim {
		return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			fmt.Sprintf("model: user vector dim %d, want %d", len(user), OutputDim))
	}
	itemVec := s.itemTower.encode(feature.Tokenize(item.Text()), feature.ItemNumericFeatures(item))
	return feature.CosineSimilarity(user, itemVec), nil
}

// encode 执行单塔前向：文本 mean-pool + 数值 MLP → 拼接 → 投影 → L2 归一。
func (t *tower) encode(tokens []string, numeric []float64) []float64 {
	pooled := make([]float64, tokenDim)
	if len(tokens) > 0 {
		row := make([]float64, tokenDim)
		for _, tok := range tokens {
			t.tokenRow(feature.TokenID(tok, VocabSize), row)
			for i := range pooled {
				pooled[i] += row[i]
			}
		}
		inv := 1.0 / float64(len(tokens))
		for i := range pooled {
			pooled[i] *= inv
		}
	}

	num := t.numeric.forward(numeric)

	concat := make([]float64, 0, tokenDim+numericHidden)
	concat = append(concat, pooled...)
	concat = append(concat, num...)

	out := make([]float64, OutputDim)
	for i := range out {
		sum := t.projBias[i]
		for j, w := range t.proj[i] {
			sum += w * concat[j]
		}
		out[i] = sum
	}
	return feature.L2Normalize(out)
}

// tokenRow 由 seed 与 token id 确定性派生一行嵌入，写入 dst（复用缓冲）。
func (t *tower) tokenRow(id int, dst []float64) {
	state := t.tokenSeed ^ (uint64(id)+1)*0x94d049bb133111eb
	for i := range dst {
		state += 0x9e3779b97f4a7c15
		z := state
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z ^= z >> 31
		// 均匀落在 [-0.1, 0.1]
		dst[i] = (float64(z>>11)/float64(1<<53)*2 - 1) * 0.1
	}
}

// userTokens 收集用户侧 token 序列：兴趣、城市、偏好 key、历史文本。
// 历史按 embedding 的类目上限截断，保证与兜底路径同样的成本约束。
func userTokens(rctx *core.RecommendContext) []string {
	if rctx == nil {
		return nil
	}
	var parts []string
	if rctx.User != nil {
		parts = append(parts, rctx.User.Interests...)
		for _, entry := range rctx.User.PreferenceEntries(embedding.MaxPreferenceEntries) {
			parts = append(parts, entry.Key)
			if cue, ok := core.PreferenceCue(entry.Value); ok {
				parts = append(parts, cue)
			}
		}
	}
	if rctx.Location != nil {
		parts = append(parts, rctx.Location.City)
	}
	for _, records := range rctx.History {
		capped := records
		if len(capped) > embedding.MaxRecordsPerCategory {
			capped = capped[:embedding.MaxRecordsPerCategory]
		}
		for _, r := range capped {
			parts = append(parts, r.Text())
		}
	}
	return feature.Tokenize(strings.Join(parts, " "))
}

var _ core.Scorer = (*TowerScorer)(nil)
