package core

import "context"

// Scorer 是相似度打分的领域接口：衡量用户与候选物品的匹配程度。
//
// 设计原则：
//   - 定义在领域层（core），由 model 包实现（双塔模型 / 哈希兜底）
//   - 实现必须在服务启动时选定一次并注入 Ranker，打分热路径上不做探测
//   - 多 goroutine 并发调用必须安全：实现初始化后只读
//
// 用法上拆成两步：UserVector 在一次请求内构建一次并复用（用户表示与候选无关），
// Score 对每个候选调用。两个实现的向量维度不同（哈希 128 维 / 双塔 64 维），
// 但向量只回传给同一个 Scorer，维度对外不承诺。
type Scorer interface {
	// Name 返回打分器名称（用于 labels/观测）
	Name() string

	// UserVector 构建一次请求内可复用的用户向量
	UserVector(ctx context.Context, rctx *RecommendContext) ([]float64, error)

	// Score 计算用户向量与候选物品的相似度，范围 [-1, 1]
	Score(ctx context.Context, user []float64, item *Item) (float64, error)
}

// FeatureService 是特征服务的领域接口，由 feast 包等基础设施实现。
//
// 打分核心自身不做 I/O：服务层在构建 RecommendContext 时可用它在线补齐
// engagement score 等交互元信息（见 InteractionMeta）。
type FeatureService interface {
	// Name 返回特征服务名称（用于日志/监控）
	Name() string

	// GetUserFeatures 获取用户特征（engagement_score 等）
	GetUserFeatures(ctx context.Context, userID string) (map[string]float64, error)

	// Close 关闭特征服务，释放资源
	Close(ctx context.Context) error
}
