package feast

import (
	"context"
	"fmt"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/pkg/conv"
)

// 默认的用户统计特征名。
const (
	// DefaultEngagementFeature 是 engagement score 的 Feast 特征名
	DefaultEngagementFeature = "user_stats:engagement_score"

	// DefaultEntityKey 是用户实体的 join key
	DefaultEntityKey = "user_id"
)

// EngagementService 用 Feast 在线特征实现 core.FeatureService。
//
// 服务层在构建打分上下文前调用 GetUserFeatures，把 engagement score
// 写进 InteractionMeta。特征取不到时返回 DomainError，由调用方决定
// 是否降级（engagement 缺失时 embedding 只是少一个分桶 token）。
type EngagementService struct {
	client Client

	// Features 是要拉取的特征名列表，默认只有 engagement score
	Features []string

	// EntityKey 是用户实体的 join key，默认 "user_id"
	EntityKey string
}

// NewEngagementService 创建 engagement 特征服务。
func NewEngagementService(client Client, features ...string) *EngagementService {
	if len(features) == 0 {
		features = []string{DefaultEngagementFeature}
	}
	return &EngagementService{
		client:    client,
		Features:  features,
		EntityKey: DefaultEntityKey,
	}
}

func (s *EngagementService) Name() string { return "feast.engagement" }

// GetUserFeatures 拉取单个用户的统计特征，非数值特征被跳过。
func (s *EngagementService) GetUserFeatures(ctx context.Context, userID string) (map[string]float64, error) {
	if userID == "" {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput, "feature: empty user id")
	}
	if s.client == nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeUnavailable, "feature: feast client not configured")
	}

	resp, err := s.client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   s.Features,
		EntityRows: []map[string]any{{s.EntityKey: userID}},
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeUnavailable,
			fmt.Sprintf("feature: feast request failed: %v", err))
	}
	if len(resp.FeatureVectors) == 0 {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeNotFound, "feature: user features not found")
	}

	features := make(map[string]float64)
	for name, value := range resp.FeatureVectors[0].Values {
		if f, ok := conv.ToFloat64(value); ok {
			features[name] = f
		}
	}
	return features, nil
}

// EngagementMeta 把特征结果转成 InteractionMeta。engagement 特征缺失时返回 nil。
func (s *EngagementService) EngagementMeta(features map[string]float64) *core.InteractionMeta {
	es, ok := features[DefaultEngagementFeature]
	if !ok {
		return nil
	}
	return &core.InteractionMeta{EngagementScore: &es}
}

// Close 关闭底层 Feast 连接。
func (s *EngagementService) Close(_ context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

var _ core.FeatureService = (*EngagementService)(nil)
