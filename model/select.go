package model

import "github.com/rushteam/scorekit/core"

// SelectConfig 控制启动时的打分器选择。
type SelectConfig struct {
	// EnableTower 为 true 时优先构建双塔打分器
	EnableTower bool `yaml:"enable_tower" json:"enable_tower"`

	// TowerSeed 是双塔模型的初始化 seed（0 视为未配置，取默认值）
	TowerSeed int64 `yaml:"tower_seed" json:"tower_seed"`
}

// DefaultTowerSeed 是未配置时的模型 seed。
const DefaultTowerSeed = 20240817

// Select 在服务启动时选定一次打分器并交由调用方注入 Ranker。
//
// 双塔构建失败（含 panic）一律降级到哈希打分器，不向上抛错：
// 打分能力必须始终可用，降级只影响排序质量。热路径上不再做任何探测。
func Select(cfg SelectConfig) core.Scorer {
	if !cfg.EnableTower {
		return NewHashingScorer()
	}
	seed := cfg.TowerSeed
	if seed == 0 {
		seed = DefaultTowerSeed
	}
	scorer, err := buildTower(seed)
	if err != nil {
		return NewHashingScorer()
	}
	return scorer
}

func buildTower(seed int64) (s core.Scorer, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = core.NewDomainError(core.ModuleModel, core.ErrorCodeInternalError, "model: tower construction panicked")
		}
	}()
	return NewTowerScorer(seed)
}
