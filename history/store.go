// Package history 负责交互历史与排序结果的持久化。
// 数据面向 core.KeyValueStore，内存与 Redis 后端均可承载。
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/scorekit/core"
)

const (
	// historyKeyPrefix 下按类目分 field 存交互历史（Hash）
	historyKeyPrefix = "history:"

	// resultKeyPrefix 下存整份排序结果（String + TTL）
	resultKeyPrefix = "recommendations:"

	// ResultTTLSeconds 是排序结果缓存的过期时间（一天）
	ResultTTLSeconds = 86400
)

// Store 封装交互历史与排序结果的读写。
//
// 历史用 Hash 存：key 为 history:<user>，field 为类目名，value 是该类目
// 全量交互记录的 JSON。排序结果整份序列化为 recommendations:<user>，
// 带一天 TTL：结果是快照而非事实，不应该无限期存活。
type Store struct {
	kv core.KeyValueStore
}

// NewStore 创建历史存储。
func NewStore(kv core.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// SaveHistory 整份覆盖写入用户的交互历史（按类目分 field）。
func (s *Store) SaveHistory(ctx context.Context, userID string, history core.InteractionHistory) error {
	if userID == "" {
		return core.NewDomainError(core.ModuleHistory, core.ErrorCodeInvalidInput, "history: empty user id")
	}
	key := historyKeyPrefix + userID
	for category, records := range history {
		data, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshal history %s: %w", category, err)
		}
		if err := s.kv.HSet(ctx, key, string(category), data); err != nil {
			return fmt.Errorf("save history %s: %w", category, err)
		}
	}
	return nil
}

// AppendRecord 追加一条交互记录到指定类目。读-改-写不带锁：
// 历史以用户为分片，同一用户的写入由上层服务保证串行。
func (s *Store) AppendRecord(ctx context.Context, userID string, category core.Category, record core.InteractionRecord) error {
	if userID == "" {
		return core.NewDomainError(core.ModuleHistory, core.ErrorCodeInvalidInput, "history: empty user id")
	}
	key := historyKeyPrefix + userID

	var records []core.InteractionRecord
	data, err := s.kv.HGet(ctx, key, string(category))
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &records); err != nil {
			// 脏数据直接覆盖，不让一条坏记录锁死整个类目
			records = nil
		}
	case core.IsStoreNotFound(err):
	default:
		return fmt.Errorf("load history %s: %w", category, err)
	}

	records = append(records, record)
	out, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal history %s: %w", category, err)
	}
	return s.kv.HSet(ctx, key, string(category), out)
}

// LoadHistory 读取用户全量交互历史。无历史时返回空 map，不报错。
func (s *Store) LoadHistory(ctx context.Context, userID string) (core.InteractionHistory, error) {
	history := make(core.InteractionHistory)
	if userID == "" {
		return history, nil
	}

	fields, err := s.kv.HGetAll(ctx, historyKeyPrefix+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return history, nil
		}
		return nil, fmt.Errorf("load history: %w", err)
	}

	for field, data := range fields {
		var records []core.InteractionRecord
		if err := json.Unmarshal(data, &records); err != nil {
			continue
		}
		history[core.Category(field)] = records
	}
	return history, nil
}

// rankedEntry 是排序结果缓存里的一条候选：原始属性加最终分。
type rankedEntry struct {
	Attrs        map[string]any `json:"attrs"`
	RankingScore float64        `json:"ranking_score"`
}

// SaveResults 缓存一次排序结果（整份覆盖，带 TTL）。
func (s *Store) SaveResults(ctx context.Context, userID string, ranked map[core.Category][]*core.Item) error {
	if userID == "" {
		return core.NewDomainError(core.ModuleHistory, core.ErrorCodeInvalidInput, "history: empty user id")
	}

	snapshot := make(map[core.Category][]rankedEntry, len(ranked))
	for category, items := range ranked {
		entries := make([]rankedEntry, 0, len(items))
		for _, item := range items {
			if item == nil {
				continue
			}
			entries = append(entries, rankedEntry{
				Attrs:        item.Attrs,
				RankingScore: item.RankingScore,
			})
		}
		snapshot[category] = entries
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	return s.kv.Set(ctx, resultKeyPrefix+userID, data, ResultTTLSeconds)
}

// LoadResults 读取缓存的排序结果。缓存不存在或已过期返回 (nil, false, nil)。
func (s *Store) LoadResults(ctx context.Context, userID string) (map[core.Category][]*core.Item, bool, error) {
	if userID == "" {
		return nil, false, nil
	}

	data, err := s.kv.Get(ctx, resultKeyPrefix+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load results: %w", err)
	}

	var snapshot map[core.Category][]rankedEntry
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false, fmt.Errorf("decode results: %w", err)
	}

	out := make(map[core.Category][]*core.Item, len(snapshot))
	for category, entries := range snapshot {
		items := make([]*core.Item, 0, len(entries))
		for _, e := range entries {
			item := core.NewItem(category, e.Attrs)
			item.RankingScore = e.RankingScore
			items = append(items, item)
		}
		out[category] = items
	}
	return out, true, nil
}
