package store

import (
	"context"
	"slices"
	"sync"

	"gcgviz/internal/model"
)

// BackendMemory 进程内存储（开发与测试用，不落盘）
const BackendMemory = "memory"

// MemoryStore 内存记录表
type MemoryStore struct {
	records []model.Record
	loadErr error
	saveErr error
	saves   int
	mu      sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore(initial ...model.Record) *MemoryStore {
	return &MemoryStore{records: slices.Clone(initial)}
}

// Load 返回记录副本
func (s *MemoryStore) Load(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return slices.Clone(s.records), nil
}

// Save 整体替换
func (s *MemoryStore) Save(ctx context.Context, records []model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	s.records = slices.Clone(records)
	s.saves++
	return nil
}

// FailLoad 之后的 Load 返回 err（nil 恢复）
func (s *MemoryStore) FailLoad(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// FailSave 之后的 Save 返回 err（nil 恢复）
func (s *MemoryStore) FailSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves 成功保存次数
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Count 当前记录数
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
