package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront/internal/cart"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	store    *cart.Store
	lastSeen time.Time
	unsaved  bool       // 最後の保存が失敗した（メモリにしか無い）
	saveMu   sync.Mutex // スナップショット取得と保存を順番に行う
}

// Manager はセッションごとのカートを持つ。
// スナップショットは補助で、メモリ上のカートが正。
type Manager struct {
	mu        sync.Mutex
	carts     map[string]*entry
	snapshots repo.CartSnapshotRepository
	policy    cart.Policy
	logger    *zap.Logger
	now       func() time.Time
	sfg       singleflight.Group // 同じセッションの初回ロードをまとめる
}

func NewManager(snapshots repo.CartSnapshotRepository, policy cart.Policy, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		carts:     make(map[string]*entry),
		snapshots: snapshots,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
	}
}

// セッションのカートを返す。無ければ保存分から復元、それも無ければ空。
func (m *Manager) Cart(ctx context.Context, sessionID string) *cart.Store {
	if s, ok := m.lookup(sessionID); ok {
		return s
	}

	v, _, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		if s, ok := m.lookup(sessionID); ok {
			return s, nil
		}

		s := cart.NewStore(m.policy)
		if m.snapshots != nil {
			snap, err := m.snapshots.Load(ctx, sessionID)
			switch {
			case err == nil:
				s.Restore(snap.Items)
			case !errors.Is(err, repo.ErrNotFound):
				m.logger.Warn("cart snapshot load failed",
					zap.String("session_id", sessionID),
					zap.Error(err))
			}
		}

		m.mu.Lock()
		m.carts[sessionID] = &entry{store: s, lastSeen: m.now()}
		m.mu.Unlock()
		return s, nil
	})

	return v.(*cart.Store)
}

// 変更後に呼ぶ。保存失敗はログのみ。
// 同じセッションの保存は順番に行い、古い状態で上書きしない。
func (m *Manager) Persist(ctx context.Context, sessionID string, s *cart.Store) {
	m.mu.Lock()
	e, ok := m.carts[sessionID]
	m.mu.Unlock()
	//終了済み・別のカートなら保存しない
	if !ok || e.store != s {
		return
	}

	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	if m.snapshots == nil {
		m.markUnsaved(e, s.Len() > 0)
		return
	}

	snap := model.CartSnapshot{
		SessionID: sessionID,
		Items:     s.Snapshot(),
		SavedAt:   m.now(),
	}
	if err := m.snapshots.Save(ctx, snap); err != nil {
		m.markUnsaved(e, true)
		m.logger.Warn("cart snapshot save failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return
	}
	m.markUnsaved(e, false)
}

func (m *Manager) markUnsaved(e *entry, unsaved bool) {
	m.mu.Lock()
	e.unsaved = unsaved
	m.mu.Unlock()
}

// セッション終了：カートと保存分を破棄
func (m *Manager) End(ctx context.Context, sessionID string) {
	m.mu.Lock()
	delete(m.carts, sessionID)
	m.mu.Unlock()

	if m.snapshots == nil {
		return
	}
	if err := m.snapshots.Delete(ctx, sessionID); err != nil {
		m.logger.Warn("cart snapshot delete failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

// maxIdle以上使われていないカートをメモリから外す（保存分は残す）。
// 保存できていないカートはセッションの有効期間（maxUnsaved）までは残す。
func (m *Manager) Sweep(maxIdle, maxUnsaved time.Duration) int {
	now := m.now()
	idleCutoff := now.Add(-maxIdle)
	unsavedCutoff := now.Add(-maxUnsaved)

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for sid, e := range m.carts {
		cutoff := idleCutoff
		if e.unsaved {
			cutoff = unsavedCutoff
		}
		if e.lastSeen.Before(cutoff) {
			delete(m.carts, sid)
			n++
		}
	}
	return n
}

// 定期的にSweepする。ctxが終わるまで戻らない。
func (m *Manager) RunSweeper(ctx context.Context, interval, maxIdle, maxUnsaved time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(maxIdle, maxUnsaved); n > 0 {
				m.logger.Debug("idle carts evicted", zap.Int("count", n))
			}
		}
	}
}

func (m *Manager) lookup(sessionID string) (*cart.Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.carts[sessionID]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.now()
	return e.store, true
}
