package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"xiangqi/internal/storage"
	"xiangqi/internal/xiangqi"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")
)

// Store 持久化接口，*storage.Storage 实现它；nil 表示只放内存
type Store interface {
	SaveGame(rec *storage.GameRecord) error
	LoadGame(id string) (*storage.GameRecord, error)
}

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
	store Store

	// MaxPlies 新对局的步数上限，0 取 xiangqi.DefaultMaxPlies
	MaxPlies int
}

func NewManager(store Store) *Manager {
	return &Manager{games: make(map[string]*GameState), store: store}
}

// NewGame 从 fen 开局，fen 为空时用初始局面
func (m *Manager) NewGame(fen string) (Snapshot, error) {
	if fen == "" {
		fen = xiangqi.InitialFEN
	}
	b, err := xiangqi.ParseFEN(fen)
	if err != nil {
		return Snapshot{}, err
	}
	if m.MaxPlies > 0 {
		b.MaxPlies = m.MaxPlies
	}

	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		StartFEN:  b.FEN(),
		Board:     b,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	snap := g.snapshot()
	if err := m.persist(g, snap); err != nil {
		return snap, err
	}
	return snap, nil
}

// Get 先查内存，再从持久层按着法序列复原
func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	g, ok := m.games[id]
	m.mu.RUnlock()
	if ok {
		return g, nil
	}
	if m.store == nil {
		return nil, ErrGameNotFound
	}

	rec, err := m.store.LoadGame(id)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	g, err = m.restore(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "restore game %s", id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.games[id]; ok {
		return cur, nil
	}
	m.games[id] = g
	return g, nil
}

func (m *Manager) restore(rec *storage.GameRecord) (*GameState, error) {
	b, err := xiangqi.ParseFEN(rec.StartFEN)
	if err != nil {
		return nil, err
	}
	if m.MaxPlies > 0 {
		b.MaxPlies = m.MaxPlies
	}
	for i, mv := range rec.Moves {
		if err := b.Play(mv); err != nil {
			return nil, errors.Wrapf(err, "move %d %v", i, mv)
		}
	}
	return &GameState{
		ID:        rec.ID,
		StartFEN:  rec.StartFEN,
		Board:     b,
		Moves:     append([]xiangqi.Move(nil), rec.Moves...),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (m *Manager) Snapshot(id string) (Snapshot, error) {
	g, err := m.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot(), nil
}

// Play 校验并走一步；终局后拒绝再走
func (m *Manager) Play(id string, mv xiangqi.Move) (Snapshot, error) {
	g, err := m.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	b := g.Board
	if st, _ := statusOf(b, len(b.GenerateMoves(false)), b.InCheck()); st != StatusOngoing {
		return Snapshot{}, ErrGameOver
	}
	if err := b.Play(mv); err != nil {
		return Snapshot{}, err
	}
	g.Moves = append(g.Moves, mv)
	g.UpdatedAt = time.Now()

	snap := g.snapshot()
	return snap, m.persist(g, snap)
}

func (m *Manager) Undo(id string) (Snapshot, error) {
	g, err := m.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.Board.Undo(); err != nil {
		return Snapshot{}, err
	}
	g.Moves = g.Moves[:len(g.Moves)-1]
	g.UpdatedAt = time.Now()

	snap := g.snapshot()
	return snap, m.persist(g, snap)
}

// CloneBoard 给搜索用的独立副本（含重复局面历史）
func (m *Manager) CloneBoard(id string) (*xiangqi.Board, error) {
	g, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Board.Clone(), nil
}

func (m *Manager) persist(g *GameState, snap Snapshot) error {
	if m.store == nil {
		return nil
	}
	rec := &storage.GameRecord{
		ID:        g.ID,
		StartFEN:  g.StartFEN,
		Moves:     append([]xiangqi.Move(nil), g.Moves...),
		Status:    string(snap.Status),
		Winner:    snap.Winner,
		CreatedAt: g.CreatedAt,
	}
	return errors.Wrap(m.store.SaveGame(rec), "persist game")
}
