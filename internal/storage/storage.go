// Package storage 用 BadgerDB 持久化对局记录与分析缓存。
package storage

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"xiangqi/internal/xiangqi"
)

const (
	prefixGame     = "game/"
	prefixAnalysis = "analysis/"
)

var ErrNotFound = errors.New("not found")

// GameRecord 一局棋：起始局面加着法序列即可复盘
type GameRecord struct {
	ID        string         `json:"id"`
	StartFEN  string         `json:"start_fen"`
	Moves     []xiangqi.Move `json:"moves"`
	Status    string         `json:"status"`
	Winner    string         `json:"winner,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// AnalysisRecord 某局面在某深度的搜索结果
type AnalysisRecord struct {
	FEN       string         `json:"fen"`
	Depth     int            `json:"depth"`
	Parallel  bool           `json:"parallel"`
	BestMove  xiangqi.Move   `json:"best_move"`
	Score     int            `json:"score"`
	Nodes     int64          `json:"nodes"`
	PV        []xiangqi.Move `json:"pv"`
	CreatedAt time.Time      `json:"created_at"`
}

// Storage wraps BadgerDB
type Storage struct {
	db *badger.DB
}

// Open 打开 dir 下的数据库；dir 为空时使用内存模式
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger at %q", dir)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte { return []byte(prefixGame + id) }

// 分析按 (depth, 并行与否, FEN) 存，两种根节点取舍规则的结果分开；
// FEN 的计数字段不影响搜索结果，去掉后再做键
func analysisKey(fen string, depth int, parallel bool) []byte {
	mode := "seq/"
	if parallel {
		mode = "par/"
	}
	return []byte(prefixAnalysis + strconv.Itoa(depth) + "/" + mode + positionPart(fen))
}

func positionPart(fen string) string {
	fields := 0
	for i := 0; i < len(fen); i++ {
		if fen[i] == ' ' {
			fields++
			if fields == 2 {
				return fen[:i]
			}
		}
	}
	return fen
}

func (s *Storage) put(key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

func (s *Storage) get(key []byte, v interface{}) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SaveGame 新建或覆盖一局
func (s *Storage) SaveGame(rec *GameRecord) error {
	if rec.ID == "" {
		return errors.New("game record without id")
	}
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	return errors.Wrapf(s.put(gameKey(rec.ID), rec), "save game %s", rec.ID)
}

func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}
	if err := s.get(gameKey(id), rec); err != nil {
		return nil, errors.Wrapf(err, "load game %s", id)
	}
	return rec, nil
}

func (s *Storage) DeleteGame(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(id))
	})
	return errors.Wrapf(err, "delete game %s", id)
}

// ListGames 按创建时间排序，最早的在前
func (s *Storage) ListGames() ([]*GameRecord, error) {
	var out []*GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(prefixGame)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rec := &GameRecord{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "list games")
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Storage) SaveAnalysis(rec *AnalysisRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return errors.Wrapf(s.put(analysisKey(rec.FEN, rec.Depth, rec.Parallel), rec), "save analysis depth %d", rec.Depth)
}

// LoadAnalysis 没有缓存时返回 ErrNotFound（可用 errors.Cause 取出）
func (s *Storage) LoadAnalysis(fen string, depth int, parallel bool) (*AnalysisRecord, error) {
	rec := &AnalysisRecord{}
	if err := s.get(analysisKey(fen, depth, parallel), rec); err != nil {
		return nil, errors.Wrapf(err, "load analysis depth %d", depth)
	}
	return rec, nil
}

// IsNotFound 判断错误链中是否有 ErrNotFound
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}
