package engine

import (
	"sync/atomic"

	"xiangqi/internal/xiangqi"
)

// Engine 持有跨搜索保留的置换表与中止标志。
// 同一个 Engine 不支持并发调用 Search；根节点并行时每个 worker 自带置换表。
type Engine struct {
	tt map[uint64]ttEntry

	nodes  int64
	leaves int64

	// 所有 worker 共享的中止标志，置 1 后尽快返回
	abort *uint32
}

func NewEngine() *Engine {
	abort := uint32(0)
	return &Engine{
		tt:    make(map[uint64]ttEntry, 1<<18),
		abort: &abort,
	}
}

// Abort 请求搜索尽快结束，可在任意 goroutine 调用。
// 在 Search 开始之前调用也会让紧接着的那次搜索立即结束。
func (e *Engine) Abort() {
	atomic.StoreUint32(e.abort, 1)
}

func (e *Engine) resetAbort() {
	atomic.StoreUint32(e.abort, 0)
}

func (e *Engine) aborted() bool {
	return atomic.LoadUint32(e.abort) != 0
}

// ClearTT 丢弃置换表，换新对局时调用
func (e *Engine) ClearTT() {
	e.tt = make(map[uint64]ttEntry, 1<<18)
}

// TTSize 当前置换表条目数
func (e *Engine) TTSize() int { return len(e.tt) }

// 单个搜索线程的状态。board 归它独占。
type searcher struct {
	e   *Engine
	b   *xiangqi.Board
	cfg SearchConfig
	tt  map[uint64]ttEntry

	deadline deadlineFunc
	nodes    int64
	leaves   int64
	stopped  bool
}

type deadlineFunc func() bool

func (s *searcher) checkStop() bool {
	if s.stopped {
		return true
	}
	if s.e.aborted() || (s.deadline != nil && s.deadline()) {
		s.stopped = true
	}
	return s.stopped
}
