package engine

import (
	"context"
	"errors"
	"fmt"

	"xiangqi/internal/xiangqi"
)

var ErrAgentUnavailable = errors.New("agent not available")

// Agent 选着接口。ab 为本包的 alpha-beta；az/abz 依赖神经网络，不在本仓库实现。
type Agent interface {
	ChooseMove(ctx context.Context, b *xiangqi.Board) (xiangqi.Move, bool)
}

// AgentNames 可在命令行选择的代理
var AgentNames = []string{"ab", "az", "abz"}

func NewAgent(name string, cfg SearchConfig) (Agent, error) {
	switch name {
	case "ab":
		return &ABAgent{Engine: NewEngine(), Config: cfg}, nil
	case "az", "abz":
		return nil, fmt.Errorf("%w: %s", ErrAgentUnavailable, name)
	}
	return nil, fmt.Errorf("unknown agent %q", name)
}

type ABAgent struct {
	Engine *Engine
	Config SearchConfig

	Last SearchResult
}

// ChooseMove 在副本上搜索，不修改传入的棋盘
func (a *ABAgent) ChooseMove(ctx context.Context, b *xiangqi.Board) (xiangqi.Move, bool) {
	a.Last = a.Engine.Search(ctx, b.Clone(), a.Config)
	return a.Last.BestMove, a.Last.Found
}
