package game

import (
	"sync"
	"time"

	"xiangqi/internal/xiangqi"
)

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate" // 困毙，同样判负
	StatusDraw      Status = "draw"
)

type GameState struct {
	mu sync.Mutex

	ID        string
	StartFEN  string
	Board     *xiangqi.Board
	Moves     []xiangqi.Move
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot 对外返回的只读快照
type Snapshot struct {
	ID         string
	FEN        string
	ToMove     xiangqi.Color
	LegalMoves []xiangqi.Move
	Status     Status
	Winner     string // 终局时的胜方 "red"/"black"，和棋或未结束为空
	InCheck    bool
	LastMove   *xiangqi.Move
	Moves      []xiangqi.Move
	Notation   []string
}

// 调用方持有 g.mu
func (g *GameState) snapshot() Snapshot {
	b := g.Board
	legal := b.GenerateMoves(false)
	s := Snapshot{
		ID:         g.ID,
		FEN:        b.FEN(),
		ToMove:     b.MovingColor(),
		LegalMoves: legal,
		InCheck:    b.InCheck(),
		Moves:      append([]xiangqi.Move(nil), g.Moves...),
	}
	s.Status, s.Winner = statusOf(b, len(legal), s.InCheck)
	if m, ok := b.LastMove(); ok {
		s.LastMove = &m
	}

	// 记谱需要每步走之前的棋盘
	replay, err := xiangqi.ParseFEN(g.StartFEN)
	if err == nil {
		for _, m := range g.Moves {
			s.Notation = append(s.Notation, replay.MoveString(m))
			replay.MakeMove(m, false)
		}
	}
	return s
}

func statusOf(b *xiangqi.Board, numMoves int, inCheck bool) (Status, string) {
	switch b.GetTerminalStatus(numMoves) {
	case xiangqi.StatusNoMoves:
		winner := b.OpponentColor().String()
		if inCheck {
			return StatusCheckmate, winner
		}
		return StatusStalemate, winner
	case xiangqi.StatusDraw:
		return StatusDraw, ""
	}
	return StatusOngoing, ""
}
