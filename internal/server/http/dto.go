package httpserver

import (
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// 前端用的招法结构
type MoveDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func dtoToMove(m MoveDTO) xiangqi.Move {
	return xiangqi.Move{From: m.From, To: m.To}
}

func moveToDTO(m xiangqi.Move) MoveDTO {
	return MoveDTO{From: m.From, To: m.To}
}

func movesToDTO(ms []xiangqi.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

// 0=红, 1=黑，和前端约定一致
func sideToInt(c xiangqi.Color) int {
	if c == xiangqi.Red {
		return 0
	}
	return 1
}

// NewGame 请求，FEN 为空用初始局面
type NewGameRequest struct {
	FEN string `json:"fen"`
}

// Play 请求：Move 与 Notation 二选一，Notation 形如 "C(71)-74" 或 "64-67"
type PlayRequest struct {
	GameID   string   `json:"game_id"`
	Move     *MoveDTO `json:"move,omitempty"`
	Notation string   `json:"notation,omitempty"`
}

// State / Undo / Board 请求
type StateRequest struct {
	GameID string `json:"game_id"`
}

// new_game、play、undo、state 统一返回
type GameResponse struct {
	GameID     string    `json:"game_id"`
	Position   string    `json:"position"` // FEN
	ToMove     int       `json:"to_move"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	Status     string    `json:"status"` // ongoing / checkmate / stalemate / draw
	Winner     string    `json:"winner,omitempty"`
	InCheck    bool      `json:"in_check"`
	LastMove   *MoveDTO  `json:"last_move,omitempty"`
	History    []string  `json:"history"`
}

func snapshotToResponse(s game.Snapshot) GameResponse {
	resp := GameResponse{
		GameID:     s.ID,
		Position:   s.FEN,
		ToMove:     sideToInt(s.ToMove),
		LegalMoves: movesToDTO(s.LegalMoves),
		Status:     string(s.Status),
		Winner:     s.Winner,
		InCheck:    s.InCheck,
		History:    s.Notation,
	}
	if s.LastMove != nil {
		lm := moveToDTO(*s.LastMove)
		resp.LastMove = &lm
	}
	if resp.History == nil {
		resp.History = []string{}
	}
	return resp
}

// AiMoveRequest 给 game_id 时用对局（含重复局面历史），否则用 position
type AiMoveRequest struct {
	GameID     string `json:"game_id"`
	Position   string `json:"position"`
	MaxDepth   int    `json:"max_depth"`
	TimeMs     int64  `json:"time_ms"`
	Quiescence bool   `json:"quiescence"`
	Parallel   bool   `json:"parallel"`
	Apply      bool   `json:"apply"` // 搜完直接在对局里落子
}

type AiMoveResponse struct {
	BestMove MoveDTO       `json:"best_move"`
	Notation string        `json:"notation,omitempty"`
	Score    int           `json:"score"`
	Mate     bool          `json:"mate"`
	Depth    int           `json:"depth"`
	Nodes    int64         `json:"nodes"`
	PV       []string      `json:"pv"`
	TimeMs   int64         `json:"time_ms"`
	Cached   bool          `json:"cached"`
	Status   string        `json:"status"` // ok / no_moves
	Game     *GameResponse `json:"game,omitempty"`
}

// 连将杀搜索
type MateRequest struct {
	GameID   string `json:"game_id"`
	Position string `json:"position"`
	MaxDepth int    `json:"max_depth"`
}

type MateResponse struct {
	CanWin bool     `json:"can_win"`
	Move   *MoveDTO `json:"move,omitempty"`
	Line   []string `json:"line"`
	Nodes  int      `json:"nodes"`
}
