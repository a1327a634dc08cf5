package httpserver

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"

	"xiangqi/internal/engine"
	"xiangqi/internal/render"
	"xiangqi/internal/server/game"
	"xiangqi/internal/storage"
	"xiangqi/internal/xiangqi"
)

const (
	defaultAiDepth   = 4
	defaultMateDepth = 7
)

var errMissingPosition = errors.New("missing game_id or position")

// AnalysisCache 搜索结果缓存，*storage.Storage 实现它
type AnalysisCache interface {
	LoadAnalysis(fen string, depth int, parallel bool) (*storage.AnalysisRecord, error)
	SaveAnalysis(rec *storage.AnalysisRecord) error
}

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *game.Manager
	cache AnalysisCache

	mu  sync.Mutex // 引擎的置换表不能并发用
	eng *engine.Engine
}

// NewHandler cache 可以传 nil
func NewHandler(games *game.Manager, cache AnalysisCache) *Handler {
	return &Handler{games: games, cache: cache, eng: engine.NewEngine()}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/health" {
		writeJSON(w, map[string]any{"status": "ok", "tt_size": h.ttSize()})
		return
	}

	var fn func(http.ResponseWriter, *http.Request)
	switch r.URL.Path {
	case "/api/new_game":
		fn = h.handleNewGame
	case "/api/play":
		fn = h.handlePlay
	case "/api/undo":
		fn = h.handleUndo
	case "/api/state":
		fn = h.handleState
	case "/api/board":
		fn = h.handleBoard
	case "/api/ai_move":
		fn = h.handleAiMove
	case "/api/mate":
		fn = h.handleMate
	default:
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fn(w, r)
}

func (h *Handler) ttSize() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.eng.TTSize()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

// writeError 把领域错误映射成状态码
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, xiangqi.ErrIllegalMove),
		errors.Is(err, xiangqi.ErrSquareOutOfRange),
		errors.Is(err, xiangqi.ErrBadMoveString),
		errors.Is(err, xiangqi.ErrInvalidFEN),
		errors.Is(err, xiangqi.ErrHistoryEmpty),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, errMissingPosition):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("internal error: %+v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	// 空 body 视为初始局面
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	snap, err := h.games.NewGame(req.FEN)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, snapshotToResponse(snap))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decode(w, r, &req) {
		return
	}

	var mv xiangqi.Move
	switch {
	case req.Move != nil:
		mv = dtoToMove(*req.Move)
	case req.Notation != "":
		b, err := h.games.CloneBoard(req.GameID)
		if err != nil {
			writeError(w, err)
			return
		}
		if mv, err = b.ParseMove(req.Notation); err != nil {
			writeError(w, err)
			return
		}
	default:
		http.Error(w, "missing move", http.StatusBadRequest)
		return
	}

	snap, err := h.games.Play(req.GameID, mv)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, snapshotToResponse(snap))
}

func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := h.games.Undo(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, snapshotToResponse(snap))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := h.games.Snapshot(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, snapshotToResponse(snap))
}

// handleBoard 纯文本棋盘，调试用
func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !decode(w, r, &req) {
		return
	}
	b, err := h.games.CloneBoard(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	opt := render.Options{Plain: true}
	if lm, ok := b.LastMove(); ok {
		opt.Highlight = &lm
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(render.Board(b, opt)))
}

// boardFor 有 game_id 用对局副本，否则解析 FEN
func (h *Handler) boardFor(gameID, position string) (*xiangqi.Board, error) {
	if gameID != "" {
		return h.games.CloneBoard(gameID)
	}
	if position == "" {
		return nil, errMissingPosition
	}
	return xiangqi.ParseFEN(position)
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if !decode(w, r, &req) {
		return
	}
	b, err := h.boardFor(req.GameID, req.Position)
	if err != nil {
		writeError(w, err)
		return
	}

	depth := req.MaxDepth
	if depth <= 0 {
		depth = defaultAiDepth
	}
	cfg := engine.SearchConfig{
		MaxDepth:              depth,
		TimeLimit:             time.Duration(req.TimeMs) * time.Millisecond,
		Quiescence:            req.Quiescence,
		UseTT:                 true,
		Parallel:              req.Parallel,
		RecordRootRepetitions: true,
	}

	res, cached := h.search(r, b, cfg)
	resp := searchToResponse(b, res)
	resp.Cached = cached

	if req.Apply && req.GameID != "" && res.Found {
		snap, err := h.games.Play(req.GameID, res.BestMove)
		if err != nil {
			writeError(w, err)
			return
		}
		g := snapshotToResponse(snap)
		resp.Game = &g
	}
	writeJSON(w, resp)
}

// search 固定深度、不带静态搜索的结果走缓存
func (h *Handler) search(r *http.Request, b *xiangqi.Board, cfg engine.SearchConfig) (engine.SearchResult, bool) {
	fen := b.FEN()
	cacheable := h.cache != nil && cfg.TimeLimit <= 0 && !cfg.Quiescence

	if cacheable {
		rec, err := h.cache.LoadAnalysis(fen, cfg.MaxDepth, cfg.Parallel)
		switch {
		case err == nil && isLegal(b, rec.BestMove):
			return engine.SearchResult{
				BestMove: rec.BestMove,
				Found:    true,
				Score:    rec.Score,
				Depth:    rec.Depth,
				Nodes:    rec.Nodes,
				PV:       rec.PV,
			}, true
		case err != nil && !storage.IsNotFound(err):
			log.Printf("analysis cache: %v", err)
		}
	}

	h.mu.Lock()
	res := h.eng.Search(r.Context(), b, cfg)
	h.mu.Unlock()

	if cacheable && res.Found && res.Depth == cfg.MaxDepth {
		err := h.cache.SaveAnalysis(&storage.AnalysisRecord{
			FEN:      fen,
			Depth:    res.Depth,
			Parallel: cfg.Parallel,
			BestMove: res.BestMove,
			Score:    res.Score,
			Nodes:    res.Nodes,
			PV:       res.PV,
		})
		if err != nil {
			log.Printf("analysis cache: %v", err)
		}
	}
	return res, false
}

func isLegal(b *xiangqi.Board, m xiangqi.Move) bool {
	for _, lm := range b.GenerateMoves(false) {
		if lm == m {
			return true
		}
	}
	return false
}

func searchToResponse(b *xiangqi.Board, res engine.SearchResult) AiMoveResponse {
	resp := AiMoveResponse{
		Score:  res.Score,
		Mate:   res.IsMate(),
		Depth:  res.Depth,
		Nodes:  res.Nodes,
		PV:     notate(b, res.PV),
		TimeMs: res.TimeUsed.Milliseconds(),
		Status: "ok",
	}
	if !res.Found {
		resp.BestMove = MoveDTO{From: -1, To: -1}
		resp.Status = "no_moves"
		return resp
	}
	resp.BestMove = moveToDTO(res.BestMove)
	resp.Notation = b.MoveString(res.BestMove)
	return resp
}

// notate 从 b 开始依次记谱，不修改 b
func notate(b *xiangqi.Board, line []xiangqi.Move) []string {
	out := make([]string, 0, len(line))
	c := b.Clone()
	for _, m := range line {
		out = append(out, c.MoveString(m))
		c.MakeMove(m, false)
	}
	return out
}

func (h *Handler) handleMate(w http.ResponseWriter, r *http.Request) {
	var req MateRequest
	if !decode(w, r, &req) {
		return
	}
	b, err := h.boardFor(req.GameID, req.Position)
	if err != nil {
		writeError(w, err)
		return
	}
	depth := req.MaxDepth
	if depth <= 0 {
		depth = defaultMateDepth
	}

	writeJSON(w, mateToResponse(b, h.eng.VCFSearch(b, depth)))
}

func mateToResponse(b *xiangqi.Board, res engine.VCFResult) MateResponse {
	resp := MateResponse{CanWin: res.CanWin, Nodes: res.Nodes, Line: []string{}}
	if res.CanWin {
		mv := moveToDTO(res.Move)
		resp.Move = &mv
		resp.Line = notate(b, res.Line)
	}
	return resp
}
