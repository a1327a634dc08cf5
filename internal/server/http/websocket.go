package httpserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 本地使用，不校验来源
	},
}

// WSMessage 客户端消息：analyze / stop / mate / ping
type WSMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// WSResponse 服务端消息：iteration / result / stopped / pong / error
type WSResponse struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// IterationDTO 每完成一层迭代推送一次
type IterationDTO struct {
	Depth    int      `json:"depth"`
	Score    int      `json:"score"`
	Nodes    int64    `json:"nodes"`
	BestMove MoveDTO  `json:"best_move"`
	Notation string   `json:"notation"`
	PV       []string `json:"pv"`
}

// WSClient 每个连接一个引擎，同一时刻最多一个分析
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handler
	eng      *engine.Engine

	sendChan chan WSResponse
	done     chan struct{} // writePump 退出后关闭

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	stopAnalysis context.CancelFunc // 非 nil 表示有分析在跑
	wg           sync.WaitGroup
}

// WebSocket 实时分析：analyze 逐层推送迭代结果
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	client := &WSClient{
		conn:     conn,
		handlers: h,
		eng:      engine.NewEngine(),
		sendChan: make(chan WSResponse, 256),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer close(c.done)
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() {
		c.cancel()
		c.wg.Wait()
		close(c.sendChan)
		c.conn.Close()
	}()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) send(resp WSResponse) {
	select {
	case c.sendChan <- resp:
	case <-c.done:
	}
}

func (c *WSClient) sendError(id, msg string) {
	c.send(WSResponse{Type: "error", ID: id, Error: msg})
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "analyze":
		c.handleAnalyze(msg)
	case "stop":
		if c.stop() {
			c.send(WSResponse{Type: "stopped", ID: msg.ID})
		} else {
			c.sendError(msg.ID, "no analysis running")
		}
	case "mate":
		c.handleMate(msg)
	case "ping":
		c.send(WSResponse{Type: "pong", ID: msg.ID})
	default:
		c.sendError(msg.ID, "unknown message type")
	}
}

func (c *WSClient) handleAnalyze(msg WSMessage) {
	var req AiMoveRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendError(msg.ID, "invalid payload")
		return
	}
	b, err := c.handlers.boardFor(req.GameID, req.Position)
	if err != nil {
		c.sendError(msg.ID, err.Error())
		return
	}

	c.mu.Lock()
	if c.stopAnalysis != nil {
		c.mu.Unlock()
		c.sendError(msg.ID, "analysis already running")
		return
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.stopAnalysis = cancel
	c.mu.Unlock()

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
		OnIteration: func(res engine.SearchResult) {
			c.send(WSResponse{Type: "iteration", ID: msg.ID, Payload: iterationDTO(b, res)})
		},
	}

	// 在后台跑，读循环还能收到 stop
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		res := c.eng.Search(ctx, b, cfg)
		// 先让出分析位置再回结果，客户端收到 result 后即可开始下一个分析
		c.mu.Lock()
		c.stopAnalysis = nil
		c.mu.Unlock()
		cancel()
		c.send(WSResponse{Type: "result", ID: msg.ID, Payload: searchToResponse(b, res)})
	}()
}

// stop 取消正在跑的分析，没有分析时返回 false
func (c *WSClient) stop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopAnalysis == nil {
		return false
	}
	c.stopAnalysis()
	return true
}

func iterationDTO(b *xiangqi.Board, res engine.SearchResult) IterationDTO {
	it := IterationDTO{
		Depth:    res.Depth,
		Score:    res.Score,
		Nodes:    res.Nodes,
		BestMove: moveToDTO(res.BestMove),
		PV:       notate(b, res.PV),
	}
	if res.Found {
		it.Notation = b.MoveString(res.BestMove)
	}
	return it
}

func (c *WSClient) handleMate(msg WSMessage) {
	var req MateRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendError(msg.ID, "invalid payload")
		return
	}
	b, err := c.handlers.boardFor(req.GameID, req.Position)
	if err != nil {
		c.sendError(msg.ID, err.Error())
		return
	}
	depth := req.MaxDepth
	if depth <= 0 {
		depth = defaultMateDepth
	}
	c.send(WSResponse{Type: "result", ID: msg.ID, Payload: mateToResponse(b, c.eng.VCFSearch(b, depth))})
}
