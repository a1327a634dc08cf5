package httpserver

import "net/http"

// Server 组装 /api/*、/ws 和静态页面
type Server struct {
	mux *http.ServeMux
}

// NewServer webDir 为空时不挂静态页面
func NewServer(h *Handler, webDir, mobileDir string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/api/", h)
	mux.HandleFunc("/ws", h.WebSocket)
	if webDir != "" {
		RegisterStaticRoutes(mux, webDir, mobileDir)
	}
	return &Server{mux: mux}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
