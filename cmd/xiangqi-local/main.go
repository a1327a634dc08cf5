package main

import (
	"flag"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/storage"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 没有图形界面时会失败，忽略
}

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	webDir := flag.String("web", "./web", "directory with index.html / js / svg, empty to serve only the API")
	mobileDir := flag.String("web-mobile", "", "directory with the mobile page, defaults to -web")
	dbDir := flag.String("db", "", "badger directory for games and analysis, empty for in-memory")
	maxPlies := flag.Int("max-plies", 0, "ply cap for new games, 0 for the default")
	browser := flag.Bool("open", true, "open the default browser")
	flag.Parse()

	st, err := storage.Open(*dbDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer st.Close()

	games := game.NewManager(st)
	games.MaxPlies = *maxPlies
	srv := httpserver.NewServer(httpserver.NewHandler(games, st), *webDir, *mobileDir)

	log.Printf("listening on %s, serving static from %q, db %q", *addr, *webDir, *dbDir)

	if *browser {
		// 稍等服务器起来再打开
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	if err := http.ListenAndServe(*addr, srv); err != nil {
		log.Fatal(err)
	}
}
