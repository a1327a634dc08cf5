package httpserver

import (
	"net/http"
	"strings"
)

const viewCookieName = "xiangqi_view"

// 视图名到挂载前缀
var viewRoots = map[string]string{
	"web":    "/web/",
	"mobile": "/web_mobile/",
}

// 查询参数 view= 接受的写法
var viewAliases = map[string]string{
	"web": "web", "desktop": "web", "pc": "web",
	"mobile": "mobile", "m": "mobile", "phone": "mobile", "web_mobile": "mobile",
}

var mobileNeedles = []string{"android", "iphone", "ipad", "ipod", "mobile", "windows phone", "harmony"}

// RegisterStaticRoutes /web/ 挂桌面页面，/web_mobile/ 挂手机页面（缺省同桌面），
// / 按 view 参数、cookie、User-Agent 的顺序选一个跳转
func RegisterStaticRoutes(mux *http.ServeMux, desktopDir, mobileDir string) {
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}
	dirs := map[string]string{"web": desktopDir, "mobile": mobileDir}
	for view, root := range viewRoots {
		mux.Handle(root, http.StripPrefix(root, http.FileServer(http.Dir(dirs[view]))))
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// /web 这类不带斜杠的路径由 ServeMux 自己重定向
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Vary", "User-Agent, Cookie")
		http.Redirect(w, r, viewRoots[pickView(w, r)], http.StatusFound)
	})
}

func pickView(w http.ResponseWriter, r *http.Request) string {
	if v, ok := normalizeView(r.URL.Query().Get("view")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     viewCookieName,
			Value:    v,
			Path:     "/",
			MaxAge:   30 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
		return v
	}
	if c, err := r.Cookie(viewCookieName); err == nil {
		if v, ok := normalizeView(c.Value); ok {
			return v
		}
	}
	ua := strings.ToLower(r.UserAgent())
	for _, n := range mobileNeedles {
		if strings.Contains(ua, n) {
			return "mobile"
		}
	}
	return "web"
}

func normalizeView(v string) (string, bool) {
	view, ok := viewAliases[strings.ToLower(strings.TrimSpace(v))]
	return view, ok
}
