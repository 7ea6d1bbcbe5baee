package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bar-website/services"
)

//go:embed templates/*
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const maxImageBytes = 5 << 20

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins  []string
	CookieSecure bool
	UploadDir    string // served under UploadURL when set
	UploadURL    string
}

// Server wires the public site, the admin dashboard and the JSON API to the services.
type Server struct {
	menu         *services.MenuService
	contact      *services.ContactService
	admin        *services.AdminService
	auth         *services.AuthService
	log          *zap.Logger
	opts         Options
	cookieSecure bool
	templates    *template.Template
}

func New(menu *services.MenuService, contact *services.ContactService, admin *services.AdminService,
	auth *services.AuthService, log *zap.Logger, opts Options) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}
	return &Server{
		menu:         menu,
		contact:      contact,
		admin:        admin,
		auth:         auth,
		log:          log,
		opts:         opts,
		cookieSecure: opts.CookieSecure,
		templates:    tmpl,
	}, nil
}

var templateFuncs = template.FuncMap{
	"price": func(p float64) string { return "₺" + strconv.FormatFloat(p, 'f', -1, 64) },
	"image": func(url string) string {
		if url == "" {
			return "/static/placeholder-food.svg"
		}
		return url
	},
	"when": func(t time.Time) string { return t.In(barLocation).Format("02.01.2006 15:04") },
	"year": func() int { return time.Now().Year() },
	"deref": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
}

var (
	barLocation = time.FixedZone("UTC+3", 3*60*60)
	timeNow     = time.Now
)

// Handler builds the gin engine with every route.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log), corsMiddleware(s.opts.CORSOrigins))
	r.SetHTMLTemplate(s.templates)
	r.MaxMultipartMemory = maxImageBytes + 1<<20

	static, _ := fs.Sub(staticFS, "static")
	r.StaticFS("/static", http.FS(static))
	if s.opts.UploadDir != "" && s.opts.UploadURL != "" {
		r.Static(s.opts.UploadURL, s.opts.UploadDir)
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// Public site
	r.GET("/", s.index)
	r.GET("/menu", s.index)
	r.POST("/contact", s.contactForm)

	api := r.Group("/api")
	{
		api.GET("/menu", s.apiMenu)
		api.POST("/contact", s.apiContact)
		api.POST("/admin/login", s.apiLogin)
	}

	// Admin dashboard (HTML)
	r.GET("/admin", s.adminPage)
	r.POST("/admin/login", s.adminLogin)
	adm := r.Group("/admin", s.requireAdmin(false))
	{
		adm.POST("/logout", s.adminLogout)
		adm.POST("/menu", s.adminSaveMenu)
		adm.POST("/menu/:id/delete", s.adminDeleteMenu)
		adm.POST("/messages/:id/delete", s.adminDeleteMessage)
	}

	// Admin JSON API
	admAPI := r.Group("/api/admin", s.requireAdmin(true))
	{
		admAPI.GET("/session", s.apiSession)
		admAPI.POST("/logout", s.apiLogout)
		admAPI.GET("/menu", s.apiAdminMenu)
		admAPI.POST("/menu", s.apiCreateMenu)
		admAPI.PUT("/menu/:id", s.apiUpdateMenu)
		admAPI.DELETE("/menu/:id", s.apiDeleteMenu)
		admAPI.GET("/messages", s.apiMessages)
		admAPI.DELETE("/messages/:id", s.apiDeleteMessage)
	}
	return r
}
