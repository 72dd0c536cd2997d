// Package web implements the web server for wagetrack application
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/wagetrack/app/store"
	"github.com/umputun/wagetrack/app/wage"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// pages rendered with the base layout
var pages = []string{"index.html", "add_worker.html", "attendance.html", "payment.html", "report.html", "error.html"}

// Store provides per-request connections to the persistent store
type Store interface {
	Acquire(ctx context.Context) (*store.Conn, error)
}

// Server represents the web server
type Server struct {
	store          Store
	templates      map[string]*template.Template
	baseURL        string // base URL path for reverse proxy (e.g., /wages), empty for root
	hostname       string // hostname to display in UI
	version        string
	postLimiter    *limiter.Limiter            // rate limiter for form submissions
	csrfProtection *http.CrossOriginProtection // csrf protection for POST endpoints
	now            func() time.Time            // clock for default form dates
}

// Config holds server configuration
type Config struct {
	Store     Store
	BaseURL   string  // base URL path for reverse proxy (e.g., /wages), empty for root
	Hostname  string  // hostname to display in UI
	Version   string
	PostLimit float64 // max form submissions per second per client, defaults to 10
}

// TemplateData holds data for templates
type TemplateData struct {
	Title       string
	BaseURL     string
	Hostname    string
	Version     string
	CurrentYear int
	Error       string // validation or lookup error shown on the page

	Workers  []store.Worker // index
	WorkerID int64          // attendance and payment forms
	Worker   *store.Worker  // set on forms when the worker is known
	Today    string         // default date for forms, ISO 8601
	Form     map[string]string
	Report   wage.Report
}

// newTemplateData creates a TemplateData with common fields populated
func (s *Server) newTemplateData(title string) TemplateData {
	return TemplateData{
		Title:       title,
		BaseURL:     s.baseURL,
		Hostname:    s.hostname,
		Version:     s.version,
		CurrentYear: s.now().Year(),
		Form:        map[string]string{},
	}
}

// New creates a new web server
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("web server initialization failed: Store is required")
	}

	postLimit := cfg.PostLimit
	if postLimit <= 0 {
		postLimit = 10
	}

	// rest.RealIP runs first, so RemoteAddr already holds the client ip
	postLimiter := tollbooth.NewLimiter(postLimit, nil)
	postLimiter.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr", IndexFromRight: 0})

	s := &Server{
		store:          cfg.Store,
		baseURL:        cfg.BaseURL,
		hostname:       cfg.Hostname,
		version:        cfg.Version,
		postLimiter:    postLimiter,
		csrfProtection: http.NewCrossOriginProtection(),
		now:            time.Now,
	}

	templates, err := s.parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("web server initialization failed: failed to parse HTML templates: %w", err)
	}
	s.templates = templates

	return s, nil
}

// Run starts the web server and blocks until ctx is canceled
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// handler returns the http.Handler with base URL wrapping applied
func (s *Server) handler() http.Handler {
	routes := s.routes()
	if s.baseURL == "" {
		return routes
	}

	mux := http.NewServeMux()
	// base URL without trailing slash redirects to the one with it
	mux.HandleFunc(s.baseURL, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.baseURL+"/", http.StatusMovedPermanently)
	})
	mux.Handle(s.baseURL+"/", http.StripPrefix(s.baseURL, routes))
	return mux
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(1000),
		rest.AppInfo("wagetrack", "umputun", s.version),
		rest.Ping,
		rest.Trace,
		rest.SizeLimit(64*1024), // 64KB max request size
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
	)

	// pages
	router.HandleFunc("GET /{$}", s.handleIndex)
	router.HandleFunc("GET /add_worker", s.handleAddWorkerForm)
	router.HandleFunc("GET /attendance/{worker_id}", s.handleAttendanceForm)
	router.HandleFunc("GET /payment/{worker_id}", s.handlePaymentForm)
	router.HandleFunc("GET /report/{worker_id}", s.handleReport)

	// form submissions
	forms := router.With(s.csrfProtection.Handler, tollbooth.HTTPMiddleware(s.postLimiter))
	forms.HandleFunc("POST /add_worker", s.handleAddWorker)
	forms.HandleFunc("POST /attendance/{worker_id}", s.handleAttendance)
	forms.HandleFunc("POST /payment/{worker_id}", s.handlePayment)

	// JSON for programmatic callers
	router.With(rest.NoCache).HandleFunc("GET /get_worker_info/{worker_id}", s.handleWorkerInfo)

	fsys, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Printf("[ERROR] failed to create static file system: %v", err)
		router.Handle("GET /static/", http.FileServer(http.FS(staticFS)))
	} else {
		router.HandleFiles("/static/", http.FS(fsys))
	}

	return router
}

// render renders a page with 200 status
func (s *Server) render(w http.ResponseWriter, page string, data TemplateData) {
	s.renderStatus(w, http.StatusOK, page, data)
}

// renderStatus renders a page with the given status code
func (s *Server) renderStatus(w http.ResponseWriter, status int, page string, data TemplateData) {
	tmpl, ok := s.templates[page]
	if !ok {
		log.Printf("[WARN] template %s not found", page)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		log.Printf("[WARN] failed to execute template %s: %v", page, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] failed to write response: %v", err)
	}
}

// renderError renders the error page
func (s *Server) renderError(w http.ResponseWriter, status int, msg string) {
	data := s.newTemplateData(http.StatusText(status))
	data.Error = msg
	s.renderStatus(w, status, "error.html", data)
}

// parseTemplates parses every page together with the base layout
func (s *Server) parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	funcMap := template.FuncMap{
		"url":      s.url,
		"money":    money,
		"num":      num,
		"optional": optional,
	}

	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcMap).ParseFS(templatesFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	return templates, nil
}

// template helper functions

// url prepends the base URL to a path for reverse proxy support
func (s *Server) url(path string) string {
	return s.baseURL + path
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// optional formats nullable worker attributes, "-" for missing values
func optional(v any) string {
	switch val := v.(type) {
	case *int64:
		if val != nil {
			return strconv.FormatInt(*val, 10)
		}
	case *float64:
		if val != nil {
			return num(*val)
		}
	case *string:
		if val != nil && *val != "" {
			return *val
		}
	}
	return "-"
}
