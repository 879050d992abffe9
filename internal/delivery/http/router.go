package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"filetags/internal/delivery/http/controllers"
	"filetags/internal/delivery/http/middleware"
	"filetags/internal/domain"
)

// Deps holds what the router needs to serve the API.
type Deps struct {
	Logger         *slog.Logger
	Manager        domain.TagManager
	Auth           domain.AuthService
	Verifier       domain.TokenVerifier
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(d Deps) *http.ServeMux {
	tags := controllers.NewTagController(d.Logger, d.Manager)
	files := controllers.NewFileController(d.Logger, d.Manager)
	content := controllers.NewContentController(d.Logger, d.Manager)
	auth := controllers.NewAuthController(d.Logger, d.Auth)
	requireAuth := middleware.RequireAuth(d.Verifier, d.Logger)

	mux := http.NewServeMux()

	// Tags
	mux.HandleFunc("GET /tags", tags.ListTags)
	mux.HandleFunc("POST /tags", requireAuth(tags.AddTag))
	mux.HandleFunc("PATCH /tags/{tag}", requireAuth(tags.EditTag))
	mux.HandleFunc("DELETE /tags/{tag}", requireAuth(tags.DeleteTag))
	mux.HandleFunc("GET /tags/{tag}/files", tags.ListFilesByTag)

	// Content
	mux.HandleFunc("GET /tags/{tag}/content", content.Cat)
	mux.HandleFunc("PUT /tags/{tag}/content", requireAuth(content.Echo))

	// Files
	mux.HandleFunc("GET /files", files.ListFiles)
	mux.HandleFunc("GET /files/tags", files.GetTags)
	mux.HandleFunc("POST /files/tags", requireAuth(files.TagFile))
	mux.HandleFunc("DELETE /files/tags", requireAuth(files.RemoveTag))

	// Auth
	mux.HandleFunc("POST /auth/login", auth.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps NewRouter with request logging, CORS and the request
// timeout, outermost first.
func NewHandler(d Deps) http.Handler {
	var h http.Handler = NewRouter(d)
	h = middleware.Timeout(d.RequestTimeout, h)
	h = middleware.CORS(d.AllowedOrigins, h)
	return middleware.LoggingMiddleware(d.Logger, h)
}
