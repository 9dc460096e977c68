package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/arralabs/userhub/internal/userhub/domain"
	"github.com/arralabs/userhub/internal/userhub/service"
	"github.com/arralabs/userhub/internal/userhub/store"
	"github.com/arralabs/userhub/pkg/httpx"
	"github.com/arralabs/userhub/pkg/jwtx"
	"github.com/arralabs/userhub/pkg/slogx"

	_ "github.com/arralabs/userhub/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService  *service.AuthService
	UserService  *service.UserService
	AdminService *service.AdminService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion, clientOrigin string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	if clientOrigin != "" {
		r.middlewares = append(r.middlewares, httpx.CORS(clientOrigin))
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			UserHub API
//	@version		1.0.0
//	@description	User management service: signup and login with JWT bearer sessions, profile self-service and an admin account lifecycle surface.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn builds the standard authenticated chain around h.
func (r *Router) authn(h http.Handler, extra ...httpx.Middleware) http.Handler {
	mws := append([]httpx.Middleware{Authenticate(r.verifier, r.store)}, extra...)
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	r.Mux.Handle("POST /api/auth/signup", http.HandlerFunc(h.HandleSignup))
	r.Mux.Handle("POST /api/auth/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("GET /api/auth/me", r.authn(http.HandlerFunc(h.HandleMe)))
	r.Mux.Handle("POST /api/auth/logout", r.authn(http.HandlerFunc(h.HandleLogout)))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/users/profile", r.authn(http.HandlerFunc(h.HandleGetProfile)))
	r.Mux.Handle("PUT /api/users/profile", r.authn(http.HandlerFunc(h.HandleUpdateProfile)))
	r.Mux.Handle("PUT /api/users/change-password", r.authn(http.HandlerFunc(h.HandleChangePassword)))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService}
	adminOnly := RequireRole(domain.RoleAdmin)

	r.Mux.Handle("GET /api/admin/users", r.authn(http.HandlerFunc(h.HandleListUsers), adminOnly))
	r.Mux.Handle("PUT /api/admin/users/{id}/activate", r.authn(http.HandlerFunc(h.HandleActivate), adminOnly))
	r.Mux.Handle("PUT /api/admin/users/{id}/deactivate", r.authn(http.HandlerFunc(h.HandleDeactivate), adminOnly))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /{$}", RootHandler(r.buildVersion))
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("/", NotFoundHandler())
}
