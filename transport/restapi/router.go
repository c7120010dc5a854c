package restapi

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/yusufsyaifudin/appkeeper/assets"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/catalogsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/dashsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/sessionsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/respbuilder"
	"github.com/yusufsyaifudin/appkeeper/pkg/tracer"
	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/apidoc"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/handlerapp"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/handlercatalog"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/handlerdash"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/handlersession"
	"go.opentelemetry.io/otel"
)

type Config struct {
	AppService     appsvc.Service     `validate:"required"`
	CatalogService catalogsvc.Service `validate:"required"`
	SessionService sessionsvc.Service `validate:"required"`
	DashService    dashsvc.Service    `validate:"required"`
}

type DefaultHTTP struct {
	router *chi.Mux
}

type healthResp struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

func health(w http.ResponseWriter, r *http.Request) {
	resp := respbuilder.Success(r.Context(), healthResp{
		Service: assets.ServiceName,
		Version: assets.ServiceVersion,
		Status:  "ok",
	})
	respbuilder.WriteJSON(http.StatusOK, w, r, resp)
}

func NewHTTPTransport(cfg Config) (*DefaultHTTP, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("http transport cfg error: %w", err)
	}

	handlerApp, err := handlerapp.NewHandler(handlerapp.HandlerConfig{
		AppService: cfg.AppService,
	})
	if err != nil {
		return nil, err
	}

	handlerCatalog, err := handlercatalog.NewHandler(handlercatalog.HandlerConfig{
		CatalogService: cfg.CatalogService,
	})
	if err != nil {
		return nil, err
	}

	handlerSession, err := handlersession.NewHandler(handlersession.HandlerConfig{
		SessionService: cfg.SessionService,
	})
	if err != nil {
		return nil, err
	}

	handlerDash, err := handlerdash.NewHandler(handlerdash.HandlerConfig{
		DashService: cfg.DashService,
	})
	if err != nil {
		return nil, err
	}

	doc, err := apidoc.Build(context.Background())
	if err != nil {
		return nil, fmt.Errorf("build openapi doc: %w", err)
	}

	docJSON, err := apidoc.JSON(doc)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	skip := func(r *http.Request) bool {
		switch strings.TrimSpace(path.Clean(r.URL.Path)) {
		case "/api/v1/openapi.json",
			"/health",
			"/ping":
			return true
		}

		return false
	}

	router.Use(middleware.StripSlashes)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", respbuilder.HeaderTraceID, respbuilder.HeaderSessionID},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	router.Use(func(next http.Handler) http.Handler {
		return tracer.Middleware(tracer.MiddlewareConfig{
			TracerName:     "github.com/yusufsyaifudin/appkeeper",
			ServiceName:    assets.ServiceName,
			SkipFunc:       skip,
			TracerProvider: otel.GetTracerProvider(),    // global tracer provider
			TextPropagator: otel.GetTextMapPropagator(), // use global text map propagator
		}, next)
	})

	// add trace id and also log request response
	router.Use(func(next http.Handler) http.Handler {
		return requestLogger(skip, next)
	})

	router.Get("/health", health)
	router.Get("/ping", health)
	router.Get("/api/v1/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(docJSON)
	})

	// Resource: apps
	router.Route("/api/v1/apps", func(r chi.Router) {
		r.Post("/", handlerApp.CreateApp())
		r.Get("/", handlerApp.ListApps())
		r.Post("/validate", handlerApp.ValidateApp()) // dry run, nothing is saved
		r.Get("/{id}", handlerApp.GetApp())
		r.Put("/{id}", handlerApp.PutApp()) // shallow merge, missing keys plus id and createdOn are kept
	})

	// Resource: store catalog
	router.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/search", handlerCatalog.Search())
		r.Post("/import", handlerCatalog.Import())
	})

	// Resource: sessions, one board + form + import dialog each
	router.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", handlerSession.Create())

		r.Route("/{sid}", func(r chi.Router) {
			r.Use(handlerSession.WithSession)

			r.Delete("/", handlerSession.Clear())

			r.Get("/board", handlerSession.Board())
			r.Put("/board/filters", handlerSession.SetFilters())
			r.Put("/board/sort", handlerSession.SetSort())
			r.Put("/board/page", handlerSession.SetPage())

			r.Post("/form", handlerSession.OpenForm())
			r.Get("/form", handlerSession.GetForm())
			r.Patch("/form", handlerSession.SetField())
			r.Delete("/form", handlerSession.CloseForm())
			r.Post("/form/submit", handlerSession.SubmitForm())

			r.Post("/import", handlerSession.OpenImport())
			r.Get("/import", handlerSession.ImportState())
			r.Delete("/import", handlerSession.CloseImport())
			r.Put("/import/platforms", handlerSession.TogglePlatform())
			r.Put("/import/query", handlerSession.SetQuery())
			r.Post("/import/search", handlerSession.Search())
			r.Post("/import/pick", handlerSession.Pick())
		})
	})

	// Resource: dashboard
	router.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Get("/", handlerDash.Overview())
		r.Get("/spend", handlerDash.SpendReport())
		r.Get("/campaigns", handlerDash.Campaigns())
		r.Get("/charts/revenue", handlerDash.RevenueChart())
		r.Get("/charts/geo", handlerDash.GeoChart())
	})

	instance := &DefaultHTTP{
		router: router,
	}

	return instance, nil
}

// Server .
func (a *DefaultHTTP) Server() http.Handler {
	return a.router
}
