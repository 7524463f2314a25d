package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/hazyhaar/alsatian-transform/pkg/kit"
)

// NewRouter returns an http.Handler with all transform API routes.
func NewRouter(s *Service) http.Handler {
	log := s.logger()
	h := &handler{
		transform:  kit.Logging(log, "transform")(transformEndpoint(s)),
		listTables: kit.Logging(log, "list_tables")(listTablesEndpoint(s)),
		svc:        s,
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.RequestID, chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(securityHeaders, requestContext, accessLog(log))
	r.MethodNotAllowed(methodNotAllowed)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/transform", h.handleTransform)
		r.Get("/tables", h.handleListTables)
		r.Get("/health", h.handleHealth)
	})
	return r
}

type handler struct {
	transform  kit.Endpoint
	listTables kit.Endpoint
	svc        *Service
}

// --- transform ---

type httpTransformRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode,omitempty"`
}

func (h *handler) handleTransform(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req httpTransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.transform(r.Context(), &transformReq{Text: req.Text, Mode: req.Mode})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- list tables ---

func (h *handler) handleListTables(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listTables(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status       string `json:"status"`
	Tables       int    `json:"tables"`
	TotalEntries int    `json:"total_entries"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		Tables:       len(h.svc.Registry.ListTables()),
		TotalEntries: h.svc.Registry.TotalEntries(),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// securityHeaders adds standard security headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// requestContext copies chi's request ID into the kit context, so endpoints
// see the same value under every transport, and echoes it to the client.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chimw.GetReqID(r.Context())
		w.Header().Set(chimw.RequestIDHeader, id)
		ctx := kit.WithTransport(r.Context(), "http")
		ctx = kit.WithRequestID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessLog logs method, path, status and elapsed time for each request.
func accessLog(log *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info().
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", ww.BytesWritten()).
				Str("request_id", kit.GetRequestID(r.Context())).
				Msg("request done")
		})
	}
}
