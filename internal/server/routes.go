package server

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/tunegrab/tunegrab/internal/convert"
)

// NewHandler creates the full HTTP handler with routes and middleware.
// Exported for use in tests (e.g., httptest.NewServer).
func NewHandler(converter convert.Converter, prober Prober, allowedOrigins []string) http.Handler {
	return newMux(converter, prober, allowedOrigins)
}

func newMux(converter convert.Converter, prober Prober, allowedOrigins []string) http.Handler {
	h := &handler{
		converter: converter,
		prober:    prober,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("POST /api/info", h.info)
	mux.HandleFunc("POST /api/convert", h.convert)
	mux.HandleFunc("GET /api/status/{id}", h.status)
	mux.HandleFunc("GET /api/files/{id}", h.files)
	mux.HandleFunc("GET /api/download/{id}/{filename}", h.download)
	mux.HandleFunc("GET /api/download-zip/{id}", h.downloadZip)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	// Apply middleware stack: recovery -> requestID -> logging -> cors
	var handler http.Handler = mux
	handler = c.Handler(handler)
	handler = logging(handler)
	handler = requestID(handler)
	handler = recovery(handler)

	return handler
}
