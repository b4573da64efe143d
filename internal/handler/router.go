package handler

import (
	"net/http"

	"bill-export-server/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"bill-export-server"}`))
	}).Methods("GET")

	// Initialize handlers
	billHandler := NewBillHandler(
		container.BillFormatter,
		container.Messenger,
		container.PDFExporter,
		container.ExportRepository,
		container.Config,
		container.Logger,
	)

	// Protected routes (require API key when one is configured)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(APIKeyMiddleware(container.Config, container.Logger))

	// Bill routes
	protected.HandleFunc("/bills/format", billHandler.FormatBill).Methods("POST")
	protected.HandleFunc("/bills/export", billHandler.ExportBill).Methods("POST")
	protected.HandleFunc("/bills/message", billHandler.BuildMessage).Methods("POST")
	protected.HandleFunc("/bills/whatsapp-link", billHandler.BuildWhatsAppLink).Methods("POST")

	// Export record routes
	protected.HandleFunc("/exports", billHandler.ListExports).Methods("GET")
	protected.HandleFunc("/exports/{id}", billHandler.GetExport).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // POS dev server
			"http://localhost:4173", // POS preview
			"http://localhost:3000", // Alternative dev port
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-API-Key",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
