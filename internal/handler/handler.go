package handler

import (
	"net/http"

	"invoice-desk/internal/auth"
	"invoice-desk/internal/client"
	"invoice-desk/internal/invoice"
	"invoice-desk/internal/logger"
	"invoice-desk/internal/middleware"
	"invoice-desk/internal/numbering"
	"invoice-desk/internal/utils"

	"github.com/gorilla/mux"
)

// Handler serves the REST API on top of the domain services.
type Handler struct {
	AuthSvc       auth.Service
	ClientSvc     client.Service
	InvoiceSvc    invoice.Service
	SecureCookies bool

	// NumberStats, when set, is reported by /health.
	NumberStats func() numbering.Stats

	limiter *middleware.RateLimiter
}

func NewHandler(authSvc auth.Service, clientSvc client.Service, invoiceSvc invoice.Service, secureCookies bool) *Handler {
	return &Handler{
		AuthSvc:       authSvc,
		ClientSvc:     clientSvc,
		InvoiceSvc:    invoiceSvc,
		SecureCookies: secureCookies,
		limiter:       middleware.NewRateLimiter(),
	}
}

// Router wires every route together with the middleware chain.
// corsOrigin is the single frontend origin allowed to call the API.
func (h *Handler) Router(corsOrigin string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/auth/login", h.limiter.Middleware(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(middleware.RequireAuth(h.AuthSvc))
	api.Use(h.limiter.Middleware)

	api.HandleFunc("/clients", h.ListClients).Methods(http.MethodGet)
	api.HandleFunc("/clients", h.CreateClient).Methods(http.MethodPost)
	api.HandleFunc("/clients/{id}", h.GetClient).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id}", h.UpdateClient).Methods(http.MethodPut)
	api.HandleFunc("/clients/{id}", h.DeleteClient).Methods(http.MethodDelete)

	api.HandleFunc("/invoices/next-number", h.NextInvoiceNumber).Methods(http.MethodGet)
	api.HandleFunc("/invoices", h.ListInvoices).Methods(http.MethodGet)
	api.HandleFunc("/invoices", h.CreateInvoice).Methods(http.MethodPost)
	api.HandleFunc("/invoices/{id}", h.GetInvoice).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}", h.UpdateInvoice).Methods(http.MethodPut)
	api.HandleFunc("/invoices/{id}", h.DeleteInvoice).Methods(http.MethodDelete)
	api.HandleFunc("/invoices/{id}/pdf", h.DownloadInvoice).Methods(http.MethodGet)

	api.HandleFunc("/words", h.AmountInWords).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	// Wrapped outside the router so preflights and unmatched routes are
	// still logged and answered with CORS headers.
	var handler http.Handler = r
	handler = middleware.CORS(corsOrigin)(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)

	return handler
}

type healthResponse struct {
	Status    string           `json:"status"`
	Numbering *numbering.Stats `json:"numbering,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if h.NumberStats != nil {
		stats := h.NumberStats()
		resp.Numbering = &stats
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
