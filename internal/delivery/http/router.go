package http

import (
	"net/http"

	"github.com/ms-tech-geek/e-rickshaw-booking/internal/delivery/http/handler"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	bookingHandler  *handler.BookingHandler
	dispatchHandler *handler.DispatchHandler
	auditLogHandler *handler.AuditLogHandler
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	bookingHandler *handler.BookingHandler,
	dispatchHandler *handler.DispatchHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		bookingHandler:  bookingHandler,
		dispatchHandler: dispatchHandler,
		auditLogHandler: auditLogHandler,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Customer routes
	api.HandleFunc("/bookings", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings", r.bookingHandler.GetBookings).Methods(http.MethodGet)

	// Operator dashboard routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/bookings", r.dispatchHandler.SearchBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", r.dispatchHandler.UpdateBooking).Methods(http.MethodPut)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
