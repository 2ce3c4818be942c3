package server

import (
	"context"
	"net/http"

	"agrilog/internal/handlers"
	applog "agrilog/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/login", handlers.Login)
	mux.HandleFunc("/signup", handlers.Signup)
	mux.HandleFunc("/logout", handlers.Logout)
	mux.Handle("/app/api/form-data", handlers.RequireAuthentication(http.HandlerFunc(handlers.FormData)))
	mux.Handle("/app/api/work-logs", handlers.RequireAuthentication(http.HandlerFunc(handlers.WorkLogResource)))
	mux.Handle("/app/api/work-logs/", handlers.RequireAuthentication(http.HandlerFunc(handlers.WorkLogResource)))
	mux.Handle("/app/api/templates", handlers.RequireAuthentication(http.HandlerFunc(handlers.WorkTemplateResource)))
	mux.Handle("/app/api/templates/", handlers.RequireAuthentication(http.HandlerFunc(handlers.WorkTemplateResource)))
	mux.Handle("/app/api/reports/", handlers.RequireAuthentication(http.HandlerFunc(handlers.ComplianceReport)))
	applog.Debug(context.Background(), "routes registered")
	return mux
}
