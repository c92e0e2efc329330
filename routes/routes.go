package routes

import (
	"net/http"

	"authbackend/handlers"
	"authbackend/middleware"

	"go.uber.org/zap"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	userHandler *handlers.UserHandler,
	pdfHandler *handlers.PDFHandler,
	authmw *middleware.Auth,
	logger *zap.Logger,
) {
	wrap := func(h http.HandlerFunc) http.Handler {
		return withCORS(http.HandlerFunc(handlers.RecoverWrapper(logger, h)))
	}

	// Liveness route
	http.Handle("/", wrap(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Welcome to backend!"))
	}))

	// Authentication routes
	http.Handle("/api/authentication/registerUser", wrap(userHandler.Register))
	http.Handle("/api/authentication/loginUser", wrap(userHandler.Login))

	// Admin routes, authenticated then role-checked
	http.Handle("/api/authentication/getAll",
		wrap(authmw.RequireAuth(authmw.RequireAdmin(userHandler.GetAll))))
	http.Handle("/api/authentication/exportUsers",
		wrap(authmw.RequireAuth(authmw.RequireAdmin(pdfHandler.ExportUsers))))
}
