package router

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"memberportal/internal/http/handlers"
	"memberportal/internal/http/middleware"
	"memberportal/internal/security"
	"memberportal/internal/session"
	"memberportal/internal/store"
	"memberportal/internal/validate"
)

// Setup wires handlers and guards onto one router. Everything the handlers
// need comes in as an argument; there are no package-level singletons.
func Setup(st store.Store, sm *session.Manager, hasher *security.Hasher, v *validate.Validator, log *zap.Logger) *mux.Router {
	r := mux.NewRouter()

	auth := handlers.NewAuthHandler(st, hasher, sm, v, log)
	members := handlers.NewMemberHandler(st, sm, v, log)
	admin := handlers.NewAdminHandler(st, v, log)

	r.HandleFunc("/", members.Home).Methods("GET")
	r.HandleFunc("/signup", auth.SignupPage).Methods("GET")
	r.HandleFunc("/signup", auth.Signup).Methods("POST")
	r.HandleFunc("/login", auth.LoginPage).Methods("GET")
	r.HandleFunc("/login", auth.Login).Methods("POST")
	r.HandleFunc("/logout", auth.Logout).Methods("GET")

	memberRoutes := r.PathPrefix("/members").Subrouter()
	memberRoutes.Use(middleware.RequireLogin(sm))
	memberRoutes.HandleFunc("", members.Members).Methods("GET")
	memberRoutes.HandleFunc("/lookup", members.Lookup).Methods("GET")

	adminRoutes := r.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.RequireAdmin(sm))
	adminRoutes.HandleFunc("", admin.ListUsers).Methods("GET")
	adminRoutes.HandleFunc("/promote", admin.Promote).Methods("GET")
	adminRoutes.HandleFunc("/demote", admin.Demote).Methods("GET")

	return r
}
