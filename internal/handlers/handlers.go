package handlers

import (
	"net/http"

	"shop/internal/middleware"
	"shop/internal/session"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
)

func NewRouters(
	uh *UserHandlers,
	lh *LedgerHandlers,
	ch *CatalogHandlers,
	sm session.SessionManagerRepo,
) http.Handler {
	r := mux.NewRouter()

	initHandlers(r, sm, uh, lh, ch)

	// Фронт живет на другом origin, так что без CORS никуда
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	return c.Handler(r)
}

func initHandlers(
	r *mux.Router,
	sm session.SessionManagerRepo,
	userHandler *UserHandlers,
	ledgerHandler *LedgerHandlers,
	catalogHandler *CatalogHandlers,
) {
	noAuthRouter := r.PathPrefix("/api").Subrouter()
	noAuthRouter.HandleFunc("/auth/register", userHandler.Register).Methods("POST")
	noAuthRouter.HandleFunc("/auth/login", userHandler.Login).Methods("POST")
	noAuthRouter.HandleFunc("/cosmetics", catalogHandler.List).Methods("GET")
	noAuthRouter.HandleFunc("/cosmetics/{id}", catalogHandler.GetItem).Methods("GET")

	authRouter := r.PathPrefix("/api/user").Subrouter()
	authRouter.Use(middleware.Auth(sm))
	authRouter.HandleFunc("/me", userHandler.Me).Methods("GET")
	authRouter.HandleFunc("/profile", userHandler.UpdateProfile).Methods("PATCH")
	authRouter.HandleFunc("/purchase/{id}", ledgerHandler.Purchase).Methods("POST")
	authRouter.HandleFunc("/refund/{id}", ledgerHandler.Refund).Methods("POST")
	authRouter.HandleFunc("/recharge", ledgerHandler.Recharge).Methods("POST")
	authRouter.HandleFunc("/my-items", ledgerHandler.MyItems).Methods("GET")
	authRouter.HandleFunc("/purchased-ids", ledgerHandler.PurchasedIDs).Methods("GET")
	authRouter.HandleFunc("/history", ledgerHandler.History).Methods("GET")
}
