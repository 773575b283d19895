package rest

import (
	"net/http"

	"github.com/dmitrijs2005/favkeeper/internal/logging"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter wires the routes under both /user and /api/user and wraps them
// with CORS, panic recovery and request logging.
func NewRouter(us UserService, p Pinger, secretKey []byte, logger logging.Logger) http.Handler {
	h := &handler{users: us, pinger: p, logger: logger}
	requireUser := authMiddleware(us, secretKey, logger)

	// Item ids are opaque and may contain an encoded slash.
	r := mux.NewRouter().UseEncodedPath()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	for _, prefix := range []string{"/user", "/api/user"} {
		sub := r.PathPrefix(prefix).Subrouter()
		sub.HandleFunc("/register", h.register).Methods(http.MethodPost)
		sub.HandleFunc("/login", h.login).Methods(http.MethodPost)

		fav := sub.PathPrefix("/favourites").Subrouter()
		fav.Use(requireUser)
		fav.HandleFunc("", h.listFavourites).Methods(http.MethodGet)
		fav.HandleFunc("/{id}", h.addFavourite).Methods(http.MethodPut)
		fav.HandleFunc("/{id}", h.removeFavourite).Methods(http.MethodDelete)
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger}),
		handlers.PrintRecoveryStack(false),
	)

	return recovery(cors(requestLogger(logger)(r)))
}
