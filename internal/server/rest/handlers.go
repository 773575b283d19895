package rest

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/favkeeper/internal/common"
	"github.com/dmitrijs2005/favkeeper/internal/logging"
	"github.com/gorilla/mux"
)

const invalidCredentialsMessage = "Incorrect user name or password"

type handler struct {
	users  UserService
	pinger Pinger
	logger logging.Logger
}

type registerRequest struct {
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.NewError(common.KindValidation, "Malformed request body", err)
	}
	return nil
}

// itemID returns the decoded {id} path variable. The router matches on the
// escaped path, so the variable still carries percent-encoding.
func itemID(r *http.Request) (string, error) {
	id, err := url.PathUnescape(mux.Vars(r)["id"])
	if err != nil {
		return "", common.NewError(common.KindValidation, "Malformed item id", err)
	}
	return id, nil
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeMessageError(w, err)
		return
	}

	msg, err := h.users.Register(r.Context(), req.UserName, req.Password, req.Password2)
	if err != nil {
		writeMessageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeMessageError(w, err)
		return
	}

	token, err := h.users.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		if common.KindOf(err) == common.KindAuthFailure {
			h.logger.Info(r.Context(), "login rejected", "user", req.UserName, "reason", err.Error())
			writeJSON(w, http.StatusUnprocessableEntity, messageResponse{Message: invalidCredentialsMessage})
			return
		}
		writeMessageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "login successful", Token: token})
}

func (h *handler) listFavourites(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	favourites, err := h.users.GetFavourites(r.Context(), user.ID)
	if err != nil {
		writeFieldError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favourites)
}

func (h *handler) addFavourite(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	id, err := itemID(r)
	if err != nil {
		writeFieldError(w, err)
		return
	}

	favourites, err := h.users.AddFavourite(r.Context(), user.ID, id)
	if err != nil {
		writeFieldError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favourites)
}

func (h *handler) removeFavourite(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	id, err := itemID(r)
	if err != nil {
		writeFieldError(w, err)
		return
	}

	favourites, err := h.users.RemoveFavourite(r.Context(), user.ID, id)
	if err != nil {
		writeFieldError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favourites)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.PingContext(r.Context()); err != nil {
			h.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
