package handlers

import (
	"net/http"

	"github.com/biblo/backend/middleware"
	"github.com/biblo/backend/respond"
	"github.com/biblo/backend/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	Store     UserStore
	JWTSecret string
	Log       *zap.Logger
}

type LoginRequest struct {
	EMail    string `json:"eMail" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
}

type LoginResponse struct {
	EMail string `json:"eMail"`
	Token string `json:"token"`
}

// Login exchanges eMail+password for a signed token. Unknown eMail and wrong
// password answer the same 400 so the response does not reveal which part
// failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - invalid JSON body")
		return
	}
	if err := validation.Check(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}

	user, err := h.Store.UserByEmail(r.Context(), normalizeEmail(req.EMail))
	if err != nil {
		h.Log.Error("login: lookup user", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if user == nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - Email or password not valid")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - Email or password not valid")
		return
	}

	token, err := middleware.SignToken(h.JWTSecret, user.ID.Hex(), user.IsAdmin)
	if err != nil {
		h.Log.Error("login: sign token", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respond.JSON(w, http.StatusOK, LoginResponse{EMail: user.EMail, Token: token})
}
