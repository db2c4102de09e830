package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/biblo/backend/middleware"
	"github.com/biblo/backend/models"
	"github.com/biblo/backend/respond"
	"github.com/biblo/backend/store"
	"github.com/biblo/backend/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	AllUsers(ctx context.Context) ([]models.User, error)
	UserByEmail(ctx context.Context, eMail string) (*models.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	InsertUser(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, u *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type UsersHandler struct {
	Store     UserStore
	JWTSecret string
	Log       *zap.Logger
}

type UserRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string `json:"lastName" validate:"required,min=1,max=50"`
	EMail     string `json:"eMail" validate:"required,min=5,max=255,email"`
	Password  string `json:"password" validate:"required,min=5,max=1024"`
	IsAdmin   *bool  `json:"isAdmin"`
}

func normalizeEmail(eMail string) string {
	return strings.ToLower(strings.TrimSpace(eMail))
}

// hashPassword bcrypts the plaintext. bcrypt only reads the first 72 bytes
// and x/crypto rejects longer inputs instead of silently truncating, so
// callers translate ErrPasswordTooLong into a validation failure.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register creates a user account. The response carries a fresh token in the
// x-auth-token header so a client can act as the new user immediately.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - invalid JSON body")
		return
	}
	if err := validation.Check(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	eMail := normalizeEmail(req.EMail)

	existing, err := h.Store.UserByEmail(r.Context(), eMail)
	if err != nil {
		h.Log.Error("register: lookup email", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if existing != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - User already exists")
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			respond.Error(w, http.StatusBadRequest, "Bad Request - password must be at most 72 characters")
			return
		}
		h.Log.Error("register: hash password", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		EMail:     eMail,
		Password:  hash,
		IsAdmin:   false,
	}
	id, err := h.Store.InsertUser(r.Context(), user)
	if err != nil {
		// The unique index catches the race the pre-check cannot.
		if store.IsDuplicateKey(err) {
			respond.Error(w, http.StatusBadRequest, "Bad Request - User already exists")
			return
		}
		h.Log.Error("register: insert user", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	user.ID = id

	token, err := middleware.SignToken(h.JWTSecret, id.Hex(), user.IsAdmin)
	if err != nil {
		h.Log.Error("register: sign token", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.Header().Set(middleware.TokenHeader, token)
	respond.JSON(w, http.StatusOK, models.NewUserResponse(user))
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.AllUsers(r.Context())
	if err != nil {
		h.Log.Error("list users", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, models.NewUserResponse(&users[i]))
	}
	respond.JSON(w, http.StatusOK, out)
}

// Me serves the identity embedded in the caller's token.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := h.callerID(w, r)
	if !ok {
		return
	}
	h.getUser(w, r, id)
}

func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.callerID(w, r)
	if !ok {
		return
	}
	// A user cannot grant themselves the admin flag.
	h.updateUser(w, r, id, false)
}

func (h *UsersHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.callerID(w, r)
	if !ok {
		return
	}
	h.deleteUser(w, r, id)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.getUser(w, r, pathID(r))
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, pathID(r), true)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.deleteUser(w, r, pathID(r))
}

func (h *UsersHandler) callerID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized - The request requires user authentication")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - Invalid token")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *UsersHandler) getUser(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) {
	user, err := h.Store.UserByID(r.Context(), id)
	if err != nil {
		h.Log.Error("get user", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if user == nil {
		respond.Error(w, http.StatusNotFound, "Not Found - User not found")
		return
	}
	respond.JSON(w, http.StatusOK, models.NewUserResponse(user))
}

// updateUser is a full replacement of the mutable fields. The password is
// re-hashed from the supplied plaintext. allowAdminFlag gates whether the
// request may change isAdmin.
func (h *UsersHandler) updateUser(w http.ResponseWriter, r *http.Request, id primitive.ObjectID, allowAdminFlag bool) {
	var req UserRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - invalid JSON body")
		return
	}
	if err := validation.Check(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	existing, err := h.Store.UserByID(r.Context(), id)
	if err != nil {
		h.Log.Error("update user: lookup", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if existing == nil {
		respond.Error(w, http.StatusNotFound, "Not Found - User not found")
		return
	}

	eMail := normalizeEmail(req.EMail)
	owner, err := h.Store.UserByEmail(r.Context(), eMail)
	if err != nil {
		h.Log.Error("update user: lookup email", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if owner != nil && owner.ID != id {
		respond.Error(w, http.StatusBadRequest, "Bad Request - User already exists")
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			respond.Error(w, http.StatusBadRequest, "Bad Request - password must be at most 72 characters")
			return
		}
		h.Log.Error("update user: hash password", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	isAdmin := existing.IsAdmin
	if allowAdminFlag && req.IsAdmin != nil {
		isAdmin = *req.IsAdmin
	}
	updated, err := h.Store.UpdateUser(r.Context(), id, &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		EMail:     eMail,
		Password:  hash,
		IsAdmin:   isAdmin,
	})
	if err != nil {
		if store.IsDuplicateKey(err) {
			respond.Error(w, http.StatusBadRequest, "Bad Request - User already exists")
			return
		}
		h.Log.Error("update user", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if updated == nil {
		respond.Error(w, http.StatusNotFound, "Not Found - User not found")
		return
	}
	respond.JSON(w, http.StatusOK, models.NewUserResponse(updated))
}

func (h *UsersHandler) deleteUser(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) {
	user, err := h.Store.DeleteUser(r.Context(), id)
	if err != nil {
		h.Log.Error("delete user", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if user == nil {
		respond.Error(w, http.StatusNotFound, "Not Found - User not found")
		return
	}
	respond.JSON(w, http.StatusOK, models.NewUserResponse(user))
}
