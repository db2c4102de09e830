package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/biblo/backend/models"
	"github.com/biblo/backend/respond"
	"github.com/biblo/backend/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type AuthorStore interface {
	AllAuthors(ctx context.Context) ([]models.Author, error)
	AuthorByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error)
	InsertAuthor(ctx context.Context, a *models.Author) (primitive.ObjectID, error)
	UpdateAuthor(ctx context.Context, id primitive.ObjectID, a *models.Author) (*models.Author, error)
	DeleteAuthor(ctx context.Context, id primitive.ObjectID) (*models.Author, error)
}

type AuthorsHandler struct {
	Store AuthorStore
	Log   *zap.Logger
}

type AuthorRequest struct {
	Name        string `json:"name" validate:"required,min=5,max=55"`
	Bio         string `json:"bio" validate:"required,min=5,max=255"`
	AuthorPhoto string `json:"authorPhoto" validate:"omitempty,min=5,max=255"`
	Born        string `json:"born" validate:"required"`
	Death       string `json:"death" validate:"omitempty"`
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a valid date", s)
}

func (req *AuthorRequest) toModel() (*models.Author, error) {
	born, err := parseDate(req.Born)
	if err != nil {
		return nil, fmt.Errorf("born must be a valid date")
	}
	author := &models.Author{
		Name:        req.Name,
		Bio:         req.Bio,
		AuthorPhoto: req.AuthorPhoto,
		Born:        born,
	}
	if req.Death != "" {
		death, err := parseDate(req.Death)
		if err != nil {
			return nil, fmt.Errorf("death must be a valid date")
		}
		author.Death = &death
	}
	return author, nil
}

func (h *AuthorsHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.Store.AllAuthors(r.Context())
	if err != nil {
		h.Log.Error("list authors", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if authors == nil {
		authors = []models.Author{}
	}
	respond.JSON(w, http.StatusOK, authors)
}

func (h *AuthorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
author, err := h.Store.AuthorByID(r.Context(), id)
	if err != nil {
		h.Log.Error("get author", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if author == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No author was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, author)
}

func (h *AuthorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AuthorRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - invalid JSON body")
		return
	}
	if err := validation.Check(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	author, err := req.toModel()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	id, err := h.Store.InsertAuthor(r.Context(), author)
	if err != nil {
		h.Log.Error("create author", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	author.ID = id
	respond.JSON(w, http.StatusOK, author)
}

func (h *AuthorsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
var req AuthorRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - invalid JSON body")
		return
	}
	if err := validation.Check(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	author, err := req.toModel()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	updated, err := h.Store.UpdateAuthor(r.Context(), id, author)
	if err != nil {
		h.Log.Error("update author", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if updated == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No author was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *AuthorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
author, err := h.Store.DeleteAuthor(r.Context(), id)
	if err != nil {
		h.Log.Error("delete author", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if author == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No author was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, author)
}
