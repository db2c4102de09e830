package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/biblo/backend/models"
	"github.com/biblo/backend/respond"
	"github.com/biblo/backend/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type GenreStore interface {
	AllGenres(ctx context.Context) ([]models.Genre, error)
	GenreByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error)
	InsertGenre(ctx context.Context, g *models.Genre) (primitive.ObjectID, error)
	UpdateGenre(ctx context.Context, id primitive.ObjectID, g *models.Genre) (*models.Genre, error)
	DeleteGenre(ctx context.Context, id primitive.ObjectID) (*models.Genre, error)
}

type GenresHandler struct {
	Store GenreStore
	Log   *zap.Logger
}

type GenreRequest struct {
	Name string `json:"name" validate:"required,min=5,max=50"`
}

func (h *GenresHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Store.AllGenres(r.Context())
	if err != nil {
		h.Log.Error("list genres", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if genres == nil {
		genres = []models.Genre{}
	}
	respond.JSON(w, http.StatusOK, genres)
}

func (h *GenresHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
genre, err := h.Store.GenreByID(r.Context(), id)
	if err != nil {
		h.Log.Error("get genre", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if genre == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No genre was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, genre)
}

func (h *GenresHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GenreRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - invalid JSON body")
		return
	}
	if err := validation.Check(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	genre := &models.Genre{Name: req.Name}
	id, err := h.Store.InsertGenre(r.Context(), genre)
	if err != nil {
		h.Log.Error("create genre", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	genre.ID = id
	respond.JSON(w, http.StatusOK, genre)
}

func (h *GenresHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
var req GenreRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - invalid JSON body")
		return
	}
	if err := validation.Check(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	genre, err := h.Store.UpdateGenre(r.Context(), id, &models.Genre{Name: req.Name})
	if err != nil {
		h.Log.Error("update genre", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if genre == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No genre was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, genre)
}

func (h *GenresHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
genre, err := h.Store.DeleteGenre(r.Context(), id)
	if err != nil {
		h.Log.Error("delete genre", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if genre == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No genre was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, genre)
}
