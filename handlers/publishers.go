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

type PublisherStore interface {
	AllPublishers(ctx context.Context) ([]models.Publisher, error)
	PublisherByID(ctx context.Context, id primitive.ObjectID) (*models.Publisher, error)
	InsertPublisher(ctx context.Context, p *models.Publisher) (primitive.ObjectID, error)
	UpdatePublisher(ctx context.Context, id primitive.ObjectID, p *models.Publisher) (*models.Publisher, error)
	DeletePublisher(ctx context.Context, id primitive.ObjectID) (*models.Publisher, error)
}

type PublishersHandler struct {
	Store PublisherStore
	Log   *zap.Logger
}

type PublisherRequest struct {
	Name string `json:"name" validate:"required,min=5,max=55"`
}

func (h *PublishersHandler) List(w http.ResponseWriter, r *http.Request) {
	publishers, err := h.Store.AllPublishers(r.Context())
	if err != nil {
		h.Log.Error("list publishers", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if publishers == nil {
		publishers = []models.Publisher{}
	}
	respond.JSON(w, http.StatusOK, publishers)
}

func (h *PublishersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
publisher, err := h.Store.PublisherByID(r.Context(), id)
	if err != nil {
		h.Log.Error("get publisher", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if publisher == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No publisher was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, publisher)
}

func (h *PublishersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PublisherRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - invalid JSON body")
		return
	}
	if err := validation.Check(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	publisher := &models.Publisher{Name: req.Name}
	id, err := h.Store.InsertPublisher(r.Context(), publisher)
	if err != nil {
		h.Log.Error("create publisher", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	publisher.ID = id
	respond.JSON(w, http.StatusOK, publisher)
}

func (h *PublishersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
var req PublisherRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - invalid JSON body")
		return
	}
	if err := validation.Check(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	publisher, err := h.Store.UpdatePublisher(r.Context(), id, &models.Publisher{Name: req.Name})
	if err != nil {
		h.Log.Error("update publisher", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if publisher == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No publisher was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, publisher)
}

func (h *PublishersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
publisher, err := h.Store.DeletePublisher(r.Context(), id)
	if err != nil {
		h.Log.Error("delete publisher", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if publisher == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No publisher was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, publisher)
}
