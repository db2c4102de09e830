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

// BookStore covers the book collection plus the lookups needed to resolve
// the author/genre/publisher references before a write.
type BookStore interface {
	AllBooks(ctx context.Context) ([]models.Book, error)
	BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	InsertBook(ctx context.Context, b *models.Book) (primitive.ObjectID, error)
	UpdateBook(ctx context.Context, id primitive.ObjectID, b *models.Book) (*models.Book, error)
	DeleteBook(ctx context.Context, id primitive.ObjectID) (*models.Book, error)

	GenreByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error)
	AuthorByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error)
	PublisherByID(ctx context.Context, id primitive.ObjectID) (*models.Publisher, error)
}

type BooksHandler struct {
	Store BookStore
	Log   *zap.Logger
}

type BookRequest struct {
	Title       string   `json:"title" validate:"required"`
	AuthorID    string   `json:"authorId" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	PublisherID string   `json:"publisherId" validate:"required"`
	ItemStock   *int     `json:"itemStock" validate:"required,gte=0"`
	GenreID     string   `json:"genreId" validate:"required"`
	ISBN        string   `json:"isbn" validate:"required"`
	Available   *bool    `json:"available" validate:"required"`
	BookCover   string   `json:"bookCover" validate:"omitempty,max=255"`
}

// resolveRefs looks up the referenced genre, author and publisher in that
// order. The first missing reference aborts with a message naming it, so no
// partial book is ever written.
func (h *BooksHandler) resolveRefs(ctx context.Context, req *BookRequest) (*models.Genre, *models.Author, *models.Publisher, string, error) {
	genreID, err := primitive.ObjectIDFromHex(req.GenreID)
	if err != nil {
		return nil, nil, nil, "genreId is not a valid Id", nil
	}
	authorID, err := primitive.ObjectIDFromHex(req.AuthorID)
	if err != nil {
		return nil, nil, nil, "authorId is not a valid Id", nil
	}
	publisherID, err := primitive.ObjectIDFromHex(req.PublisherID)
	if err != nil {
		return nil, nil, nil, "publisherId is not a valid Id", nil
	}

	genre, err := h.Store.GenreByID(ctx, genreID)
	if err != nil {
		return nil, nil, nil, "", err
	}
	if genre == nil {
		return nil, nil, nil, fmt.Sprintf("no genre was found with %s Id", req.GenreID), nil
	}
	author, err := h.Store.AuthorByID(ctx, authorID)
	if err != nil {
		return nil, nil, nil, "", err
	}
	if author == nil {
		return nil, nil, nil, fmt.Sprintf("no author was found with %s Id", req.AuthorID), nil
	}
	publisher, err := h.Store.PublisherByID(ctx, publisherID)
	if err != nil {
		return nil, nil, nil, "", err
	}
	if publisher == nil {
		return nil, nil, nil, fmt.Sprintf("no publisher was found with %s Id", req.PublisherID), nil
	}
	return genre, author, publisher, "", nil
}

// buildBook embeds {_id, name} snapshots of the resolved references. The
// snapshots are copies; they go stale if the referenced document changes.
func buildBook(req *BookRequest, genre *models.Genre, author *models.Author, publisher *models.Publisher) *models.Book {
	return &models.Book{
		Title:     req.Title,
		Author:    models.BookRef{ID: author.ID, Name: author.Name},
		Price:     *req.Price,
		Publisher: models.BookRef{ID: publisher.ID, Name: publisher.Name},
		ItemStock: *req.ItemStock,
		Genre:     models.BookRef{ID: genre.ID, Name: genre.Name},
		ISBN:      req.ISBN,
		Available: *req.Available,
		BookCover: req.BookCover,
	}
}

func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.AllBooks(r.Context())
	if err != nil {
		h.Log.Error("list books", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	respond.JSON(w, http.StatusOK, books)
}

func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
book, err := h.Store.BookByID(r.Context(), id)
	if err != nil {
		h.Log.Error("get book", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if book == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No book was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, book)
}

func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - invalid JSON body")
		return
	}
	if err := validation.Check(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	genre, author, publisher, refErr, err := h.resolveRefs(r.Context(), &req)
	if err != nil {
		h.Log.Error("resolve book references", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if refErr != "" {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+refErr)
		return
	}
	book := buildBook(&req, genre, author, publisher)
	id, err := h.Store.InsertBook(r.Context(), book)
	if err != nil {
		h.Log.Error("create book", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	book.ID = id
	respond.JSON(w, http.StatusOK, book)
}

func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
var req BookRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - invalid JSON body")
		return
	}
	if err := validation.Check(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+err.Error())
		return
	}
	genre, author, publisher, refErr, err := h.resolveRefs(r.Context(), &req)
	if err != nil {
		h.Log.Error("resolve book references", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if refErr != "" {
		respond.Error(w, http.StatusBadRequest, "Bad Request - "+refErr)
		return
	}
	book := buildBook(&req, genre, author, publisher)
	updated, err := h.Store.UpdateBook(r.Context(), id, book)
	if err != nil {
		h.Log.Error("update book", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if updated == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No book was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
book, err := h.Store.DeleteBook(r.Context(), id)
	if err != nil {
		h.Log.Error("delete book", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if book == nil {
		respond.Error(w, http.StatusNotFound, fmt.Sprintf("Not Found - No book was found with %s Id", id.Hex()))
		return
	}
	respond.JSON(w, http.StatusOK, book)
}
