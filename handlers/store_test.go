package handlers

import (
	"context"
	"net/http"

	"github.com/biblo/backend/middleware"
	"github.com/biblo/backend/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeStore is an in-memory stand-in for *store.DB used by the handler
// tests. Absence is (nil, nil), like the real repositories.
type fakeStore struct {
	genres     map[primitive.ObjectID]models.Genre
	authors    map[primitive.ObjectID]models.Author
	publishers map[primitive.ObjectID]models.Publisher
	books      map[primitive.ObjectID]models.Book
	users      map[primitive.ObjectID]models.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		genres:     map[primitive.ObjectID]models.Genre{},
		authors:    map[primitive.ObjectID]models.Author{},
		publishers: map[primitive.ObjectID]models.Publisher{},
		books:      map[primitive.ObjectID]models.Book{},
		users:      map[primitive.ObjectID]models.User{},
	}
}

func (s *fakeStore) AllGenres(ctx context.Context) ([]models.Genre, error) {
	out := make([]models.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		out = append(out, g)
	}
	return out, nil
}

func (s *fakeStore) GenreByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error) {
	if g, ok := s.genres[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (s *fakeStore) InsertGenre(ctx context.Context, g *models.Genre) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	g.ID = id
	s.genres[id] = *g
	return id, nil
}

func (s *fakeStore) UpdateGenre(ctx context.Context, id primitive.ObjectID, g *models.Genre) (*models.Genre, error) {
	if _, ok := s.genres[id]; !ok {
		return nil, nil
	}
	updated := *g
	updated.ID = id
	s.genres[id] = updated
	return &updated, nil
}

func (s *fakeStore) DeleteGenre(ctx context.Context, id primitive.ObjectID) (*models.Genre, error) {
	g, ok := s.genres[id]
	if !ok {
		return nil, nil
	}
	delete(s.genres, id)
	return &g, nil
}

func (s *fakeStore) AllAuthors(ctx context.Context) ([]models.Author, error) {
	out := make([]models.Author, 0, len(s.authors))
	for _, a := range s.authors {
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeStore) AuthorByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	if a, ok := s.authors[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (s *fakeStore) InsertAuthor(ctx context.Context, a *models.Author) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	a.ID = id
	s.authors[id] = *a
	return id, nil
}

func (s *fakeStore) UpdateAuthor(ctx context.Context, id primitive.ObjectID, a *models.Author) (*models.Author, error) {
	if _, ok := s.authors[id]; !ok {
		return nil, nil
	}
	updated := *a
	updated.ID = id
	s.authors[id] = updated
	return &updated, nil
}

func (s *fakeStore) DeleteAuthor(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	a, ok := s.authors[id]
	if !ok {
		return nil, nil
	}
	delete(s.authors, id)
	return &a, nil
}

func (s *fakeStore) AllPublishers(ctx context.Context) ([]models.Publisher, error) {
	out := make([]models.Publisher, 0, len(s.publishers))
	for _, p := range s.publishers {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeStore) PublisherByID(ctx context.Context, id primitive.ObjectID) (*models.Publisher, error) {
	if p, ok := s.publishers[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *fakeStore) InsertPublisher(ctx context.Context, p *models.Publisher) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	p.ID = id
	s.publishers[id] = *p
	return id, nil
}

func (s *fakeStore) UpdatePublisher(ctx context.Context, id primitive.ObjectID, p *models.Publisher) (*models.Publisher, error) {
	if _, ok := s.publishers[id]; !ok {
		return nil, nil
	}
	updated := *p
	updated.ID = id
	s.publishers[id] = updated
	return &updated, nil
}

func (s *fakeStore) DeletePublisher(ctx context.Context, id primitive.ObjectID) (*models.Publisher, error) {
	p, ok := s.publishers[id]
	if !ok {
		return nil, nil
	}
	delete(s.publishers, id)
	return &p, nil
}

func (s *fakeStore) AllBooks(ctx context.Context) ([]models.Book, error) {
	out := make([]models.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	return out, nil
}

func (s *fakeStore) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	if b, ok := s.books[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (s *fakeStore) InsertBook(ctx context.Context, b *models.Book) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	b.ID = id
	s.books[id] = *b
	return id, nil
}

func (s *fakeStore) UpdateBook(ctx context.Context, id primitive.ObjectID, b *models.Book) (*models.Book, error) {
	if _, ok := s.books[id]; !ok {
		return nil, nil
	}
	updated := *b
	updated.ID = id
	s.books[id] = updated
	return &updated, nil
}

func (s *fakeStore) DeleteBook(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, nil
	}
	delete(s.books, id)
	return &b, nil
}

func (s *fakeStore) AllUsers(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeStore) UserByEmail(ctx context.Context, eMail string) (*models.User, error) {
	for _, u := range s.users {
		if u.EMail == eMail {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *fakeStore) InsertUser(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	u.ID = id
	s.users[id] = *u
	return id, nil
}

func (s *fakeStore) UpdateUser(ctx context.Context, id primitive.ObjectID, u *models.User) (*models.User, error) {
	if _, ok := s.users[id]; !ok {
		return nil, nil
	}
	updated := *u
	updated.ID = id
	s.users[id] = updated
	return &updated, nil
}

func (s *fakeStore) DeleteUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	delete(s.users, id)
	return &u, nil
}

const testSecret = "test-secret"

// newTestRouter wires the fake store into the same route/gate layout as
// main.go.
func newTestRouter(s *fakeStore) http.Handler {
	zl := zap.NewNop()
	authHandler := &AuthHandler{Store: s, JWTSecret: testSecret, Log: zl}
	usersHandler := &UsersHandler{Store: s, JWTSecret: testSecret, Log: zl}
	genresHandler := &GenresHandler{Store: s, Log: zl}
	authorsHandler := &AuthorsHandler{Store: s, Log: zl}
	publishersHandler := &PublishersHandler{Store: s, Log: zl}
	booksHandler := &BooksHandler{Store: s, Log: zl}

	auth := middleware.Auth(testSecret)
	idParam := middleware.RequireObjectID("id")

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth", authHandler.Login)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", usersHandler.Register)
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/me", usersHandler.Me)
				r.Put("/me", usersHandler.UpdateMe)
				r.Delete("/me", usersHandler.DeleteMe)
			})
			r.Group(func(r chi.Router) {
				r.Use(auth, middleware.Admin)
				r.Get("/", usersHandler.List)
				r.With(idParam).Get("/{id}", usersHandler.Get)
				r.With(idParam).Put("/{id}", usersHandler.Update)
				r.With(idParam).Delete("/{id}", usersHandler.Delete)
			})
		})

		for _, res := range []struct {
			path                             string
			list, get, create, update, del   http.HandlerFunc
		}{
			{"/genres", genresHandler.List, genresHandler.Get, genresHandler.Create, genresHandler.Update, genresHandler.Delete},
			{"/authors", authorsHandler.List, authorsHandler.Get, authorsHandler.Create, authorsHandler.Update, authorsHandler.Delete},
			{"/publishers", publishersHandler.List, publishersHandler.Get, publishersHandler.Create, publishersHandler.Update, publishersHandler.Delete},
			{"/books", booksHandler.List, booksHandler.Get, booksHandler.Create, booksHandler.Update, booksHandler.Delete},
		} {
			res := res
			r.Route(res.path, func(r chi.Router) {
				r.Get("/", res.list)
				r.With(idParam).Get("/{id}", res.get)
				r.Group(func(r chi.Router) {
					r.Use(auth, middleware.Admin)
					r.Post("/", res.create)
					r.With(idParam).Put("/{id}", res.update)
					r.With(idParam).Delete("/{id}", res.del)
				})
			})
		}
	})
	return r
}

func adminToken() string {
	token, _ := middleware.SignToken(testSecret, primitive.NewObjectID().Hex(), true)
	return token
}

func userToken(id primitive.ObjectID) string {
	token, _ := middleware.SignToken(testSecret, id.Hex(), false)
	return token
}
