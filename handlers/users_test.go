package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/biblo/backend/middleware"
	"github.com/biblo/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const registerBody = `{"firstName":"Ada","lastName":"Lovelace","eMail":"ada@example.com","password":"correct horse"}`

func TestRegister(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/users/", "", registerBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Ada", resp.FirstName)
	assert.Equal(t, "ada@example.com", resp.EMail)
	assert.False(t, resp.IsAdmin)

	// the body must not leak the password in any form
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "correct horse")

	// stored password is a hash of the plaintext, never the plaintext
	id, err := primitive.ObjectIDFromHex(resp.ID)
	require.NoError(t, err)
	stored := store.users[id]
	assert.NotEqual(t, "correct horse", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse")))

	// the response header carries a token usable for the new identity
	token := rec.Header().Get(middleware.TokenHeader)
	require.NotEmpty(t, token)
	rec = doRequest(t, router, http.MethodGet, "/api/users/me", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	rec := doRequest(t, router, http.MethodPost, "/api/users/", "", registerBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/users/", "", registerBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, store.users, 1)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing firstName", `{"lastName":"L","eMail":"a@example.com","password":"secret12"}`},
		{"bad email", `{"firstName":"Ada","lastName":"Lovelace","eMail":"not-an-email","password":"secret12"}`},
		{"short password", `{"firstName":"Ada","lastName":"Lovelace","eMail":"ada@example.com","password":"1234"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			router := newTestRouter(store)
			rec := doRequest(t, router, http.MethodPost, "/api/users/", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, store.users)
		})
	}
}

// bcrypt reads at most 72 bytes, so a password inside the 1024-character
// bound can still be unhashable. That is the caller's mistake, not a server
// fault.
func TestPasswordOver72BytesIsBadRequest(t *testing.T) {
	long := strings.Repeat("a", 100)
	body := fmt.Sprintf(`{"firstName":"Ada","lastName":"Lovelace","eMail":"ada@example.com","password":"%s"}`, long)

	t.Run("register", func(t *testing.T) {
		store := newFakeStore()
		router := newTestRouter(store)
		rec := doRequest(t, router, http.MethodPost, "/api/users/", "", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		_, msg := errorMessage(t, rec)
		assert.Equal(t, "Bad Request - password must be at most 72 characters", msg)
		assert.Empty(t, store.users)
	})

	t.Run("update me", func(t *testing.T) {
		store := newFakeStore()
		router := newTestRouter(store)
		id := primitive.NewObjectID()
		store.users[id] = models.User{ID: id, FirstName: "Ada", LastName: "Lovelace", EMail: "ada@example.com", Password: "hash"}

		rec := doRequest(t, router, http.MethodPut, "/api/users/me", userToken(id), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "hash", store.users[id].Password)
	})
}

func TestUsersMe(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)
	id := primitive.NewObjectID()
	store.users[id] = models.User{ID: id, FirstName: "Ada", LastName: "Lovelace", EMail: "ada@example.com", Password: "hash"}

	t.Run("get", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/users/me", userToken(id), "")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, id.Hex(), resp.ID)
	})

	t.Run("no token", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/users/me", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("cannot self-promote via put", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/api/users/me", userToken(id),
			`{"firstName":"Ada","lastName":"Lovelace","eMail":"ada@example.com","password":"secret12","isAdmin":true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, store.users[id].IsAdmin)
	})

	t.Run("delete then 404", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/api/users/me", userToken(id), "")
		require.Equal(t, http.StatusOK, rec.Code)
		rec = doRequest(t, router, http.MethodGet, "/api/users/me", userToken(id), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUsersByIDRequiresAdmin(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)
	id := primitive.NewObjectID()
	store.users[id] = models.User{ID: id, FirstName: "Ada", LastName: "Lovelace", EMail: "ada@example.com", Password: "hash"}

	rec := doRequest(t, router, http.MethodGet, "/api/users/"+id.Hex(), userToken(primitive.NewObjectID()), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/users/"+id.Hex(), adminToken(), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/users/"+primitive.NewObjectID().Hex(), adminToken(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsersAdminUpdate(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)
	id := primitive.NewObjectID()
	store.users[id] = models.User{ID: id, FirstName: "Ada", LastName: "Lovelace", EMail: "ada@example.com", Password: "hash"}

	rec := doRequest(t, router, http.MethodPut, "/api/users/"+id.Hex(), adminToken(),
		`{"firstName":"Ada","lastName":"King","eMail":"ada@example.com","password":"secret12","isAdmin":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "King", store.users[id].LastName)
	assert.True(t, store.users[id].IsAdmin)
}

func TestUsersList(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)
	id := primitive.NewObjectID()
	store.users[id] = models.User{ID: id, FirstName: "Ada", EMail: "ada@example.com", Password: "hash"}

	rec := doRequest(t, router, http.MethodGet, "/api/users/", adminToken(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")
}
