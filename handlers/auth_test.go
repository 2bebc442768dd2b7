package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/padraicbc/blogapi/middleware"
)

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, mock := newTestHandler(t)

		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		c, rec := newJSONContext(t, http.MethodPost, "/api/register",
			`{"username":"alice","password":"secret","confirm_password":"secret"}`)

		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"message":"User registered successfully"}`, rec.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("password mismatch persists nothing", func(t *testing.T) {
		h, mock := newTestHandler(t)

		c, _ := newJSONContext(t, http.MethodPost, "/api/register",
			`{"username":"alice","password":"one","confirm_password":"two"}`)

		he := asHTTPError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, he.Code)
		assert.Equal(t, "Passwords do not match", he.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		h, mock := newTestHandler(t)

		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "users_username_key" (SQLSTATE=23505)`))

		c, _ := newJSONContext(t, http.MethodPost, "/api/register",
			`{"username":"alice","password":"secret","confirm_password":"secret"}`)

		he := asHTTPError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, he.Code)
		assert.Equal(t, "Username already exists", he.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing username", func(t *testing.T) {
		h, _ := newTestHandler(t)

		c, _ := newJSONContext(t, http.MethodPost, "/api/register",
			`{"username":"  ","password":"secret","confirm_password":"secret"}`)

		he := asHTTPError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func userRows(t *testing.T, username, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "username", "password_hash"}).
		AddRow(1, username, string(hash))
}

func TestLogin(t *testing.T) {
	t.Run("correct credentials return verifiable token", func(t *testing.T) {
		h, mock := newTestHandler(t)

		mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WillReturnRows(userRows(t, "alice", "secret"))

		c, rec := newJSONContext(t, http.MethodPost, "/api/login",
			`{"username":"alice","password":"secret"}`)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotEmpty(t, body["access_token"])

		// The token's embedded identity matches the user that logged in.
		username, err := mw.ParseToken(body["access_token"], testJWTKey)
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("wrong password", func(t *testing.T) {
		h, mock := newTestHandler(t)

		mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WillReturnRows(userRows(t, "alice", "secret"))

		c, _ := newJSONContext(t, http.MethodPost, "/api/login",
			`{"username":"alice","password":"wrong"}`)

		he := asHTTPError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "Invalid credentials", he.Message)
	})

	t.Run("unknown username gets the same response", func(t *testing.T) {
		h, mock := newTestHandler(t)

		mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}))

		c, _ := newJSONContext(t, http.MethodPost, "/api/login",
			`{"username":"nobody","password":"secret"}`)

		he := asHTTPError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "Invalid credentials", he.Message)
	})
}

func TestPasswordHashing(t *testing.T) {
	// Each hash call salts independently, both still verify.
	h1, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, string(h1), string(h2))
	assert.NoError(t, bcrypt.CompareHashAndPassword(h1, []byte("secret")))
	assert.NoError(t, bcrypt.CompareHashAndPassword(h2, []byte("secret")))
	assert.Error(t, bcrypt.CompareHashAndPassword(h1, []byte("other")))
}
