package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/padraicbc/blogapi/models"
)

type blogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Blogs returns all posts, oldest first. No authentication required.
func (h *Handler) Blogs(c echo.Context) error {
	blogs := []models.Blog{}
	err := h.db.NewSelect().Model(&blogs).
		OrderExpr("timestamp ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string][]models.Blog{"blogs": blogs})
}

// GetBlog returns a single post by id.
func (h *Handler) GetBlog(c echo.Context) error {
	id := c.Param("id")

	blog := &models.Blog{}
	err := h.db.NewSelect().Model(blog).
		Where("id = ?", id).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]*models.Blog{"blog": blog})
}

// CreateBlog inserts a new post. The author is always the verified identity
// from the token; a fresh id is generated per insert.
func (h *Handler) CreateBlog(c echo.Context) error {
	author, _ := c.Get("username").(string)
	if author == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}

	blog := &models.Blog{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Content:   req.Content,
		Author:    author,
		Timestamp: time.Now().UTC(),
	}

	if _, err := h.db.NewInsert().Model(blog).Exec(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "Blog created successfully"})
}

// UpdateBlog replaces title and content of a post owned by the requester.
// Ownership is checked in the same statement as the update; a miss on either
// id or author yields the same 404 so existence is not leaked to non-owners.
func (h *Handler) UpdateBlog(c echo.Context) error {
	author, _ := c.Get("username").(string)
	if author == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id := c.Param("id")

	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.db.NewUpdate().Model((*models.Blog)(nil)).
		Set("title = ?", req.Title).
		Set("content = ?", req.Content).
		Where("id = ?", id).
		Where("author = ?", author).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if rows == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Blog not found or unauthorized")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Blog updated successfully"})
}

// DeleteBlog removes a post owned by the requester, with the same combined
// not-found/unauthorized outcome as UpdateBlog.
func (h *Handler) DeleteBlog(c echo.Context) error {
	author, _ := c.Get("username").(string)
	if author == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id := c.Param("id")

	res, err := h.db.NewDelete().Model((*models.Blog)(nil)).
		Where("id = ?", id).
		Where("author = ?", author).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if rows == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Blog not found or unauthorized")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Blog deleted successfully"})
}
