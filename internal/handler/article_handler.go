package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "linkboard/internal/errors"
	"linkboard/internal/service"
)

// ArticleHandler handles article endpoints.
type ArticleHandler struct {
	articleService service.ArticleService
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(articleService service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// PostArticleRequest represents an article submission.
type PostArticleRequest struct {
	URL   string `json:"url" validate:"required"`
	Title string `json:"title"`
}

// List godoc
// @Summary List all articles, newest first
// @Tags articles
// @Produce json
// @Success 200 {array} model.FeedItem
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.articleService.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Post a new article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PostArticleRequest true "Article data"
// @Success 201 {object} model.Article
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	claims, ok := CurrentClaims(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidCredential)
	}

	var req PostArticleRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewInvalidInput("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, invalidInputFromValidation(err))
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	article, err := h.articleService.Post(ctx, claims.UserID, req.URL, req.Title)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, article)
}

// Delete godoc
// @Summary Delete an article (owner or admin)
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	claims, ok := CurrentClaims(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidCredential)
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondError(c, apperrors.NewInvalidInput("invalid article id"))
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.articleService.Delete(ctx, claims.UserID, uint(id)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "article deleted successfully",
	})
}
