package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"linkboard/internal/cache"
	apperrors "linkboard/internal/errors"
	"linkboard/internal/model"
	"linkboard/internal/repository"
)

const (
	feedCacheKey = "articles:feed"
	feedCacheTTL = 30 * time.Second
)

// ArticleService handles the public feed and article mutations.
type ArticleService interface {
	List(ctx context.Context) ([]model.FeedItem, error)
	Post(ctx context.Context, userID uint, url, title string) (*model.Article, error)
	Delete(ctx context.Context, actorID, articleID uint) error
}

type articleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	cache    *cache.Client
}

// NewArticleService creates a new article service.
func NewArticleService(articles repository.ArticleRepository, users repository.UserRepository, cache *cache.Client) ArticleService {
	return &articleService{
		articles: articles,
		users:    users,
		cache:    cache,
	}
}

// CanDelete decides whether actor may delete article: owners may delete
// their own articles, admins may delete any. Evaluated server-side on
// every delete regardless of what the client believes.
func CanDelete(actor *model.User, article *model.Article) bool {
	return actor.ID == article.UserID || actor.IsAdmin
}

// NormalizeURL trims the submitted url and prepends https:// when no
// scheme separator is present. Submissions are otherwise accepted as
// free text; no well-formedness validation is applied.
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperrors.NewInvalidInput("url is required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	return trimmed, nil
}

// List returns the public feed, newest first. The feed is cached briefly
// and invalidated on every mutation.
func (s *articleService) List(ctx context.Context) ([]model.FeedItem, error) {
	if data, _ := s.cache.Get(ctx, feedCacheKey); data != nil {
		var cached []model.FeedItem
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.articles.ListFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}

	if payload, err := json.Marshal(items); err == nil {
		_ = s.cache.Set(ctx, feedCacheKey, payload, feedCacheTTL)
	}
	return items, nil
}

// Post persists a new article owned by userID.
func (s *articleService) Post(ctx context.Context, userID uint, url, title string) (*model.Article, error) {
	normalized, err := NormalizeURL(url)
	if err != nil {
		return nil, err
	}

	article := &model.Article{
		UserID: userID,
		URL:    normalized,
	}
	if t := strings.TrimSpace(title); t != "" {
		article.Title = &t
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	_ = s.cache.Delete(ctx, feedCacheKey)
	return article, nil
}

// Delete removes an article if the actor is its owner or an admin. The
// existence check runs first so an absent article reports not-found to
// every actor, authorized or not.
func (s *articleService) Delete(ctx context.Context, actorID, articleID uint) error {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrArticleNotFound
		}
		return fmt.Errorf("find article: %w", err)
	}

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("find actor: %w", err)
	}

	if !CanDelete(actor, article) {
		return apperrors.ErrForbidden
	}

	if err := s.articles.Delete(ctx, article.ID); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	_ = s.cache.Delete(ctx, feedCacheKey)
	return nil
}
