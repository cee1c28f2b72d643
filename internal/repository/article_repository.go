package repository

import (
	"context"

	"gorm.io/gorm"

	"linkboard/internal/model"
)

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	FindByID(ctx context.Context, id uint) (*model.Article, error)
	Delete(ctx context.Context, id uint) error
	ListFeed(ctx context.Context) ([]model.FeedItem, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository builds a GORM-backed repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) FindByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Article{}, id).Error
}

// ListFeed returns the public feed, newest first, with author info joined in.
func (r *articleRepository) ListFeed(ctx context.Context) ([]model.FeedItem, error) {
	var items []model.FeedItem
	err := r.db.WithContext(ctx).
		Table("articles").
		Select("articles.id, articles.url, articles.title, articles.created_at, users.username, users.id AS user_id").
		Joins("JOIN users ON users.id = articles.user_id").
		Order("articles.created_at DESC, articles.id DESC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
