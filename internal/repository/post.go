package repository

import (
	"context"

	"devconnector/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts, likes and comments.
type PostRepository interface {
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	// Delete removes the post with its likes and comments.
	Delete(ctx context.Context, id uint) error
	// Like adds userID to the post's likes. It reports false if the user
	// had already liked it.
	Like(ctx context.Context, postID, userID uint) (bool, error)
	// Unlike removes userID from the post's likes. It reports false if the
	// user had not liked it.
	Unlike(ctx context.Context, postID, userID uint) (bool, error)
	AddComment(ctx context.Context, comment *models.Comment) error
	// RemoveComment deletes the comment only if it belongs to postID and
	// reports whether a row was removed.
	RemoveComment(ctx context.Context, postID, commentID uint) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		})
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withDetails(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		p.Normalize()
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withDetails(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	post.Normalize()
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
	if err == nil {
		post.Normalize()
	}
	return err
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Post{}).Error
	})
}

func (r *postRepository) Like(ctx context.Context, postID, userID uint) (bool, error) {
	// The unique (post_id, user_id) index makes this a conditional push.
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{PostID: postID, UserID: userID})
	return result.RowsAffected > 0, result.Error
}

func (r *postRepository) Unlike(ctx context.Context, postID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	return result.RowsAffected > 0, result.Error
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) RemoveComment(ctx context.Context, postID, commentID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		Delete(&models.Comment{})
	return result.RowsAffected > 0, result.Error
}
