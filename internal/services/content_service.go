package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/solcialhq/forum-backend/internal/ledger"
	"github.com/solcialhq/forum-backend/internal/models"
	"gorm.io/gorm"
)

// ContentService creates posts and replies. Every creation charges the
// caller's fee in the same transaction as the insert and the counter bump.
type ContentService struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

func NewContentService(db *gorm.DB, l *ledger.Ledger) *ContentService {
	return &ContentService{db: db, ledger: l}
}

// CreatePost creates a post, paying the native post fee to the platform.
func (s *ContentService) CreatePost(userID uuid.UUID, content string) (*models.Post, error) {
	return s.createPost(userID, content, s.ledger.Native())
}

// CreatePostWithToken is the alternate-currency variant.
func (s *ContentService) CreatePostWithToken(userID uuid.UUID, content string) (*models.Post, error) {
	return s.createPost(userID, content, s.ledger.Token())
}

func (s *ContentService) createPost(userID uuid.UUID, content string, pay ledger.Method) (*models.Post, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if err := validateIdentity(userID); err != nil {
		return nil, err
	}

	var post *models.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := forumRow(tx); err != nil {
			return err
		}
		if err := pay.Charge(tx, userID, ledger.PurposePost, ledger.Platform()); err != nil {
			return err
		}

		id, err := allocateID(tx, "post_count")
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		post = &models.Post{
			ID:        id,
			RecordKey: models.ContentKey(models.SubjectPost, models.ForumID, id),
			AuthorID:  userID,
			Content:   content,
			CreatedAt: now,
		}
		if err := tx.Create(post).Error; err != nil {
			return err
		}

		return emitEvent(tx, models.EventPostCreated, map[string]interface{}{
			"post_id":    post.ID,
			"author":     post.AuthorID,
			"content":    post.Content,
			"timestamp":  now.Unix(),
			"record_key": post.RecordKey,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("post created", "post_id", post.ID, "author", userID)
	return post, nil
}

// CreateReply creates a reply under an existing post, paying the native
// reply fee to the parent post's author.
func (s *ContentService) CreateReply(userID uuid.UUID, postID uint64, content string) (*models.Reply, error) {
	return s.createReply(userID, postID, content, false)
}

// CreateReplyWithToken is the alternate-currency variant; the fee settles in
// the author's token account.
func (s *ContentService) CreateReplyWithToken(userID uuid.UUID, postID uint64, content string) (*models.Reply, error) {
	return s.createReply(userID, postID, content, true)
}

func (s *ContentService) createReply(userID uuid.UUID, postID uint64, content string, useToken bool) (*models.Reply, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if err := validateIdentity(userID); err != nil {
		return nil, err
	}

	pay := s.ledger.Native()
	if useToken {
		pay = s.ledger.Token()
	}

	var reply *models.Reply
	err := s.db.Transaction(func(tx *gorm.DB) error {
		forum, err := forumRow(tx)
		if err != nil {
			return err
		}
		if postID >= forum.PostCount {
			return ErrInvalidPostID
		}

		var parent models.Post
		if err := tx.First(&parent, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidPostID
			}
			return err
		}

		if err := pay.Charge(tx, userID, ledger.PurposeReply, ledger.Author(parent.AuthorID)); err != nil {
			return err
		}

		id, err := allocateID(tx, "reply_count")
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		reply = &models.Reply{
			ID:        id,
			RecordKey: models.ContentKey(models.SubjectReply, models.ForumID, id),
			PostID:    parent.ID,
			AuthorID:  userID,
			Content:   content,
			CreatedAt: now,
		}
		if err := tx.Create(reply).Error; err != nil {
			return err
		}

		return emitEvent(tx, models.EventReplyCreated, map[string]interface{}{
			"reply_id":   reply.ID,
			"post_id":    reply.PostID,
			"author":     reply.AuthorID,
			"content":    reply.Content,
			"timestamp":  now.Unix(),
			"record_key": reply.RecordKey,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("reply created", "reply_id", reply.ID, "post_id", postID, "author", userID)
	return reply, nil
}

// GetPost fetches one post by id.
func (s *ContentService) GetPost(postID uint64) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidPostID
		}
		return nil, err
	}
	return &post, nil
}

// ListPosts pages through posts, newest first.
func (s *ContentService) ListPosts(limit, offset int) ([]models.Post, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := s.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := s.db.Order("id DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, total, err
}

// ListReplies returns a post's replies in creation order.
func (s *ContentService) ListReplies(postID uint64, limit, offset int) ([]models.Reply, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var replies []models.Reply
	err := s.db.Where("post_id = ?", postID).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&replies).Error
	return replies, err
}
