package services

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/solcialhq/forum-backend/internal/authority"
	"github.com/solcialhq/forum-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegistryService owns the singleton forum row, its counters, and the admin
// authority. Administrative terminal transitions (close, delete) live here.
type RegistryService struct {
	db   *gorm.DB
	auth authority.Authority
}

func NewRegistryService(db *gorm.DB, auth authority.Authority) *RegistryService {
	return &RegistryService{db: db, auth: auth}
}

// Authority exposes the admin capability set for middleware.
func (s *RegistryService) Authority() authority.Authority {
	return s.auth
}

// InitializeForum creates the forum record with all counters at zero. Only
// members of the admin set may call it, and only once per deployment.
func (s *RegistryService) InitializeForum(adminID uuid.UUID) (*models.Forum, error) {
	if !s.auth.IsAdmin(adminID) {
		return nil, ErrNotAdmin
	}

	forum := &models.Forum{
		ID:      models.ForumID,
		AdminID: adminID,
		Version: models.ForumVersion,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Forum
		if err := tx.First(&existing, "id = ?", models.ForumID).Error; err == nil {
			return ErrForumExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(forum).Error; err != nil {
			return err
		}
		return emitEvent(tx, models.EventForumInitialized, map[string]interface{}{
			"admin":   adminID,
			"version": forum.Version,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("forum initialized", "admin", adminID, "version", forum.Version)
	return forum, nil
}

// Forum returns the current forum record.
func (s *RegistryService) Forum() (*models.Forum, error) {
	var forum models.Forum
	if err := s.db.First(&forum, "id = ?", models.ForumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForumNotFound
		}
		return nil, err
	}
	return &forum, nil
}

// CloseForum removes the forum record. Content rows keep their ids; counters
// are gone with the forum, so this is a terminal operation.
func (s *RegistryService) CloseForum(adminID uuid.UUID) error {
	if !s.auth.IsAdmin(adminID) {
		return ErrNotAdmin
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Forum{}, "id = ?", models.ForumID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrForumNotFound
		}
		return emitEvent(tx, models.EventForumClosed, map[string]interface{}{
			"admin": adminID,
		})
	})
}

// DeletePost permanently removes a post. Votes and reports referencing it
// are left in place; readers must tolerate orphans.
func (s *RegistryService) DeletePost(adminID uuid.UUID, postID uint64) error {
	if !s.auth.IsAdmin(adminID) {
		return ErrNotAdmin
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, "id = ?", postID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidPostID
		}
		return emitEvent(tx, models.EventPostDeleted, map[string]interface{}{
			"post_id": postID,
			"admin":   adminID,
		})
	})
}

// DeleteReply permanently removes a reply, with the same orphan caveat as
// DeletePost.
func (s *RegistryService) DeleteReply(adminID uuid.UUID, replyID uint64) error {
	if !s.auth.IsAdmin(adminID) {
		return ErrNotAdmin
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var reply models.Reply
		if err := tx.First(&reply, "id = ?", replyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidReplyID
			}
			return err
		}
		if err := tx.Delete(&models.Reply{}, "id = ?", reply.ID).Error; err != nil {
			return err
		}
		return emitEvent(tx, models.EventReplyDeleted, map[string]interface{}{
			"reply_id": reply.ID,
			"post_id":  reply.PostID,
			"admin":    adminID,
		})
	})
}

// forumRow reads the forum inside a transaction without touching counters.
func forumRow(tx *gorm.DB) (*models.Forum, error) {
	var forum models.Forum
	if err := tx.First(&forum, "id = ?", models.ForumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForumNotFound
		}
		return nil, err
	}
	return &forum, nil
}

// allocateID bumps one forum counter and returns the pre-increment value,
// which becomes the new record's id. The increment-and-read is a single
// UPDATE ... RETURNING, so ids stay dense and are never reused.
func allocateID(tx *gorm.DB, column string) (uint64, error) {
	var forum models.Forum
	res := tx.Model(&forum).
		Clauses(clause.Returning{}).
		Where("id = ?", models.ForumID).
		Update(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrForumNotFound
	}

	var next uint64
	switch column {
	case "post_count":
		next = forum.PostCount
	case "reply_count":
		next = forum.ReplyCount
	case "report_count":
		next = forum.ReportCount
	}
	return next - 1, nil
}
