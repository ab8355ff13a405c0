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

// RatingService maintains one vote per (content item, voter) and the toggle
// arithmetic over each item's aggregate rating.
//
// Vote fees are deliberately charged before the no-op check: resubmitting
// the same vote direction costs the fee and changes nothing. Token-paid
// votes route asymmetrically - upvote fees to the content's author,
// downvote fees to the platform.
type RatingService struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

func NewRatingService(db *gorm.DB, l *ledger.Ledger) *RatingService {
	return &RatingService{db: db, ledger: l}
}

// RatePost casts or toggles a vote on a post, paying the native vote fee to
// the post's author.
func (s *RatingService) RatePost(voterID uuid.UUID, postID uint64, upvote bool) (*models.Post, error) {
	return s.ratePost(voterID, postID, upvote, false)
}

// RatePostWithToken is the alternate-currency variant.
func (s *RatingService) RatePostWithToken(voterID uuid.UUID, postID uint64, upvote bool) (*models.Post, error) {
	return s.ratePost(voterID, postID, upvote, true)
}

func (s *RatingService) ratePost(voterID uuid.UUID, postID uint64, upvote, useToken bool) (*models.Post, error) {
	if err := validateIdentity(voterID); err != nil {
		return nil, err
	}

	var post models.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		forum, err := forumRow(tx)
		if err != nil {
			return err
		}
		if postID >= forum.PostCount {
			return ErrInvalidPostID
		}
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidPostID
			}
			return err
		}

		if err := s.chargeVote(tx, voterID, post.AuthorID, upvote, useToken); err != nil {
			return err
		}

		newRating, changed, ratedAt, err := applyVote(tx, models.SubjectPost, post.ID, voterID, upvote, post.Rating)
		if err != nil {
			return err
		}
		if !changed {
			// Same-direction resubmission: fee kept, state untouched.
			return nil
		}

		// Condition explicitly: ids start at 0, which gorm reads as an unset
		// primary key.
		if err := tx.Model(&models.Post{}).Where("id = ?", post.ID).
			Update("rating", newRating).Error; err != nil {
			return err
		}
		post.Rating = newRating

		return emitEvent(tx, models.EventPostRated, map[string]interface{}{
			"post_id":    post.ID,
			"user":       voterID,
			"is_upvote":  upvote,
			"new_rating": newRating,
			"timestamp":  ratedAt.Unix(),
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("post rated", "post_id", postID, "voter", voterID, "upvote", upvote, "rating", post.Rating)
	return &post, nil
}

// RateReply casts or toggles a vote on a reply. The native vote fee pays the
// parent post's author.
func (s *RatingService) RateReply(voterID uuid.UUID, postID, replyID uint64, upvote bool) (*models.Reply, error) {
	return s.rateReply(voterID, postID, replyID, upvote, false)
}

// RateReplyWithToken is the alternate-currency variant.
func (s *RatingService) RateReplyWithToken(voterID uuid.UUID, postID, replyID uint64, upvote bool) (*models.Reply, error) {
	return s.rateReply(voterID, postID, replyID, upvote, true)
}

func (s *RatingService) rateReply(voterID uuid.UUID, postID, replyID uint64, upvote, useToken bool) (*models.Reply, error) {
	if err := validateIdentity(voterID); err != nil {
		return nil, err
	}

	var reply models.Reply
	err := s.db.Transaction(func(tx *gorm.DB) error {
		forum, err := forumRow(tx)
		if err != nil {
			return err
		}
		if replyID >= forum.ReplyCount {
			return ErrInvalidReplyID
		}
		if err := tx.First(&reply, "id = ?", replyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidReplyID
			}
			return err
		}
		// Cross-check the supplied parent against the stored back-reference.
		if reply.PostID != postID {
			return ErrInvalidPostID
		}

		var parent models.Post
		if err := tx.First(&parent, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidPostID
			}
			return err
		}

		if err := s.chargeVote(tx, voterID, parent.AuthorID, upvote, useToken); err != nil {
			return err
		}

		newRating, changed, ratedAt, err := applyVote(tx, models.SubjectReply, reply.ID, voterID, upvote, reply.Rating)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		if err := tx.Model(&models.Reply{}).Where("id = ?", reply.ID).
			Update("rating", newRating).Error; err != nil {
			return err
		}
		reply.Rating = newRating

		return emitEvent(tx, models.EventReplyRated, map[string]interface{}{
			"reply_id":   reply.ID,
			"post_id":    reply.PostID,
			"user":       voterID,
			"is_upvote":  upvote,
			"new_rating": newRating,
			"timestamp":  ratedAt.Unix(),
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("reply rated", "reply_id", replyID, "voter", voterID, "upvote", upvote, "rating", reply.Rating)
	return &reply, nil
}

// chargeVote settles the vote fee. Native fees always pay the author; token
// fees pay the author on upvotes and the platform on downvotes.
func (s *RatingService) chargeVote(tx *gorm.DB, voterID, authorID uuid.UUID, upvote, useToken bool) error {
	if !useToken {
		return s.ledger.Native().Charge(tx, voterID, ledger.PurposeVote, ledger.Author(authorID))
	}
	to := ledger.Author(authorID)
	if !upvote {
		to = ledger.Platform()
	}
	return s.ledger.Token().Charge(tx, voterID, ledger.PurposeVote, to)
}

// applyVote runs the toggle arithmetic against the voter's UserRating row,
// addressed by its derived key. Returns the item's new rating and whether
// anything changed.
func applyVote(tx *gorm.DB, kind string, subjectID uint64, voterID uuid.UUID, upvote bool, rating int64) (int64, bool, time.Time, error) {
	key := models.RatingKey(kind, subjectID, voterID)
	now := time.Now().UTC()

	var existing models.UserRating
	err := tx.First(&existing, "id = ?", key).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		record := models.UserRating{
			ID:          key,
			SubjectKind: kind,
			SubjectID:   subjectID,
			VoterID:     voterID,
			HasRated:    true,
			IsUpvote:    upvote,
			RatedAt:     now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return 0, false, now, err
		}
		delta := int64(-1)
		if upvote {
			delta = 1
		}
		return satAdd(rating, delta), true, now, nil

	case err != nil:
		return 0, false, now, err
	}

	// A row found under the derived key must describe exactly the inputs the
	// key was derived from.
	if existing.SubjectKind != kind || existing.SubjectID != subjectID || existing.VoterID != voterID {
		return 0, false, now, ErrRatingKeyMismatch
	}

	if existing.IsUpvote == upvote {
		return rating, false, existing.RatedAt, nil
	}

	updates := map[string]interface{}{"is_upvote": upvote, "rated_at": now}
	if err := tx.Model(&existing).Updates(updates).Error; err != nil {
		return 0, false, now, err
	}
	delta := int64(-2)
	if upvote {
		delta = 2
	}
	return satAdd(rating, delta), true, now, nil
}
