package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/solcialhq/forum-backend/internal/authority"
	"github.com/solcialhq/forum-backend/internal/ledger"
	"github.com/solcialhq/forum-backend/internal/models"
	"gorm.io/gorm"
)

// ReportService files abuse reports and drives their admin workflow.
// Resolution is terminal; closing removes the report record in any state.
type ReportService struct {
	db     *gorm.DB
	ledger *ledger.Ledger
	auth   authority.Authority
}

func NewReportService(db *gorm.DB, l *ledger.Ledger, auth authority.Authority) *ReportService {
	return &ReportService{db: db, ledger: l, auth: auth}
}

// ReportPost files a report against a post, paying the native report fee to
// the platform.
func (s *ReportService) ReportPost(reporterID uuid.UUID, postID uint64, reason string) (*models.PostReport, error) {
	return s.reportPost(reporterID, postID, reason, s.ledger.Native())
}

// ReportPostWithToken is the alternate-currency variant.
func (s *ReportService) ReportPostWithToken(reporterID uuid.UUID, postID uint64, reason string) (*models.PostReport, error) {
	return s.reportPost(reporterID, postID, reason, s.ledger.Token())
}

func (s *ReportService) reportPost(reporterID uuid.UUID, postID uint64, reason string, pay ledger.Method) (*models.PostReport, error) {
	if err := validateReason(reason); err != nil {
		return nil, err
	}
	if err := validateIdentity(reporterID); err != nil {
		return nil, err
	}

	var report *models.PostReport
	err := s.db.Transaction(func(tx *gorm.DB) error {
		forum, err := forumRow(tx)
		if err != nil {
			return err
		}
		if postID >= forum.PostCount {
			return ErrInvalidPostID
		}

		var post models.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidPostID
			}
			return err
		}
		if post.ReportCount >= MaxReportsPerItem {
			return ErrMaxReportsReached
		}

		if err := pay.Charge(tx, reporterID, ledger.PurposeReport, ledger.Platform()); err != nil {
			return err
		}

		id, err := allocateID(tx, "report_count")
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		report = &models.PostReport{
			ID:         id,
			RecordKey:  models.ReportKey(models.SubjectPost, models.ForumID, id),
			PostID:     post.ID,
			ReporterID: reporterID,
			Reason:     reason,
			CreatedAt:  now,
		}
		if err := tx.Create(report).Error; err != nil {
			return err
		}

		// Condition explicitly: ids start at 0, which gorm reads as an unset
		// primary key.
		if err := tx.Model(&models.Post{}).Where("id = ?", post.ID).
			Updates(map[string]interface{}{
				"is_reported":  true,
				"report_count": gorm.Expr("report_count + 1"),
			}).Error; err != nil {
			return err
		}

		return emitEvent(tx, models.EventPostReported, map[string]interface{}{
			"report_id":  report.ID,
			"post_id":    post.ID,
			"reporter":   reporterID,
			"reason":     reason,
			"timestamp":  now.Unix(),
			"record_key": report.RecordKey,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("post reported", "post_id", postID, "report_id", report.ID, "reporter", reporterID)
	return report, nil
}

// ReportReply files a report against a reply.
func (s *ReportService) ReportReply(reporterID uuid.UUID, replyID uint64, reason string) (*models.ReplyReport, error) {
	return s.reportReply(reporterID, replyID, reason, s.ledger.Native())
}

// ReportReplyWithToken is the alternate-currency variant.
func (s *ReportService) ReportReplyWithToken(reporterID uuid.UUID, replyID uint64, reason string) (*models.ReplyReport, error) {
	return s.reportReply(reporterID, replyID, reason, s.ledger.Token())
}

func (s *ReportService) reportReply(reporterID uuid.UUID, replyID uint64, reason string, pay ledger.Method) (*models.ReplyReport, error) {
	if err := validateReason(reason); err != nil {
		return nil, err
	}
	if err := validateIdentity(reporterID); err != nil {
		return nil, err
	}

	var report *models.ReplyReport
	err := s.db.Transaction(func(tx *gorm.DB) error {
		forum, err := forumRow(tx)
		if err != nil {
			return err
		}
		if replyID >= forum.ReplyCount {
			return ErrInvalidReplyID
		}

		var reply models.Reply
		if err := tx.First(&reply, "id = ?", replyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidReplyID
			}
			return err
		}
		if reply.ReportCount >= MaxReportsPerItem {
			return ErrMaxReportsReached
		}

		if err := pay.Charge(tx, reporterID, ledger.PurposeReport, ledger.Platform()); err != nil {
			return err
		}

		id, err := allocateID(tx, "report_count")
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		report = &models.ReplyReport{
			ID:         id,
			RecordKey:  models.ReportKey(models.SubjectReply, models.ForumID, id),
			ReplyID:    reply.ID,
			ReporterID: reporterID,
			Reason:     reason,
			CreatedAt:  now,
		}
		if err := tx.Create(report).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Reply{}).Where("id = ?", reply.ID).
			Updates(map[string]interface{}{
				"is_reported":  true,
				"report_count": gorm.Expr("report_count + 1"),
			}).Error; err != nil {
			return err
		}

		return emitEvent(tx, models.EventReplyReported, map[string]interface{}{
			"report_id":  report.ID,
			"reply_id":   reply.ID,
			"reporter":   reporterID,
			"reason":     reason,
			"timestamp":  now.Unix(),
			"record_key": report.RecordKey,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("reply reported", "reply_id", replyID, "report_id", report.ID, "reporter", reporterID)
	return report, nil
}

// ResolvePostReport marks a post report resolved with the action the admin
// took. The transition is one-way; a second attempt fails.
func (s *ReportService) ResolvePostReport(adminID uuid.UUID, reportID uint64, actionTaken string) (*models.PostReport, error) {
	if !s.auth.IsAdmin(adminID) {
		return nil, ErrNotAdmin
	}
	if err := validateAction(actionTaken); err != nil {
		return nil, err
	}

	var report models.PostReport
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidReportID
			}
			return err
		}
		if report.IsResolved {
			return ErrReportAlreadyResolved
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.PostReport{}).Where("id = ?", report.ID).
			Updates(map[string]interface{}{
				"is_resolved":  true,
				"admin_action": actionTaken,
				"resolved_at":  now,
			}).Error; err != nil {
			return err
		}
		report.IsResolved = true
		report.AdminAction = actionTaken
		report.ResolvedAt = &now

		return emitEvent(tx, models.EventPostReportResolved, map[string]interface{}{
			"report_id":    report.ID,
			"post_id":      report.PostID,
			"admin":        adminID,
			"action_taken": actionTaken,
			"timestamp":    now.Unix(),
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("post report resolved", "report_id", reportID, "admin", adminID)
	return &report, nil
}

// ResolveReplyReport mirrors ResolvePostReport for reply reports.
func (s *ReportService) ResolveReplyReport(adminID uuid.UUID, reportID uint64, actionTaken string) (*models.ReplyReport, error) {
	if !s.auth.IsAdmin(adminID) {
		return nil, ErrNotAdmin
	}
	if err := validateAction(actionTaken); err != nil {
		return nil, err
	}

	var report models.ReplyReport
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidReportID
			}
			return err
		}
		if report.IsResolved {
			return ErrReportAlreadyResolved
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.ReplyReport{}).Where("id = ?", report.ID).
			Updates(map[string]interface{}{
				"is_resolved":  true,
				"admin_action": actionTaken,
				"resolved_at":  now,
			}).Error; err != nil {
			return err
		}
		report.IsResolved = true
		report.AdminAction = actionTaken
		report.ResolvedAt = &now

		return emitEvent(tx, models.EventReplyReportResolved, map[string]interface{}{
			"report_id":    report.ID,
			"reply_id":     report.ReplyID,
			"admin":        adminID,
			"action_taken": actionTaken,
			"timestamp":    now.Unix(),
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("reply report resolved", "report_id", reportID, "admin", adminID)
	return &report, nil
}

// ClosePostReport removes a post report record, resolved or not.
func (s *ReportService) ClosePostReport(adminID uuid.UUID, reportID uint64) error {
	if !s.auth.IsAdmin(adminID) {
		return ErrNotAdmin
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.PostReport{}, "id = ?", reportID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidReportID
		}
		return emitEvent(tx, models.EventPostReportClosed, map[string]interface{}{
			"report_id": reportID,
			"admin":     adminID,
		})
	})
}

// CloseReplyReport removes a reply report record, resolved or not.
func (s *ReportService) CloseReplyReport(adminID uuid.UUID, reportID uint64) error {
	if !s.auth.IsAdmin(adminID) {
		return ErrNotAdmin
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.ReplyReport{}, "id = ?", reportID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidReportID
		}
		return emitEvent(tx, models.EventReplyReportClosed, map[string]interface{}{
			"report_id": reportID,
			"admin":     adminID,
		})
	})
}

// ListReports pages post and reply reports for the admin panel.
func (s *ReportService) ListReports(resolved *bool, limit, offset int) ([]models.PostReport, []models.ReplyReport, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	postQuery := s.db.Model(&models.PostReport{})
	replyQuery := s.db.Model(&models.ReplyReport{})
	if resolved != nil {
		postQuery = postQuery.Where("is_resolved = ?", *resolved)
		replyQuery = replyQuery.Where("is_resolved = ?", *resolved)
	}

	var postReports []models.PostReport
	if err := postQuery.Order("id DESC").Limit(limit).Offset(offset).Find(&postReports).Error; err != nil {
		return nil, nil, err
	}
	var replyReports []models.ReplyReport
	if err := replyQuery.Order("id DESC").Limit(limit).Offset(offset).Find(&replyReports).Error; err != nil {
		return nil, nil, err
	}
	return postReports, replyReports, nil
}
