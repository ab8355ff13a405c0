package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/solcialhq/forum-backend/internal/models"
	"gorm.io/gorm"
)

// Purpose selects the fee tier for an operation.
type Purpose int

const (
	PurposePost Purpose = iota
	PurposeReply
	PurposeVote
	PurposeReport
)

// Native fees in base units (1e9 per display unit).
const (
	nativePostFee   int64 = 1_000_000
	nativeReplyFee  int64 = 5_000_000
	nativeVoteFee   int64 = 1_000_000
	nativeReportFee int64 = 2_000_000
)

// Token fees, larger nominal amounts in the token's base units.
const (
	tokenPostFee   int64 = 1_000_000_000
	tokenReplyFee  int64 = 5_000_000_000
	tokenVoteFee   int64 = 1_000_000_000
	tokenReportFee int64 = 200_000_000
)

// NativeFee returns the native-currency fee for the purpose.
func (p Purpose) NativeFee() int64 {
	switch p {
	case PurposePost:
		return nativePostFee
	case PurposeReply:
		return nativeReplyFee
	case PurposeVote:
		return nativeVoteFee
	case PurposeReport:
		return nativeReportFee
	}
	return 0
}

// TokenFee returns the alternate-token fee for the purpose.
func (p Purpose) TokenFee() int64 {
	switch p {
	case PurposePost:
		return tokenPostFee
	case PurposeReply:
		return tokenReplyFee
	case PurposeVote:
		return tokenVoteFee
	case PurposeReport:
		return tokenReportFee
	}
	return 0
}

// Recipient names where a fee settles: the platform collection account or a
// specific participant (a content author).
type Recipient struct {
	ToPlatform bool
	UserID     uuid.UUID
}

func Platform() Recipient           { return Recipient{ToPlatform: true} }
func Author(id uuid.UUID) Recipient { return Recipient{UserID: id} }

// Method is a payment method. Both implementations share the same contract:
// validate the payer's funds, validate the recipient's identity and account
// state, then move the full fee in the caller's transaction. Any error
// leaves both accounts untouched.
type Method interface {
	Charge(tx *gorm.DB, payer uuid.UUID, purpose Purpose, to Recipient) error
}

type nativeMethod struct {
	platform uuid.UUID
}

func (m *nativeMethod) Charge(tx *gorm.DB, payer uuid.UUID, purpose Purpose, to Recipient) error {
	fee := purpose.NativeFee()

	var from models.Account
	if err := tx.First(&from, "user_id = ?", payer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	// The payer must keep its reserve after paying.
	if from.Balance < fee+from.Reserve {
		return ErrInsufficientBalance
	}

	recipientID := to.UserID
	if to.ToPlatform {
		recipientID = m.platform
	}

	var dest models.Account
	if err := tx.First(&dest, "user_id = ?", recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidRecipient
		}
		return err
	}
	if to.ToPlatform && dest.Balance <= 0 {
		return ErrRecipientNotFunded
	}

	if err := tx.Model(&models.Account{}).Where("user_id = ?", payer).
		Update("balance", gorm.Expr("balance - ?", fee)).Error; err != nil {
		return fmt.Errorf("debit failed: %w", err)
	}
	if err := tx.Model(&models.Account{}).Where("user_id = ?", recipientID).
		Update("balance", gorm.Expr("balance + ?", fee)).Error; err != nil {
		return fmt.Errorf("credit failed: %w", err)
	}
	return nil
}

type tokenMethod struct {
	platform uuid.UUID
	mint     string
}

func (m *tokenMethod) Charge(tx *gorm.DB, payer uuid.UUID, purpose Purpose, to Recipient) error {
	fee := purpose.TokenFee()

	from, err := m.account(tx, payer)
	if err != nil {
		return err
	}
	if from.Frozen {
		return ErrAccountFrozen
	}
	if from.Balance < fee {
		return ErrInsufficientTokens
	}

	recipientID := to.UserID
	if to.ToPlatform {
		recipientID = m.platform
	}

	dest, err := m.account(tx, recipientID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrInvalidRecipient
		}
		return err
	}
	if dest.OwnerID != recipientID {
		return ErrInvalidRecipient
	}
	if dest.Frozen {
		return ErrAccountFrozen
	}

	if err := tx.Model(&models.TokenAccount{}).Where("id = ?", from.ID).
		Update("balance", gorm.Expr("balance - ?", fee)).Error; err != nil {
		return fmt.Errorf("token debit failed: %w", err)
	}
	if err := tx.Model(&models.TokenAccount{}).Where("id = ?", dest.ID).
		Update("balance", gorm.Expr("balance + ?", fee)).Error; err != nil {
		return fmt.Errorf("token credit failed: %w", err)
	}
	return nil
}

// account loads a token account by its derived key and verifies the stored
// mint matches the configured one.
func (m *tokenMethod) account(tx *gorm.DB, owner uuid.UUID) (*models.TokenAccount, error) {
	key := models.TokenAccountKey(owner, m.mint)
	var acct models.TokenAccount
	if err := tx.First(&acct, "id = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if acct.Mint != m.mint {
		return nil, ErrInvalidMint
	}
	return &acct, nil
}
