// Package ledger moves funds between participant accounts. It is the
// economic gate in front of every mutating forum operation: a transfer runs
// inside the caller's database transaction, so the fee and the state change
// it pays for commit or abort together.
package ledger

import (
	"errors"

	"github.com/google/uuid"
	"github.com/solcialhq/forum-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound     = errors.New("ledger account not found")
	ErrInsufficientBalance = errors.New("insufficient balance for transaction")
	ErrInsufficientTokens  = errors.New("insufficient tokens for transaction")
	ErrAccountFrozen       = errors.New("token account is frozen")
	ErrInvalidMint         = errors.New("invalid token mint")
	ErrInvalidRecipient    = errors.New("invalid fee recipient")
	ErrRecipientNotFunded  = errors.New("fee recipient account not initialized")
)

// Ledger binds the platform collection identity and the accepted token mint.
type Ledger struct {
	Platform uuid.UUID
	Mint     string
}

func New(platform uuid.UUID, mint string) *Ledger {
	return &Ledger{Platform: platform, Mint: mint}
}

// Native returns the native-currency payment method.
func (l *Ledger) Native() Method {
	return &nativeMethod{platform: l.Platform}
}

// Token returns the alternate-token payment method.
func (l *Ledger) Token() Method {
	return &tokenMethod{platform: l.Platform, mint: l.Mint}
}

// Provision creates the native and token accounts for a new participant.
// Both start at zero balance.
func (l *Ledger) Provision(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Create(&models.Account{UserID: userID}).Error; err != nil {
		return err
	}
	return tx.Create(&models.TokenAccount{
		ID:      models.TokenAccountKey(userID, l.Mint),
		OwnerID: userID,
		Mint:    l.Mint,
	}).Error
}

// Credit adds funds to a participant's accounts. Used by the admin funding
// endpoint; the production deposit path is external to this service.
func (l *Ledger) Credit(db *gorm.DB, userID uuid.UUID, native, token int64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if native != 0 {
			res := tx.Model(&models.Account{}).Where("user_id = ?", userID).
				Update("balance", gorm.Expr("balance + ?", native))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrAccountNotFound
			}
		}
		if token != 0 {
			res := tx.Model(&models.TokenAccount{}).
				Where("owner_id = ? AND mint = ?", userID, l.Mint).
				Update("balance", gorm.Expr("balance + ?", token))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrAccountNotFound
			}
		}
		return nil
	})
}

// Balances reports a participant's native and token balances.
type Balances struct {
	Native      int64 `json:"native"`
	Reserve     int64 `json:"reserve"`
	Token       int64 `json:"token"`
	TokenFrozen bool  `json:"token_frozen"`
}

func (l *Ledger) Balances(db *gorm.DB, userID uuid.UUID) (*Balances, error) {
	var account models.Account
	if err := db.First(&account, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	var token models.TokenAccount
	if err := db.First(&token, "owner_id = ? AND mint = ?", userID, l.Mint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &Balances{
		Native:      account.Balance,
		Reserve:     account.Reserve,
		Token:       token.Balance,
		TokenFrozen: token.Frozen,
	}, nil
}
