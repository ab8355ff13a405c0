package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a native-currency ledger account. Balance and Reserve are in
// base units (1e9 per display unit). Reserve is the minimum the account must
// retain; fee checks require balance >= fee + reserve.
type Account struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	Reserve   int64     `gorm:"not null;default:0" json:"reserve"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// TokenAccount holds a balance of the alternate fungible token. The primary
// key is derived from (owner, mint), so an owner has exactly one account per
// mint and its address is computable without a lookup.
type TokenAccount struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_token_accounts_owner_mint" json:"owner_id"`
	Mint      string    `gorm:"size:64;not null;uniqueIndex:idx_token_accounts_owner_mint" json:"mint"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	Frozen    bool      `gorm:"not null;default:false" json:"frozen"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
