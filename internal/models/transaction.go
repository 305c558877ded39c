package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatusNotPaid is the default status for an ingested transaction row.
const StatusNotPaid = "not paid"

// Transaction is one ledger entry: a manually recorded contribution of an
// asset, carried with its USD valuation and the running USD total the source
// computed at the time. The composite unique index on
// (transaction_date, amount, asset_name, usd_value_at_tx) is the natural key
// used to deduplicate re-ingested rows.
type Transaction struct {
	ID              string    `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	TransactionDate time.Time `json:"transaction_date" gorm:"column:transaction_date;type:date;not null;index;uniqueIndex:idx_tx_natural_key,priority:1"`

	Amount    decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(30,18);not null;uniqueIndex:idx_tx_natural_key,priority:2"`
	AssetName string          `json:"asset_name" gorm:"column:asset_name;type:varchar(20);not null;index;uniqueIndex:idx_tx_natural_key,priority:3"`

	// Valuations recorded at transaction time
	THBPrice      *decimal.Decimal `json:"thb_price" gorm:"column:thb_price;type:decimal(30,18)"`
	USDValueAtTx  decimal.Decimal  `json:"usd_value_at_tx" gorm:"column:usd_value_at_tx;type:decimal(30,18);not null;uniqueIndex:idx_tx_natural_key,priority:4"`
	USDCumulative decimal.Decimal  `json:"usd_cumulative" gorm:"column:usd_cumulative;type:decimal(30,18);not null"`
	USDTHBRate    decimal.Decimal  `json:"usdthb_rate" gorm:"column:usdthb_rate;type:decimal(30,18);not null"`

	Reason *string `json:"reason" gorm:"column:reason;type:text"`
	Status string  `json:"status" gorm:"column:status;type:varchar(50);not null;default:'not paid'"`

	SyncedAt  time.Time `json:"synced_at" gorm:"column:synced_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "savings_transactions"
}

// BeforeCreate assigns a surrogate ID when the database does not.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Validate validates the transaction data
func (t *Transaction) Validate() error {
	if t.TransactionDate.IsZero() {
		return errors.New("transaction_date is required")
	}
	if t.AssetName == "" {
		return errors.New("asset_name is required")
	}
	if t.Amount.IsZero() {
		return errors.New("amount must be non-zero")
	}
	if t.USDTHBRate.IsZero() {
		return errors.New("usdthb_rate is required")
	}
	return nil
}

// TransactionDetail is a transaction enriched with its asset's display name,
// the shape served by the payments listing. The join to the asset catalog is
// tolerant: an unknown symbol keeps the raw symbol as display name.
type TransactionDetail struct {
	Transaction
	AssetDisplayName string `json:"asset_display_name"`
}
