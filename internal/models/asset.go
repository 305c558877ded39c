package models

import "time"

// Asset represents a tracked savings asset (fiat, gold, crypto).
// CAGRPercent is the assumed long-run compound annual growth rate used
// only for forward projections.
type Asset struct {
	ID          int       `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	AssetName   string    `json:"asset_name" gorm:"column:asset_name;type:varchar(20);not null;uniqueIndex"`
	DisplayName string    `json:"display_name" gorm:"column:display_name;type:varchar(100);not null"`
	CAGRPercent float64   `json:"cagr_percent" gorm:"column:cagr_percent;type:decimal(10,4);not null;default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}
