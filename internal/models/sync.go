package models

import "github.com/shopspring/decimal"

// RawRecord is one externally sourced transaction row as submitted to the
// sync endpoint. Pointer fields distinguish absent values from zero.
type RawRecord struct {
	Date          string           `json:"date"`
	Amount        *decimal.Decimal `json:"amount"`
	Asset         string           `json:"asset_symbol"`
	THBPrice      *decimal.Decimal `json:"thb_price,omitempty"`
	USDValue      *decimal.Decimal `json:"usd_value"`
	USDCumulative *decimal.Decimal `json:"usd_cumulative"`
	Reason        *string          `json:"reason,omitempty"`
	Status        *string          `json:"status,omitempty"`
	USDTHBRate    *decimal.Decimal `json:"usdthb_rate"`
}

// SyncRequest is the ingestion endpoint payload.
type SyncRequest struct {
	Credential string      `json:"credential"`
	Records    []RawRecord `json:"records"`
}

// SyncReport carries per-batch ingestion outcomes. Errors holds row-level
// validation messages for rows that were skipped; the batch still commits.
type SyncReport struct {
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Errors   []string `json:"errors,omitempty"`
}

// Partial reports whether the batch committed with at least one skipped row.
func (r *SyncReport) Partial() bool {
	return len(r.Errors) > 0
}

// Synced returns the number of rows written in the batch.
func (r *SyncReport) Synced() int {
	return r.Inserted + r.Updated
}
