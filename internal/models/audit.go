package models

import "time"

// Audit outcome sources. WriteBack entries mark a successful callout whose
// local external-ID update failed and must be investigated separately.
const (
	SourceOrderSync = "OrderSync"
	SourceWriteBack = "OrderSync.WriteBack"
	SourceToken     = "OrderSync.Token"
)

// ChannelNetSuite is the integration channel label recorded on every entry.
const ChannelNetSuite = "NetSuite"

// AuditEntry captures one integration attempt. Entries are append-only;
// nothing in this service mutates or deletes them.
type AuditEntry struct {
	AttemptID string    `db:"attempt_id"`
	OrderID   string    `db:"order_id"`
	Channel   string    `db:"channel"`
	Source    string    `db:"source"`
	Request   string    `db:"request_body"`
	Response  string    `db:"response_body"`
	Success   bool      `db:"success"`
	CreatedAt time.Time `db:"created_at"`
}
