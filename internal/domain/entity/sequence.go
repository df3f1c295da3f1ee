package entity

// SequenceCounter holds a per-day counter used to derive human-readable
// order and payment numbers. The value is only ever advanced by an atomic
// upsert, inside the transaction that consumes the number.
type SequenceCounter struct {
	Scope string `gorm:"size:20;primaryKey"`
	Day   string `gorm:"size:10;primaryKey"` // YYYY-MM-DD
	Value int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for the SequenceCounter model
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
