package core

import "time"

// Checkpoint records how far a resumable job has progressed.
type Checkpoint struct {
	ProcessorType string    `json:"processor_type"`
	LastID        ID        `json:"last_id"`   // Last record fully processed
	Processed     int       `json:"processed"` // Records processed so far in this run
	UpdatedAt     time.Time `json:"updated_at"`
}
