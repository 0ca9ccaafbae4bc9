package models

import "time"

// ErrorEntry is a rejected /temp request body, kept verbatim.
type ErrorEntry struct {
	EntryID    string    `json:"entry_id"`
	ReceivedAt time.Time `json:"received_at"`
	Raw        string    `json:"raw"`
}
