package models

import "time"

// Note is a free-text annotation on a document. ID is assigned by the
// backend; the client never invents one.
type Note struct {
	ID       int       `json:"id"`
	Note     string    `json:"note"`
	Created  time.Time `json:"created"`
	Document int       `json:"document"`
}
