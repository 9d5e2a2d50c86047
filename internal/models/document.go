package models

import "time"

// Document describes a stored bookmark tree
type Document struct {
	ID         int
	Name       string
	ImportedAt time.Time
	Nodes      int
}
