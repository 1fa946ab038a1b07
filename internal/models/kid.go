package models

import "time"

// Kid represents a child profile owned by a parent account
type Kid struct {
	ID        int64
	ParentID  int64
	Name      string
	Age       int
	Grade     string
	Avatar    string
	CreatedAt time.Time
}
