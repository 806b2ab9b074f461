package models

import "time"

// Response is what a turn hands back to the caller
type Response struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
