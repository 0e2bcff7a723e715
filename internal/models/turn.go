// ABOUTME: Turn represents a single query/answer exchange in a session
// ABOUTME: Core unit of the rolling conversation history window
package models

import "time"

// Turn is one completed exchange: the user's query and the final answer
type Turn struct {
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}
