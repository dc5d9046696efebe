package response_models

import "fablink/internal/models/db_models"

// MessageGroup is one contiguous same-date run of a thread's log.
type MessageGroup struct {
	Date     string              `json:"date"`
	Messages []db_models.Message `json:"messages"`
}
