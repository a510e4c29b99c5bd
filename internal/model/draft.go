package model

import "github.com/google/uuid"

// Draft 草稿的讀取視圖，每次操作後回傳給客戶端重新 render
type Draft struct {
	DraftID        uuid.UUID     `json:"draft_id"`
	AuthorID       int           `json:"author_id"`
	Revision       int64         `json:"revision"`
	Title          string        `json:"title"`
	Body           string        `json:"body"`
	Tags           []string      `json:"tags"`
	AttachedImages []string      `json:"attached_images"`
	AttachedFiles  []string      `json:"attached_files"`
	Events         []EventRecord `json:"events"`
	IsEvent        bool          `json:"is_event"`
	Submitting     bool          `json:"submitting"`
}
