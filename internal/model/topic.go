package model

// Topic 可以貼在公告上的標籤
type Topic struct {
	ID    string `json:"id" db:"topic_id"`
	Name  string `json:"name" db:"name"`
	Color string `json:"color" db:"color"`
}
