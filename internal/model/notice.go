package model

import (
	"time"

	"github.com/google/uuid"
)

// NoticeInput 投稿 payload 中的公告本體
type NoticeInput struct {
	Title          string   `json:"title"`
	Body           string   `json:"body"`
	Time           string   `json:"time"`
	Topics         []string `json:"topics"`
	AttachedImages []string `json:"attachedImages"`
	AttachedFiles  []string `json:"attachedFiles"`
	IsEvent        bool     `json:"isEvent"`
}

// EventInput 投稿 payload 中的單筆活動；link 不在目前的對應裡
type EventInput struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Venue    string `json:"venue"`
	MeetLink string `json:"meetLink"`
}

// SubmissionPayload 送交發佈流程的完整快照
type SubmissionPayload struct {
	Notice NoticeInput  `json:"notice"`
	Events []EventInput `json:"events"`
}

// NoticeSubmission 佇列中傳遞的投稿訊息
type NoticeSubmission struct {
	RequestID string            `json:"request_id"`
	AuthorID  int               `json:"author_id"`
	Payload   SubmissionPayload `json:"payload"`
}

// SubmissionResult 投稿被受理後回給客戶端的結果
type SubmissionResult struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

const SubmissionStatusAccepted = "accepted"

// Notice 已發佈的公告
type Notice struct {
	ID             int           `json:"id" db:"id"`
	NoticeID       uuid.UUID     `json:"notice_id" db:"notice_id"`
	RequestID      string        `json:"request_id" db:"request_id"`
	AuthorID       int           `json:"author_id" db:"author_id"`
	Title          string        `json:"title" db:"title"`
	Body           string        `json:"body" db:"body"`
	PostedAt       time.Time     `json:"posted_at" db:"posted_at"`
	Topics         []string      `json:"topics" db:"-"`
	AttachedImages []string      `json:"attached_images" db:"attached_images"`
	AttachedFiles  []string      `json:"attached_files" db:"attached_files"`
	IsEvent        bool          `json:"is_event" db:"is_event"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	Events         []NoticeEvent `json:"events" db:"-"`
}

// NoticeEvent 已發佈公告底下的活動，Position 保留投稿時的順序
type NoticeEvent struct {
	ID       int    `json:"id" db:"id"`
	NoticeID int    `json:"notice_id" db:"notice_id"`
	Position int    `json:"position" db:"position"`
	Name     string `json:"name" db:"name"`
	Date     string `json:"date" db:"date"`
	Venue    string `json:"venue" db:"venue"`
	MeetLink string `json:"meet_link" db:"meet_link"`
}
