// Package preview 把草稿快照投影成預覽畫面用的 view model。
// 所有輸入都由 Input 帶入；不快取，每次呼叫重新計算。
package preview

import (
	"time"

	"noticeboard/internal/composer"
	"noticeboard/internal/model"
)

type Input struct {
	Draft  composer.Snapshot
	Author model.User
	// Topics 已解析的標籤資料，順序不限；找不到的 ID 以 ID 本身當名稱
	Topics []model.Topic
	Now    time.Time
}

type TopicChip struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type PostedBy struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
}

// EventPreview 單筆活動預覽。MeetLink 取自 description，與投稿時的對應一致。
type EventPreview struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
	MeetLink    string `json:"meet_link"`
	Link        string `json:"link"`
}

type NoticePreview struct {
	Title          string         `json:"title"`
	Body           string         `json:"body"`
	Time           string         `json:"time"`
	Topics         []TopicChip    `json:"topics"`
	AttachedImages []string       `json:"attached_images"`
	LikeCount      int            `json:"like_count"`
	PostedBy       PostedBy       `json:"posted_by"`
	IsEvent        bool           `json:"is_event"`
	LinkedEvents   []EventPreview `json:"linked_events"`
}

type ViewModel struct {
	Revision          int64          `json:"revision"`
	Notice            NoticePreview  `json:"notice"`
	Events            []EventPreview `json:"events"`
	ShowEventsHeading bool           `json:"show_events_heading"`
}

func Project(in Input) ViewModel {
	events := projectEvents(in.Draft.Events)

	return ViewModel{
		Revision: in.Draft.Revision,
		Notice: NoticePreview{
			Title:          in.Draft.Title,
			Body:           in.Draft.Body,
			Time:           in.Now.UTC().Format(composer.TimeLayout),
			Topics:         projectTopics(in.Draft.Tags, in.Topics),
			AttachedImages: append([]string{}, in.Draft.AttachedImages...),
			PostedBy: PostedBy{
				ID:             in.Author.ID,
				Name:           in.Author.Name,
				ProfilePicture: in.Author.ProfilePicture,
			},
			IsEvent:      in.Draft.IsEvent(),
			LinkedEvents: events,
		},
		Events:            append([]EventPreview{}, events...),
		ShowEventsHeading: len(events) > 0,
	}
}

func projectEvents(records []model.EventRecord) []EventPreview {
	out := make([]EventPreview, 0, len(records))
	for i, e := range records {
		out = append(out, EventPreview{
			Index:       i,
			Name:        e.Title,
			Date:        e.Date,
			Venue:       e.Venue,
			Description: e.Description,
			MeetLink:    e.Description,
			Link:        e.Link,
		})
	}
	return out
}

func projectTopics(tags []string, topics []model.Topic) []TopicChip {
	byID := make(map[string]model.Topic, len(topics))
	for _, t := range topics {
		byID[t.ID] = t
	}

	chips := make([]TopicChip, 0, len(tags))
	for _, id := range tags {
		t, ok := byID[id]
		if !ok {
			chips = append(chips, TopicChip{ID: id, Name: id})
			continue
		}
		chips = append(chips, TopicChip{ID: t.ID, Name: t.Name, Color: t.Color})
	}
	return chips
}
