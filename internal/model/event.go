package model

// EventRecord 草稿中的一筆連結活動；沒有 ID，身分就是它在集合中的位置
type EventRecord struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// EventField 可單獨更新的活動欄位
type EventField string

const (
	EventFieldTitle       EventField = "title"
	EventFieldDate        EventField = "date"
	EventFieldVenue       EventField = "venue"
	EventFieldDescription EventField = "description"
	EventFieldLink        EventField = "link"
)

// IsValid 驗證欄位名稱是否有效
func (f EventField) IsValid() bool {
	switch f {
	case EventFieldTitle, EventFieldDate, EventFieldVenue, EventFieldDescription, EventFieldLink:
		return true
	}
	return false
}

// Set 回傳只替換了指定欄位的副本；欄位無效時原樣回傳
func (e EventRecord) Set(field EventField, value string) EventRecord {
	switch field {
	case EventFieldTitle:
		e.Title = value
	case EventFieldDate:
		e.Date = value
	case EventFieldVenue:
		e.Venue = value
	case EventFieldDescription:
		e.Description = value
	case EventFieldLink:
		e.Link = value
	}
	return e
}
