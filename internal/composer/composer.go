package composer

import (
	"slices"
	"time"

	"noticeboard/internal/model"
)

// DefaultBody 編輯器初始內容：一個空段落
const DefaultBody = `[{"type":"paragraph","children":[{"text":""}]}]`

// TimeLayout 投稿 payload 的時間格式 (UTC，毫秒)
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Composer 一次撰寫流程的全部狀態。只能透過方法修改。
type Composer struct {
	title          string
	body           string
	tags           []string
	attachedImages []string
	attachedFiles  []string
	events         EventCollection
	revision       int64
}

func New() *Composer {
	return &Composer{body: DefaultBody}
}

func (c *Composer) SetTitle(title string) {
	c.title = title
	c.touch()
}

// SetBody 存入編輯器序列化後的內容，不解析
func (c *Composer) SetBody(body string) {
	c.body = body
	c.touch()
}

// SetTags 整組替換標籤，重複的 topic 只保留第一次出現
func (c *Composer) SetTags(topicIDs []string) {
	c.tags = dedupe(topicIDs)
	c.touch()
}

// ToggleTag 已選則移除，未選則加入
func (c *Composer) ToggleTag(topicID string) {
	if i := slices.Index(c.tags, topicID); i >= 0 {
		c.tags = slices.Delete(c.tags, i, i+1)
	} else {
		c.tags = append(c.tags, topicID)
	}
	c.touch()
}

func (c *Composer) SetAttachments(images, files []string) {
	c.attachedImages = cloneStrings(images)
	c.attachedFiles = cloneStrings(files)
	c.touch()
}

func (c *Composer) AddEvent() {
	c.events.Add()
	c.touch()
}

func (c *Composer) DeleteEvent(index int) error {
	if err := c.events.Delete(index); err != nil {
		return err
	}
	c.touch()
	return nil
}

func (c *Composer) UpdateEventField(index int, field model.EventField, value string) error {
	if err := c.events.UpdateField(index, field, value); err != nil {
		return err
	}
	c.touch()
	return nil
}

func (c *Composer) Title() string { return c.title }
func (c *Composer) Body() string  { return c.body }

func (c *Composer) Tags() []string           { return cloneStrings(c.tags) }
func (c *Composer) AttachedImages() []string { return cloneStrings(c.attachedImages) }
func (c *Composer) AttachedFiles() []string  { return cloneStrings(c.attachedFiles) }

func (c *Composer) Events() []model.EventRecord { return c.events.Entries() }
func (c *Composer) EventCount() int             { return c.events.Len() }

// IsEvent 只要掛了至少一筆活動就是活動公告
func (c *Composer) IsEvent() bool {
	return c.events.Len() > 0
}

// Revision 每次成功修改都會遞增，用來偵測客戶端手上的 index 是否過期
func (c *Composer) Revision() int64 {
	return c.revision
}

// Snapshot 複製出一份與 Composer 不共用記憶體的唯讀狀態
func (c *Composer) Snapshot() Snapshot {
	return Snapshot{
		Title:          c.title,
		Body:           c.body,
		Tags:           c.Tags(),
		AttachedImages: c.AttachedImages(),
		AttachedFiles:  c.AttachedFiles(),
		Events:         c.Events(),
		Revision:       c.revision,
	}
}

// ToSubmissionPayload 以 now 作為投稿時間產生 payload，不修改狀態
func (c *Composer) ToSubmissionPayload(now time.Time) model.SubmissionPayload {
	return c.Snapshot().Payload(now)
}

func (c *Composer) touch() {
	c.revision++
}

// Snapshot 某一時刻的 Composer 狀態，預覽與投稿都從這裡投影
type Snapshot struct {
	Title          string
	Body           string
	Tags           []string
	AttachedImages []string
	AttachedFiles  []string
	Events         []model.EventRecord
	Revision       int64
}

func (s Snapshot) IsEvent() bool {
	return len(s.Events) > 0
}

func (s Snapshot) Payload(now time.Time) model.SubmissionPayload {
	events := make([]model.EventInput, 0, len(s.Events))
	for _, e := range s.Events {
		events = append(events, model.EventInput{
			Name:     e.Title,
			Date:     e.Date,
			Venue:    e.Venue,
			MeetLink: e.Description,
		})
	}

	return model.SubmissionPayload{
		Notice: model.NoticeInput{
			Title:          s.Title,
			Body:           s.Body,
			Time:           now.UTC().Format(TimeLayout),
			Topics:         cloneStrings(s.Tags),
			AttachedImages: cloneStrings(s.AttachedImages),
			AttachedFiles:  cloneStrings(s.AttachedFiles),
			IsEvent:        s.IsEvent(),
		},
		Events: events,
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
