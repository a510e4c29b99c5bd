package composer

import (
	"fmt"
	"slices"

	"noticeboard/internal/model"
	apperrors "noticeboard/pkg/app_errors"
)

// EventCollection 以位置定址的活動草稿列表。
// 任何 Add/Delete 之後，之前取得的 index 都視為失效，呼叫端必須重新讀取。
type EventCollection struct {
	entries []model.EventRecord
}

// Add 在尾端加入一筆空白活動
func (c *EventCollection) Add() {
	c.entries = append(c.entries, model.EventRecord{})
}

// Delete 移除 index 位置的活動，之後的項目往前遞補
func (c *EventCollection) Delete(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.entries = slices.Delete(c.entries, index, index+1)
	return nil
}

// UpdateField 只替換 index 位置那一筆的單一欄位
func (c *EventCollection) UpdateField(index int, field model.EventField, value string) error {
	if !field.IsValid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidEventField, field)
	}
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.entries[index] = c.entries[index].Set(field, value)
	return nil
}

func (c *EventCollection) Len() int {
	return len(c.entries)
}

// Entries 回傳目前列表的快照
func (c *EventCollection) Entries() []model.EventRecord {
	out := make([]model.EventRecord, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *EventCollection) checkIndex(index int) error {
	if index < 0 || index >= len(c.entries) {
		return fmt.Errorf("%w: index %d, length %d", apperrors.ErrEventIndexOutOfRange, index, len(c.entries))
	}
	return nil
}
