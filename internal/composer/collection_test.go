package composer_test

import (
	"testing"

	"noticeboard/internal/composer"
	"noticeboard/internal/model"
	apperrors "noticeboard/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledCollection(t *testing.T, titles ...string) *composer.EventCollection {
	t.Helper()
	c := &composer.EventCollection{}
	for i, title := range titles {
		c.Add()
		require.NoError(t, c.UpdateField(i, model.EventFieldTitle, title))
		require.NoError(t, c.UpdateField(i, model.EventFieldVenue, title+" hall"))
	}
	return c
}

func TestEventCollection_Add(t *testing.T) {
	t.Run("Success - n adds yield n blank records", func(t *testing.T) {
		c := &composer.EventCollection{}
		for i := 0; i < 4; i++ {
			c.Add()
		}

		entries := c.Entries()
		require.Len(t, entries, 4)
		for _, e := range entries {
			assert.Equal(t, model.EventRecord{}, e)
		}
	})

	t.Run("Success - new record is last", func(t *testing.T) {
		c := filledCollection(t, "A", "B")
		c.Add()

		entries := c.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, "A", entries[0].Title)
		assert.Equal(t, "B", entries[1].Title)
		assert.Equal(t, model.EventRecord{}, entries[2])
	})
}

func TestEventCollection_Delete(t *testing.T) {
	t.Run("Success - later entries shift down", func(t *testing.T) {
		c := filledCollection(t, "A", "B", "C", "D")

		require.NoError(t, c.Delete(1))

		entries := c.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, model.EventRecord{Title: "A", Venue: "A hall"}, entries[0])
		assert.Equal(t, model.EventRecord{Title: "C", Venue: "C hall"}, entries[1])
		assert.Equal(t, model.EventRecord{Title: "D", Venue: "D hall"}, entries[2])
	})

	t.Run("Success - delete last", func(t *testing.T) {
		c := filledCollection(t, "A", "B")

		require.NoError(t, c.Delete(1))

		assert.Equal(t, 1, c.Len())
		assert.Equal(t, "A", c.Entries()[0].Title)
	})

	t.Run("Success - identical records are distinct entries", func(t *testing.T) {
		c := &composer.EventCollection{}
		c.Add()
		c.Add()

		require.NoError(t, c.Delete(0))

		assert.Equal(t, 1, c.Len())
	})

	t.Run("Failed - out of range leaves collection untouched", func(t *testing.T) {
		c := filledCollection(t, "A", "B")
		before := c.Entries()

		for _, idx := range []int{-1, 2, 100} {
			err := c.Delete(idx)
			assert.ErrorIs(t, err, apperrors.ErrEventIndexOutOfRange)
		}

		assert.Equal(t, before, c.Entries())
	})

	t.Run("Failed - empty collection", func(t *testing.T) {
		c := &composer.EventCollection{}
		assert.ErrorIs(t, c.Delete(0), apperrors.ErrEventIndexOutOfRange)
		assert.Equal(t, 0, c.Len())
	})
}

func TestEventCollection_UpdateField(t *testing.T) {
	fields := []model.EventField{
		model.EventFieldTitle,
		model.EventFieldDate,
		model.EventFieldVenue,
		model.EventFieldDescription,
		model.EventFieldLink,
	}

	for _, field := range fields {
		t.Run("Success - no cross talk on "+string(field), func(t *testing.T) {
			c := filledCollection(t, "A", "B", "C")
			before := c.Entries()

			require.NoError(t, c.UpdateField(1, field, "changed"))

			after := c.Entries()
			require.Len(t, after, 3)
			assert.Equal(t, before[0], after[0])
			assert.Equal(t, before[2], after[2])
			assert.Equal(t, before[1].Set(field, "changed"), after[1])
		})
	}

	t.Run("Success - sequential edits on different entries do not clobber", func(t *testing.T) {
		c := filledCollection(t, "A", "B")

		require.NoError(t, c.UpdateField(0, model.EventFieldDate, "2021-09-06T16:20"))
		require.NoError(t, c.UpdateField(1, model.EventFieldLink, "https://meet.example/b"))
		require.NoError(t, c.UpdateField(0, model.EventFieldDescription, "notes"))

		entries := c.Entries()
		assert.Equal(t, model.EventRecord{Title: "A", Venue: "A hall", Date: "2021-09-06T16:20", Description: "notes"}, entries[0])
		assert.Equal(t, model.EventRecord{Title: "B", Venue: "B hall", Link: "https://meet.example/b"}, entries[1])
	})

	t.Run("Failed - out of range", func(t *testing.T) {
		c := filledCollection(t, "A")
		err := c.UpdateField(1, model.EventFieldTitle, "x")
		assert.ErrorIs(t, err, apperrors.ErrEventIndexOutOfRange)
		assert.Equal(t, "A", c.Entries()[0].Title)
	})

	t.Run("Failed - unknown field", func(t *testing.T) {
		c := filledCollection(t, "A")
		err := c.UpdateField(0, model.EventField("organizer"), "x")
		assert.ErrorIs(t, err, apperrors.ErrInvalidEventField)
		assert.Equal(t, model.EventRecord{Title: "A", Venue: "A hall"}, c.Entries()[0])
	})
}

func TestEventCollection_EntriesIsSnapshot(t *testing.T) {
	c := filledCollection(t, "A", "B")

	entries := c.Entries()
	entries[0].Title = "mutated"

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "A", c.Entries()[0].Title)
}

// 刪除前擷取的 index 在刪除後指向不同的項目，必須重新讀取
func TestEventCollection_IndexInvalidatedByDelete(t *testing.T) {
	c := filledCollection(t, "A", "B", "C")
	captured := 2

	require.NoError(t, c.Delete(0))

	assert.ErrorIs(t, c.Delete(captured), apperrors.ErrEventIndexOutOfRange)
	fresh := c.Len() - 1
	require.NoError(t, c.Delete(fresh))
	assert.Equal(t, "B", c.Entries()[0].Title)
}
