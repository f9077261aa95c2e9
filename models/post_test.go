package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPost_Validate(t *testing.T) {
	valid := Post{UserID: uuid.New(), AuthorName: "Ada", Review: "Great game", Rating: 5}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Post)
		err    error
	}{
		{"missing user", func(p *Post) { p.UserID = uuid.Nil }, ErrInvalidUserID},
		{"empty review", func(p *Post) { p.Review = "   " }, ErrEmptyContent},
		{"rating too low", func(p *Post) { p.Rating = 0 }, ErrInvalidRating},
		{"rating too high", func(p *Post) { p.Rating = 6 }, ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.modify(&p)
			assert.Equal(t, tt.err, p.Validate())
		})
	}
}

func TestComment_Validate(t *testing.T) {
	c := Comment{PostID: uuid.New(), UserID: uuid.New(), Content: "agreed"}
	assert.NoError(t, c.Validate())

	c.Content = ""
	assert.Equal(t, ErrEmptyContent, c.Validate())

	c.Content = "agreed"
	c.PostID = uuid.Nil
	assert.Equal(t, ErrInvalidUUID, c.Validate())
}

func TestLike(t *testing.T) {
	assert.True(t, ItemTypePost.Valid())
	assert.True(t, ItemTypeComment.Valid())
	assert.False(t, ItemType("bet").Valid())

	l := Like{}
	assert.Equal(t, "likes", l.TableName())
	assert.NoError(t, l.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, l.ID)

	pe := ProcessedEvent{}
	assert.Equal(t, "processed_events", pe.TableName())
}
