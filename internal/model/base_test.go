package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStampTruncatesToMillisecond(t *testing.T) {
	now := time.Date(2031, 7, 4, 10, 30, 19, 22713897, time.FixedZone("CST", 8*3600))

	var b Base
	b.Stamp(now)
	assert.Equal(t, time.UTC, b.CreatedAt.Location())
	assert.Equal(t, 22*int(time.Millisecond), b.CreatedAt.Nanosecond())
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)

	created := b.CreatedAt
	b.Stamp(now.Add(time.Second))
	assert.Equal(t, created, b.CreatedAt)
	assert.Equal(t, created.Add(time.Second), b.UpdatedAt)
}

func TestStampedDocumentSurvivesBSON(t *testing.T) {
	issue := &Issue{Title: "Pothole", Description: "Deep pothole on Elm"}
	issue.SetID(NewID())
	issue.Stamp(time.Now())

	raw, err := bson.Marshal(issue)
	require.NoError(t, err)
	var stored Issue
	require.NoError(t, bson.Unmarshal(raw, &stored))

	assert.True(t, issue.CreatedAt.Equal(stored.CreatedAt), "%s != %s", issue.CreatedAt, stored.CreatedAt)
	assert.True(t, issue.UpdatedAt.Equal(stored.UpdatedAt))
	assert.Equal(t, issue.ID, stored.ID)
}

func TestEventTimesSurviveBSON(t *testing.T) {
	start := time.Date(2031, 7, 4, 18, 0, 0, 123456789, time.UTC)
	ev := &Event{
		Title:     "Lake Fireworks",
		Date:      start,
		StartTime: start,
		EndTime:   start.Add(4 * time.Hour),
	}
	ev.Normalize()

	raw, err := bson.Marshal(ev)
	require.NoError(t, err)
	var stored Event
	require.NoError(t, bson.Unmarshal(raw, &stored))

	assert.True(t, ev.StartTime.Equal(stored.StartTime))
	assert.True(t, ev.EndTime.Equal(stored.EndTime))
	assert.Equal(t, 123*int(time.Millisecond), ev.Date.Nanosecond())
}
