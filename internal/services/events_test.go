package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/solcialhq/forum-backend/internal/models"
)

func TestEventStreamCursor(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 100_000_000, 0)
	events := NewEventService(env.db)

	post, err := env.content.CreatePost(author, "first")
	require.NoError(t, err)
	_, err = env.content.CreateReply(author, post.ID, "second")
	require.NoError(t, err)

	// forum.initialized, post.created, reply.created in append order.
	all, err := events.List(0, 100)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, models.EventForumInitialized, all[0].Kind)
	assert.Equal(t, models.EventPostCreated, all[1].Kind)
	assert.Equal(t, models.EventReplyCreated, all[2].Kind)

	// The cursor resumes after the given id.
	tail, err := events.List(all[1].ID, 100)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, models.EventReplyCreated, tail[0].Kind)
}

func TestEventPayloadRoundTrips(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 100_000_000, 0)
	events := NewEventService(env.db)

	post, err := env.content.CreatePost(author, "payload check")
	require.NoError(t, err)

	all, err := events.List(0, 100)
	require.NoError(t, err)
	var created *models.Event
	for i := range all {
		if all[i].Kind == models.EventPostCreated {
			created = &all[i]
		}
	}
	require.NotNil(t, created)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(created.Payload, &payload))
	assert.Equal(t, float64(post.ID), payload["post_id"])
	assert.Equal(t, author.String(), payload["author"])
	assert.Equal(t, "payload check", payload["content"])
}
