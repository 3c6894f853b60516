package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListeners_NotifyAndRemove(t *testing.T) {
	var l Listeners
	var got []map[string]any

	remove := l.Add(func(changes map[string]any) { got = append(got, changes) })
	assert.Equal(t, 1, l.Len())

	l.Notify(map[string]any{"dark-mode": true})
	l.Notify(map[string]any{})
	remove()
	l.Notify(map[string]any{"dark-mode": false})

	assert.Equal(t, []map[string]any{{"dark-mode": true}}, got)
	assert.Equal(t, 0, l.Len())
}

func TestDiff(t *testing.T) {
	current := map[string]any{"dark-mode": true, "feed-keywords": "poll"}
	next := map[string]any{"dark-mode": true, "feed-keywords": "poll,iframe", "wide-mode": false}

	assert.Equal(t, map[string]any{"feed-keywords": "poll,iframe", "wide-mode": false}, Diff(current, next))
	assert.Empty(t, Diff(current, map[string]any{"dark-mode": true}))
}
