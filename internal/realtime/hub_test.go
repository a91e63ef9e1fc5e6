package realtime

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(h *Hub, userID string) *Client {
	return newClient(h, userID, nil, nil)
}

func receive(t *testing.T, c *Client) WSMessage {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	default:
		t.Fatal("no message queued")
		return WSMessage{}
	}
}

func TestSendReachesOnlyThatUser(t *testing.T) {
	h := NewHub(nil, nil, nil)
	a1, a2, b := testClient(h, "1"), testClient(h, "1"), testClient(h, "2")
	h.Register(a1)
	h.Register(a2)
	h.Register(b)
	assert.Equal(t, 2, h.Connections("1"))

	h.Send("1", EventMeetingSaved, map[string]string{"id": "m-1"})

	for _, c := range []*Client{a1, a2} {
		msg := receive(t, c)
		assert.Equal(t, EventMeetingSaved, msg.Event)
		assert.JSONEq(t, `{"id":"m-1"}`, string(msg.Data))
	}
	assert.Empty(t, b.send)
}

func TestUnregisterClosesSend(t *testing.T) {
	h := NewHub(nil, nil, nil)
	c := testClient(h, "1")
	h.Register(c)
	h.Unregister(c)
	h.Unregister(c)

	_, ok := <-c.send
	assert.False(t, ok)
	assert.Equal(t, 0, h.Connections("1"))
	h.Send("1", EventAgendaSaved, nil)
}

type fakeRedis struct {
	published  []string
	handlers   map[string]func(event string, payload []byte)
	cancelled  []string
	publishErr error
}

func (f *fakeRedis) PublishUserEvent(userID, event string, payload []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, userID+":"+event)
	if h, ok := f.handlers[userID]; ok {
		h(event, payload)
	}
	return nil
}

func (f *fakeRedis) SubscribeUser(userID string, handler func(event string, payload []byte)) (func(), error) {
	if f.handlers == nil {
		f.handlers = map[string]func(string, []byte){}
	}
	f.handlers[userID] = handler
	return func() { f.cancelled = append(f.cancelled, userID) }, nil
}

func TestPublishGoesThroughRedis(t *testing.T) {
	r := &fakeRedis{}
	h := NewHub(nil, r, r)
	c := testClient(h, "4")
	h.Register(c)

	h.Publish("4", EventReminder, map[string]string{"meeting_id": "1"})

	assert.Equal(t, []string{"4:" + EventReminder}, r.published)
	msg := receive(t, c)
	var data map[string]string
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "1", data["meeting_id"])
	assert.Empty(t, c.send)

	h.Unregister(c)
	assert.Equal(t, []string{"4"}, r.cancelled)
}

func TestPublishFallsBackToLocal(t *testing.T) {
	r := &fakeRedis{publishErr: errors.New("conn refused")}
	h := NewHub(nil, r, r)
	c := testClient(h, "4")
	h.Register(c)

	h.Publish("4", EventDirectoryChanged, map[string]string{"kind": "role"})
	assert.Equal(t, EventDirectoryChanged, receive(t, c).Event)
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "workspace:4", Channel("4"))
}
