package ws

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nexus-engine/internal/audio"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startHub(t *testing.T) (*Hub, *websocket.Conn, func()) {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	return hub, conn, func() {
		cancel()
		<-hub.done
		conn.Close()
		srv.Close()
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev
}

func TestBroadcastReachesClient(t *testing.T) {
	hub, conn, stop := startHub(t)
	defer stop()

	hub.BroadcastEvent(EventNotification, map[string]string{"message": "Lead simulated!"})

	ev := readEvent(t, conn)
	assert.JSONEq(t, `"notification"`, string(ev["type"]))
	assert.JSONEq(t, `{"message":"Lead simulated!"}`, string(ev["data"]))
}

func TestPlayClipSendsWAV(t *testing.T) {
	hub, conn, stop := startHub(t)
	defer stop()

	buf, err := audio.DecodePCM16([]byte{0, 64, 0, 192}, audio.SampleRate, 1)
	require.NoError(t, err)
	wav := buf.WAV()
	hub.PlayClip(audio.Clip{SampleRate: audio.SampleRate, Channels: 1, Duration: buf.Duration(), WAV: wav})

	ev := readEvent(t, conn)
	assert.JSONEq(t, `"audio"`, string(ev["type"]))

	var data AudioEvent
	require.NoError(t, json.Unmarshal(ev["data"], &data))
	assert.Equal(t, "wav", data.Format)
	assert.Equal(t, audio.SampleRate, data.SampleRate)
	decoded, err := base64.StdEncoding.DecodeString(data.Data)
	require.NoError(t, err)
	assert.Equal(t, wav, decoded)
}

func TestBroadcastAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()
	<-hub.done

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.BroadcastEvent(EventState, i)
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("BroadcastEvent blocked on a stopped hub")
	}
}
