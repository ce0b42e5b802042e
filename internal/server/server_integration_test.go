package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/keypoints"
	"github.com/ayusman/abhinaya/internal/store"
)

func TestAPI_SessionWorkflow(t *testing.T) {
	// Setup
	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Sessions().Create(&store.Session{ID: "s1", CameraID: 0}))
	require.NoError(t, s.Sessions().Finish("s1", store.Counts{Frames: 3, FaceFrames: 2}, store.ExitCameraClosed, ""))

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. List sessions
	resp, err := client.Get(ts.URL + "/api/sessions")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Sessions []struct {
			ID     string       `json:"id"`
			Counts store.Counts `json:"counts"`
		} `json:"sessions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	resp.Body.Close()

	require.Len(t, listed.Sessions, 1)
	assert.Equal(t, "s1", listed.Sessions[0].ID)
	assert.Equal(t, 2, listed.Sessions[0].Counts.FaceFrames)

	// 2. Get single session
	resp, err = client.Get(ts.URL + "/api/sessions/s1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 3. Delete session
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/sessions/s1", nil)
	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// 4. Verify deleted
	resp, err = client.Get(ts.URL + "/api/sessions/s1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}

func TestAPI_FeaturesWebSocket(t *testing.T) {
	hub := NewHub(nil)
	ts := httptest.NewServer(New(Config{Hub: hub}))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/features"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	frame := testFrame()
	defer frame.Close()

	res := detector.Result{Pose: detector.Found(detector.StandingPoseLandmarks())}
	vec := keypoints.Extract(res)
	hub.Publish(frame, res, &vec)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg FeaturesMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.True(t, msg.Present.Pose)
	assert.False(t, msg.Present.Face)
	require.Len(t, msg.Features, keypoints.Size)
	assert.Equal(t, vec.Pose(), msg.Features[:keypoints.PoseSize])

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestAPI_Stream(t *testing.T) {
	hub := NewHub(nil)
	ts := httptest.NewServer(New(Config{Hub: hub}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/stream", nil)
	require.NoError(t, err)

	type result struct {
		resp *http.Response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := ts.Client().Do(req)
		done <- result{resp, err}
	}()

	require.Eventually(t, func() bool { return hub.Viewers() == 1 }, 2*time.Second, 10*time.Millisecond)

	frame := testFrame()
	defer frame.Close()
	hub.Publish(frame, detector.Result{}, nil)

	var r result
	select {
	case r = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream response")
	}
	require.NoError(t, r.err)
	defer r.resp.Body.Close()

	assert.Equal(t, "multipart/x-mixed-replace; boundary=frame", r.resp.Header.Get("Content-Type"))

	line, err := bufio.NewReader(r.resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "--frame\r\n", line)

	cancel()
	require.Eventually(t, func() bool { return hub.Viewers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServer_ListenAndServeShutdown(t *testing.T) {
	srv := New(Config{})
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
