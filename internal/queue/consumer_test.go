package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gigbook/internal/model"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("chdir back: %v", err)
		}
	})
}

func TestHandleMessage(t *testing.T) {
	chdir(t, t.TempDir())

	ev := NewGigListedEvent(&model.Gig{ID: 3, OwnerID: 9, Venue: "The Basement", GenreID: 2}, "Jazz", ActionCreated)
	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := handleMessage(body); err != nil {
		t.Fatalf("handleMessage() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join("logs", "gigs.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	for _, want := range []string{"Gig created", "gig_id=3", "owner_id=9", `venue="The Basement"`, `genre="Jazz"`, ev.EventID} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %q: %s", want, line)
		}
	}
}

func TestHandleMessageRejectsBadPayload(t *testing.T) {
	chdir(t, t.TempDir())
	if err := handleMessage([]byte("not json")); err == nil {
		t.Fatal("handleMessage() accepted malformed payload")
	}
}
