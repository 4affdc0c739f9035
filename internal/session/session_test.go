package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ytnotes/tubenotes/internal/config"
	"github.com/ytnotes/tubenotes/internal/youtube"
)

func testStore() *Store {
	cfg := config.SessionConfig{MaxHistory: 3, MaxVideos: 2, MaxQuestions: 2}
	return NewStore(cfg)
}

func testTranscript(videoID string) *youtube.Transcript {
	return &youtube.Transcript{
		VideoID:  videoID,
		Segments: []youtube.Segment{{Start: 0, Text: "hello"}},
	}
}

func TestSetSummaryRequiresVideo(t *testing.T) {
	s := testStore().Create()

	if err := s.SetSummary("summary", "fast"); !errors.Is(err, ErrNoActiveVideo) {
		t.Errorf("SetSummary error = %v, want ErrNoActiveVideo", err)
	}
}

func TestSetVideoClearsPriorState(t *testing.T) {
	s := testStore().Create()

	if err := s.SetVideo("vid-one", "First", testTranscript("vid-one")); err != nil {
		t.Fatalf("SetVideo() error = %v", err)
	}
	if err := s.SetSummary("first summary", "detailed"); err != nil {
		t.Fatalf("SetSummary() error = %v", err)
	}
	if err := s.AppendExchange("q1", "a1"); err != nil {
		t.Fatalf("AppendExchange() error = %v", err)
	}

	if err := s.SetVideo("vid-two", "Second", testTranscript("vid-two")); err != nil {
		t.Fatalf("SetVideo() error = %v", err)
	}

	snap := s.Snapshot()
	if snap.VideoID != "vid-two" {
		t.Errorf("VideoID = %q, want vid-two", snap.VideoID)
	}
	if snap.Summary != "" {
		t.Errorf("Summary = %q, want cleared", snap.Summary)
	}
	if len(snap.History) != 0 {
		t.Errorf("History has %d entries, want cleared", len(snap.History))
	}
	if snap.Transcript.VideoID != "vid-two" {
		t.Errorf("Transcript belongs to %q, want vid-two", snap.Transcript.VideoID)
	}
}

func TestAppendExchange(t *testing.T) {
	s := testStore().Create()

	if err := s.AppendExchange("q", "a"); !errors.Is(err, ErrNoSummaryYet) {
		t.Errorf("AppendExchange before summary = %v, want ErrNoSummaryYet", err)
	}

	if err := s.SetVideo("vid", "Title", testTranscript("vid")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSummary("summary", "fast"); err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 2; i++ {
		if err := s.AppendExchange(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)); err != nil {
			t.Fatalf("AppendExchange() error = %v", err)
		}
	}

	snap := s.Snapshot()
	if len(snap.History) != 2 {
		t.Fatalf("History has %d entries, want 2", len(snap.History))
	}
	if snap.History[0].Question != "q1" || snap.History[1].Question != "q2" {
		t.Errorf("history out of order: %+v", snap.History)
	}
}

func TestHistoryTruncation(t *testing.T) {
	s := testStore().Create() // MaxHistory: 3
	if err := s.SetVideo("vid", "Title", testTranscript("vid")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSummary("summary", "fast"); err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 5; i++ {
		if err := s.AppendExchange(fmt.Sprintf("q%d", i), "a"); err != nil {
			t.Fatal(err)
		}
	}

	snap := s.Snapshot()
	if len(snap.History) != 3 {
		t.Fatalf("History has %d entries, want 3", len(snap.History))
	}
	if snap.History[0].Question != "q3" || snap.History[2].Question != "q5" {
		t.Errorf("oldest exchanges not truncated: %+v", snap.History)
	}
}

func TestVideoLimit(t *testing.T) {
	s := testStore().Create() // MaxVideos: 2

	for i := 0; i < 2; i++ {
		if err := s.SetVideo(fmt.Sprintf("vid%d", i), "t", testTranscript("v")); err != nil {
			t.Fatalf("SetVideo() error = %v", err)
		}
	}

	if err := s.SetVideo("vid3", "t", testTranscript("v")); !errors.Is(err, ErrLimitReached) {
		t.Errorf("SetVideo over limit = %v, want ErrLimitReached", err)
	}
}

func TestQuestionLimit(t *testing.T) {
	s := testStore().Create() // MaxQuestions: 2

	if err := s.BeginQuestion(); !errors.Is(err, ErrNoSummaryYet) {
		t.Errorf("BeginQuestion before summary = %v, want ErrNoSummaryYet", err)
	}

	if err := s.SetVideo("vid", "t", testTranscript("vid")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSummary("summary", "fast"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := s.BeginQuestion(); err != nil {
			t.Fatalf("BeginQuestion() error = %v", err)
		}
	}
	if err := s.BeginQuestion(); !errors.Is(err, ErrLimitReached) {
		t.Errorf("BeginQuestion over limit = %v, want ErrLimitReached", err)
	}

	// A new video gets a fresh question allowance.
	if err := s.SetVideo("vid2", "t", testTranscript("vid2")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSummary("summary", "fast"); err != nil {
		t.Fatal(err)
	}
	if err := s.BeginQuestion(); err != nil {
		t.Errorf("BeginQuestion after new video = %v, want nil", err)
	}
}

func TestStoreGetOrCreate(t *testing.T) {
	st := testStore()

	s1 := st.Create()
	if got := st.Get(s1.ID()); got != s1 {
		t.Error("Get() did not return the created session")
	}
	if got := st.GetOrCreate(s1.ID()); got != s1 {
		t.Error("GetOrCreate() did not return the existing session")
	}

	s2 := st.GetOrCreate("unknown-id")
	if s2 == s1 {
		t.Error("GetOrCreate() returned the wrong session for an unknown id")
	}
	if s2.ID() == "" || s2.ID() == "unknown-id" {
		t.Errorf("GetOrCreate() should mint a fresh id, got %q", s2.ID())
	}
}
