package session

import (
	"errors"
	"sync"
	"time"

	"github.com/ytnotes/tubenotes/internal/youtube"
)

var (
	// ErrNoActiveVideo indicates a summary was set before any video.
	ErrNoActiveVideo = errors.New("no active video")

	// ErrNoSummaryYet indicates a Q&A exchange was attempted before a
	// summary exists.
	ErrNoSummaryYet = errors.New("no summary generated yet")

	// ErrLimitReached indicates the per-session usage allowance ran out.
	ErrLimitReached = errors.New("session usage limit reached")
)

// Exchange is one question/answer pair, kept in chronological order.
type Exchange struct {
	Question string
	Answer   string
	AskedAt  time.Time
}

// Session holds all state for one interactive user session. Every field is
// scoped to the current video: replacing the video replaces everything.
type Session struct {
	mu sync.Mutex

	id         string
	videoID    string
	videoTitle string
	transcript *youtube.Transcript
	summary    string
	mode       string
	history    []Exchange

	videosUsed    int
	questionsUsed int

	maxHistory   int
	maxVideos    int
	maxQuestions int
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// SetVideo atomically replaces the active video, clearing the previous
// summary and Q&A history so no stale state can mix across videos.
func (s *Session) SetVideo(videoID, title string, transcript *youtube.Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.videosUsed >= s.maxVideos {
		return ErrLimitReached
	}

	s.videosUsed++
	s.questionsUsed = 0
	s.videoID = videoID
	s.videoTitle = title
	s.transcript = transcript
	s.summary = ""
	s.mode = ""
	s.history = nil
	return nil
}

// SetSummary stores the generated summary for the active video.
func (s *Session) SetSummary(text, mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.videoID == "" {
		return ErrNoActiveVideo
	}

	s.summary = text
	s.mode = mode
	s.history = nil
	return nil
}

// BeginQuestion reserves one question slot for the active video. It fails
// before any summary exists and when the question allowance is used up. The
// slot stays consumed even if the upstream call later fails.
func (s *Session) BeginQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.summary == "" {
		return ErrNoSummaryYet
	}
	if s.questionsUsed >= s.maxQuestions {
		return ErrLimitReached
	}

	s.questionsUsed++
	return nil
}

// AppendExchange appends a question/answer pair to the history. Oldest
// exchanges are dropped once the history cap is reached, bounding the
// context sent on follow-up questions.
func (s *Session) AppendExchange(question, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.summary == "" {
		return ErrNoSummaryYet
	}

	s.history = append(s.history, Exchange{
		Question: question,
		Answer:   answer,
		AskedAt:  time.Now(),
	})
	if len(s.history) > s.maxHistory {
		s.history = s.history[len(s.history)-s.maxHistory:]
	}
	return nil
}

// Snapshot is a consistent copy of the session used for rendering and for
// building prompts. The UI derives all displayed state from it.
type Snapshot struct {
	VideoID            string
	VideoTitle         string
	Transcript         *youtube.Transcript
	Summary            string
	Mode               string
	History            []Exchange
	VideosRemaining    int
	QuestionsRemaining int
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]Exchange, len(s.history))
	copy(history, s.history)

	return Snapshot{
		VideoID:            s.videoID,
		VideoTitle:         s.videoTitle,
		Transcript:         s.transcript,
		Summary:            s.summary,
		Mode:               s.mode,
		History:            history,
		VideosRemaining:    s.maxVideos - s.videosUsed,
		QuestionsRemaining: s.maxQuestions - s.questionsUsed,
	}
}
