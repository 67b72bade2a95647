package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rdpaiva/future-self/internal/domain"
	"github.com/rdpaiva/future-self/internal/session"
	"github.com/rdpaiva/future-self/internal/vision"
)

type recordingNotifier struct {
	mu           sync.Mutex
	warns        []string
	failures     []string
	successes    []string
	loginReturns []string
}

func (n *recordingNotifier) Warn(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warns = append(n.warns, message)
}

func (n *recordingNotifier) Failure(message, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, message)
}

func (n *recordingNotifier) Success(message, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) LoginRequired(returnPath string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loginReturns = append(n.loginReturns, returnPath)
}

type stubGenerator struct {
	mu     sync.Mutex
	calls  int
	result *vision.Result
	err    error
}

func (g *stubGenerator) Generate(ctx context.Context, source string, fragments []string) (*vision.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.result, g.err
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type stubSaver struct {
	mu    sync.Mutex
	calls int
	got   struct {
		userID string
		dreams []string
	}
	err error
}

func (s *stubSaver) Create(ctx context.Context, userID, originalImage, generatedImage string, dreamIDs []string) (*domain.Manifestation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.got.userID = userID
	s.got.dreams = append([]string(nil), dreamIDs...)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Manifestation{ID: "m-1", UserID: userID, Dreams: dreamIDs}, nil
}

func okResult() *vision.Result {
	return &vision.Result{ImageData: []byte{1, 2}, MimeType: "image/png", Model: "gemini-3-pro-image-preview"}
}

func waitSettled(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async call did not settle")
	}
}

func advanceToDreams(t *testing.T, m *Machine) {
	t.Helper()
	m.Begin()
	m.AttachImage("data:image/png;base64,AAAA")
	if !m.NextFromUpload() {
		t.Fatal("upload transition should succeed")
	}
}

func TestUploadGuardRejectsWithoutImage(t *testing.T) {
	gen := &stubGenerator{}
	notifier := &recordingNotifier{}
	m := New(gen, &stubSaver{}, notifier)

	m.Begin()
	if m.NextFromUpload() {
		t.Fatal("transition must be rejected without an image")
	}
	if st := m.Snapshot(); st.Stage != StageUpload {
		t.Fatalf("stage moved to %v", st.Stage)
	}
	if len(notifier.warns) != 1 {
		t.Fatalf("expected exactly one warning, got %v", notifier.warns)
	}
	if gen.callCount() != 0 {
		t.Fatal("gateway must not be called")
	}
}

func TestDreamGuardRejectsEmptySelection(t *testing.T) {
	gen := &stubGenerator{}
	notifier := &recordingNotifier{}
	m := New(gen, &stubSaver{}, notifier)
	advanceToDreams(t, m)

	if m.NextFromDreams(context.Background()) {
		t.Fatal("transition must be rejected without a selection")
	}
	if st := m.Snapshot(); st.Stage != StageSelectDreams {
		t.Fatalf("stage moved to %v", st.Stage)
	}
	if gen.callCount() != 0 {
		t.Fatal("no gateway call on a rejected transition")
	}
}

func TestGenerationSuccessFlow(t *testing.T) {
	gen := &stubGenerator{result: okResult()}
	m := New(gen, &stubSaver{}, &recordingNotifier{})
	advanceToDreams(t, m)
	m.ToggleDream("fitness")
	m.ToggleDream("career")

	if !m.NextFromDreams(context.Background()) {
		t.Fatal("transition should succeed")
	}
	waitSettled(t, m.generateDone)

	st := m.Snapshot()
	if st.Stage != StageReveal || st.Generating {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.GeneratedImage == "" || st.Model == "" {
		t.Fatal("result not stored")
	}
	if st.GenerationError != "" {
		t.Fatalf("unexpected error %q", st.GenerationError)
	}
}

func TestGenerationFailureStaysOnReveal(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection reset")}
	notifier := &recordingNotifier{}
	m := New(gen, &stubSaver{}, notifier)
	advanceToDreams(t, m)
	m.ToggleDream("fitness")

	m.NextFromDreams(context.Background())
	waitSettled(t, m.generateDone)

	st := m.Snapshot()
	if st.Stage != StageReveal {
		t.Fatalf("stage must not revert, got %v", st.Stage)
	}
	if st.Generating {
		t.Fatal("generating flag must clear")
	}
	if st.GenerationError == "" {
		t.Fatal("error message must be recorded")
	}
	if st.GeneratedImage != "" {
		t.Fatal("result must remain absent")
	}
	if len(notifier.failures) != 1 {
		t.Fatalf("expected one failure notification, got %v", notifier.failures)
	}

	// save is disabled while no result exists
	saver := &stubSaver{}
	m.saver = saver
	if m.Save(context.Background(), "user-1") {
		t.Fatal("save must be rejected without a result")
	}
	if saver.calls != 0 {
		t.Fatal("saver must not be called")
	}
}

func TestSaveRequiresAuthentication(t *testing.T) {
	gen := &stubGenerator{result: okResult()}
	notifier := &recordingNotifier{}
	saver := &stubSaver{}
	m := New(gen, saver, notifier)
	advanceToDreams(t, m)
	m.ToggleDream("fitness")
	m.NextFromDreams(context.Background())
	waitSettled(t, m.generateDone)

	if m.Save(context.Background(), "") {
		t.Fatal("unauthenticated save must be rejected")
	}
	if len(notifier.loginReturns) != 1 {
		t.Fatalf("expected a login redirect request, got %v", notifier.loginReturns)
	}
	if saver.calls != 0 {
		t.Fatal("saver must not be called")
	}
}

func TestSaveCreatesManifestation(t *testing.T) {
	gen := &stubGenerator{result: okResult()}
	notifier := &recordingNotifier{}
	saver := &stubSaver{}
	m := New(gen, saver, notifier)
	advanceToDreams(t, m)
	m.ToggleDream("fitness")
	m.ToggleDream("career")
	m.NextFromDreams(context.Background())
	waitSettled(t, m.generateDone)

	if !m.Save(context.Background(), "user-u") {
		t.Fatal("save should dispatch")
	}
	waitSettled(t, m.saveDone)

	if saver.calls != 1 {
		t.Fatalf("expected exactly one create, got %d", saver.calls)
	}
	if saver.got.userID != "user-u" {
		t.Fatalf("wrong owner %q", saver.got.userID)
	}
	if len(saver.got.dreams) != 2 || saver.got.dreams[0] != "fitness" || saver.got.dreams[1] != "career" {
		t.Fatalf("dreams not forwarded: %v", saver.got.dreams)
	}
	if len(notifier.successes) != 1 {
		t.Fatalf("expected success notification, got %v", notifier.successes)
	}
	if m.Snapshot().Saving {
		t.Fatal("saving flag must clear")
	}
}

func TestStartOverResetsEverything(t *testing.T) {
	gen := &stubGenerator{result: okResult()}
	m := New(gen, &stubSaver{}, &recordingNotifier{}, WithHomeStage(StageUpload))
	m.AttachImage("data:image/png;base64,AAAA")
	if !m.NextFromUpload() {
		t.Fatal("upload transition should succeed")
	}
	m.ToggleDream("fitness")
	m.NextFromDreams(context.Background())
	waitSettled(t, m.generateDone)

	m.StartOver()

	st := m.Snapshot()
	if st.Stage != StageUpload {
		t.Fatalf("expected home stage Upload, got %v", st.Stage)
	}
	if st.UploadedImage != "" || len(st.SelectedDreams) != 0 || st.GeneratedImage != "" ||
		st.Generating || st.Saving || st.GenerationError != "" {
		t.Fatalf("residual state after reset: %+v", st)
	}
}

func TestEnterConsumesHandoffSlot(t *testing.T) {
	slot := session.NewMemoryHandoff(time.Minute)
	_ = slot.Put(context.Background(), "sess-1", "https://cdn.test/profile-9.jpg")

	m := New(&stubGenerator{}, &stubSaver{}, &recordingNotifier{})
	m.Enter(context.Background(), slot, "sess-1")

	st := m.Snapshot()
	if st.Stage != StageSelectDreams {
		t.Fatalf("expected jump to dream selection, got %v", st.Stage)
	}
	if st.UploadedImage != "https://cdn.test/profile-9.jpg" {
		t.Fatalf("image not consumed: %q", st.UploadedImage)
	}
	if _, ok, _ := slot.Take(context.Background(), "sess-1"); ok {
		t.Fatal("slot must be cleared on first read")
	}
}

func TestToggleDreamIgnoresUnknownIDs(t *testing.T) {
	m := New(&stubGenerator{}, &stubSaver{}, &recordingNotifier{})
	m.ToggleDream("not-a-dream")
	m.ToggleDream("fitness")
	m.ToggleDream("fitness")
	if st := m.Snapshot(); len(st.SelectedDreams) != 0 {
		t.Fatalf("toggle bookkeeping broken: %v", st.SelectedDreams)
	}
}
