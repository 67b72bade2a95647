package workflow

import (
	"context"
	"sync"

	"github.com/rdpaiva/future-self/internal/domain"
	"github.com/rdpaiva/future-self/internal/session"
	"github.com/rdpaiva/future-self/internal/vision"
)

// Stage identifies one step of the wizard. Progression only moves forward one
// stage per confirmation; start-over is the only backward transition.
type Stage int

const (
	StageWelcome Stage = iota
	StageUpload
	StageSelectDreams
	StageReveal
)

func (s Stage) String() string {
	switch s {
	case StageWelcome:
		return "welcome"
	case StageUpload:
		return "upload"
	case StageSelectDreams:
		return "select_dreams"
	case StageReveal:
		return "reveal"
	default:
		return "unknown"
	}
}

// Generator is the generation gateway port.
type Generator interface {
	Generate(ctx context.Context, source string, fragments []string) (*vision.Result, error)
}

// Saver is the collection-store port used by the save action.
type Saver interface {
	Create(ctx context.Context, userID, originalImage, generatedImage string, dreamIDs []string) (*domain.Manifestation, error)
}

// Notifier receives the user-visible outcomes of guard rejections and async
// calls. Injected so the machine is testable without a UI.
type Notifier interface {
	Warn(message string)
	Failure(message, description string)
	Success(message, description string)
	LoginRequired(returnPath string)
}

// State is an immutable snapshot for rendering.
type State struct {
	Stage           Stage
	UploadedImage   string
	SelectedDreams  []string
	GeneratedImage  string
	Model           string
	Generating      bool
	Saving          bool
	GenerationError string
}

// Machine sequences Welcome → Upload → SelectDreams → Reveal for one session.
// At most one generation and one save are in flight, enforced by the flags.
type Machine struct {
	generator Generator
	saver     Saver
	notifier  Notifier
	home      Stage

	mu              sync.Mutex
	stage           Stage
	uploadedImage   string
	selectedDreams  []string
	result          *vision.Result
	generating      bool
	saving          bool
	generationError string

	generateDone chan struct{}
	saveDone     chan struct{}
}

// Option customizes machine construction.
type Option func(*Machine)

// WithHomeStage sets the stage start-over returns to. The standalone wizard
// resets to Upload; the landing-page entry resets to Welcome.
func WithHomeStage(s Stage) Option {
	return func(m *Machine) { m.home = s }
}

func New(generator Generator, saver Saver, notifier Notifier, opts ...Option) *Machine {
	m := &Machine{
		generator: generator,
		saver:     saver,
		notifier:  notifier,
		home:      StageWelcome,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.stage = m.home
	return m
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := State{
		Stage:           m.stage,
		UploadedImage:   m.uploadedImage,
		SelectedDreams:  append([]string(nil), m.selectedDreams...),
		Generating:      m.generating,
		Saving:          m.saving,
		GenerationError: m.generationError,
	}
	if m.result != nil {
		st.GeneratedImage = m.result.DataURL()
		st.Model = m.result.Model
	}
	return st
}

// Enter consumes the pre-selected image slot for this session, if any, and
// jumps straight to dream selection.
func (m *Machine) Enter(ctx context.Context, slot session.HandoffSlot, sessionID string) {
	if slot == nil {
		return
	}
	image, ok, err := slot.Take(ctx, sessionID)
	if err != nil || !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadedImage = image
	m.stage = StageSelectDreams
}

// Begin advances Welcome → Upload. No guard, no side effects.
func (m *Machine) Begin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stage == StageWelcome {
		m.stage = StageUpload
	}
}

// AttachImage records the uploaded photo reference.
func (m *Machine) AttachImage(image string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadedImage = image
}

// ToggleDream adds or removes a catalog dream from the selection, preserving
// selection order. Unknown identifiers are ignored.
func (m *Machine) ToggleDream(id string) {
	if _, ok := domain.DreamByID(id); !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.selectedDreams {
		if existing == id {
			m.selectedDreams = append(m.selectedDreams[:i], m.selectedDreams[i+1:]...)
			return
		}
	}
	m.selectedDreams = append(m.selectedDreams, id)
}

// NextFromUpload advances Upload → SelectDreams. Guarded: an uploaded image
// must be present; otherwise the transition is rejected with one warning.
func (m *Machine) NextFromUpload() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stage != StageUpload {
		return false
	}
	if m.uploadedImage == "" {
		m.notifier.Warn("Please upload a photo first")
		return false
	}
	m.stage = StageSelectDreams
	return true
}

// NextFromDreams advances SelectDreams → Reveal and dispatches the generation
// call. Guarded: the selection must be non-empty. On dispatch the previous
// result and error are cleared and the generating flag is set; on failure the
// stage does not revert, the error is recorded, and one failure notification
// is issued.
func (m *Machine) NextFromDreams(ctx context.Context) bool {
	m.mu.Lock()
	if m.stage != StageSelectDreams {
		m.mu.Unlock()
		return false
	}
	if len(m.selectedDreams) == 0 {
		m.mu.Unlock()
		m.notifier.Warn("Select at least one dream")
		return false
	}
	if m.generating {
		m.mu.Unlock()
		return false
	}
	m.stage = StageReveal
	m.generating = true
	m.result = nil
	m.generationError = ""
	m.generateDone = make(chan struct{})
	source := m.uploadedImage
	fragments := domain.DreamFragments(m.selectedDreams)
	done := m.generateDone
	m.mu.Unlock()

	go m.runGeneration(ctx, source, fragments, done)
	return true
}

func (m *Machine) runGeneration(ctx context.Context, source string, fragments []string, done chan struct{}) {
	defer close(done)
	result, err := m.generator.Generate(ctx, source, fragments)

	m.mu.Lock()
	m.generating = false
	if err != nil {
		m.generationError = err.Error()
		m.mu.Unlock()
		m.notifier.Failure("Failed to generate image", "Please try again.")
		return
	}
	m.result = result
	m.mu.Unlock()
}

// Save persists the revealed result for the given user. Guarded: the user must
// be authenticated (otherwise a login redirect is requested), a result must
// exist, and no other save or generation may be in flight.
func (m *Machine) Save(ctx context.Context, userID string) bool {
	m.mu.Lock()
	if m.stage != StageReveal || m.generating || m.saving {
		m.mu.Unlock()
		return false
	}
	if userID == "" {
		m.mu.Unlock()
		m.notifier.LoginRequired("/visualize")
		return false
	}
	if m.result == nil || m.uploadedImage == "" {
		m.mu.Unlock()
		m.notifier.Warn("Both original and generated images are required")
		return false
	}
	m.saving = true
	m.saveDone = make(chan struct{})
	original := m.uploadedImage
	generated := m.result.DataURL()
	dreams := append([]string(nil), m.selectedDreams...)
	done := m.saveDone
	m.mu.Unlock()

	go m.runSave(ctx, userID, original, generated, dreams, done)
	return true
}

func (m *Machine) runSave(ctx context.Context, userID, original, generated string, dreams []string, done chan struct{}) {
	defer close(done)
	_, err := m.saver.Create(ctx, userID, original, generated, dreams)

	m.mu.Lock()
	m.saving = false
	m.mu.Unlock()

	if err != nil {
		m.notifier.Failure("Failed to save", "Please try again.")
		return
	}
	m.notifier.Success("Saved to your vision board!", "View it in your vision board.")
}

// StartOver resets every field to its initial value and returns to the home
// stage. Unconditional.
func (m *Machine) StartOver() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stage = m.home
	m.uploadedImage = ""
	m.selectedDreams = nil
	m.result = nil
	m.generating = false
	m.saving = false
	m.generationError = ""
}
