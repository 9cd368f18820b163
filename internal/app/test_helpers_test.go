package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/example/launchgate/internal/core/update"
	"github.com/example/launchgate/internal/ctxutil"
	"github.com/example/launchgate/internal/ports/secondary"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sequentialIDs returns an ID generator producing prefix-001, prefix-002, ...
func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%03d", prefix, n)
	}
}

// trace is a shared, ordered record of calls across mocks.
type trace struct {
	mu    sync.Mutex
	calls []string
}

func (t *trace) add(call string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, call)
}

func (t *trace) snapshot() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.calls...)
}

// Ensure mockPreferenceStore implements the interface
var _ secondary.PreferenceStore = (*mockPreferenceStore)(nil)

// mockPreferenceStore implements secondary.PreferenceStore for testing.
type mockPreferenceStore struct {
	mu      sync.Mutex
	snap    secondary.PreferenceSnapshot
	readErr error
	reads   int

	// When set, Read blocks until the channel is closed or ctx is done.
	block chan struct{}
	// Closed when a blocked Read returns.
	returned chan struct{}

	observers []chan secondary.PreferenceSnapshot
}

func newMockPreferenceStore(enabled bool) *mockPreferenceStore {
	return &mockPreferenceStore{snap: secondary.PreferenceSnapshot{BiometricEnabled: enabled}}
}

func (m *mockPreferenceStore) Read(ctx context.Context) (*secondary.PreferenceSnapshot, error) {
	m.mu.Lock()
	m.reads++
	block, returned := m.block, m.returned
	m.mu.Unlock()

	if block != nil {
		if returned != nil {
			defer close(returned)
		}
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	snap := m.snap
	return &snap, nil
}

func (m *mockPreferenceStore) Observe(ctx context.Context) (<-chan secondary.PreferenceSnapshot, error) {
	ch := make(chan secondary.PreferenceSnapshot, 8)
	m.mu.Lock()
	ch <- m.snap
	m.observers = append(m.observers, ch)
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, o := range m.observers {
			if o == ch {
				m.observers = append(m.observers[:i], m.observers[i+1:]...)
				close(ch)
				break
			}
		}
	}()
	return ch, nil
}

func (m *mockPreferenceStore) SetBiometricEnabled(ctx context.Context, enabled bool) error {
	return m.update(func(s *secondary.PreferenceSnapshot) { s.BiometricEnabled = enabled })
}

func (m *mockPreferenceStore) SetTheme(ctx context.Context, theme string) error {
	return m.update(func(s *secondary.PreferenceSnapshot) { s.Theme = theme })
}

func (m *mockPreferenceStore) SetPassphraseHash(ctx context.Context, hash string) error {
	return m.update(func(s *secondary.PreferenceSnapshot) { s.PassphraseHash = hash })
}

func (m *mockPreferenceStore) update(fn func(*secondary.PreferenceSnapshot)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.snap)
	for _, o := range m.observers {
		o <- m.snap
	}
	return nil
}

func (m *mockPreferenceStore) current() secondary.PreferenceSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// presenterMode controls how mockChallengePresenter answers.
type presenterMode int

const (
	answerManually presenterMode = iota
	answerSuccess
	answerCancel
	answerError
)

// Ensure mockChallengePresenter implements the interface
var _ secondary.ChallengePresenter = (*mockChallengePresenter)(nil)

// mockChallengePresenter implements secondary.ChallengePresenter for testing.
// Automatic answers are delivered on a separate goroutine, like a real prompt.
type mockChallengePresenter struct {
	mu        sync.Mutex
	mode      presenterMode
	canAuth   bool
	presented int
	pending   []secondary.ChallengeCallbacks
	trace     *trace
}

func newMockChallengePresenter(mode presenterMode) *mockChallengePresenter {
	return &mockChallengePresenter{mode: mode, canAuth: true}
}

func (m *mockChallengePresenter) PresentChallenge(ctx context.Context, cb secondary.ChallengeCallbacks) {
	m.mu.Lock()
	m.presented++
	mode := m.mode
	if mode == answerManually {
		m.pending = append(m.pending, cb)
	}
	m.mu.Unlock()
	m.trace.add("challenge")

	switch mode {
	case answerSuccess:
		go cb.OnSuccess()
	case answerCancel:
		go cb.OnUserCancel()
	case answerError:
		go cb.OnError(errors.New("sensor unavailable"))
	}
}

func (m *mockChallengePresenter) CanAuthenticate(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canAuth
}

func (m *mockChallengePresenter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.presented
}

// answer completes the oldest pending manual challenge.
func (m *mockChallengePresenter) answer(mode presenterMode) {
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return
	}
	cb := m.pending[0]
	m.pending = m.pending[1:]
	m.mu.Unlock()

	switch mode {
	case answerSuccess:
		cb.OnSuccess()
	case answerCancel:
		cb.OnUserCancel()
	default:
		cb.OnError(errors.New("sensor unavailable"))
	}
}

// Ensure mockUpdatePlatform implements the interface
var _ secondary.UpdatePlatform = (*mockUpdatePlatform)(nil)

// mockUpdatePlatform implements secondary.UpdatePlatform for testing.
type mockUpdatePlatform struct {
	mu           sync.Mutex
	availability update.Availability
	queryErr     error
	startErr     error
	queries      int
	started      []update.FlowRequest
	onQuery      func()
	trace        *trace
}

func newMockUpdatePlatform(a update.Availability) *mockUpdatePlatform {
	return &mockUpdatePlatform{availability: a}
}

func (m *mockUpdatePlatform) QueryAvailability(ctx context.Context) (update.Availability, error) {
	m.mu.Lock()
	m.queries++
	onQuery := m.onQuery
	a, err := m.availability, m.queryErr
	m.mu.Unlock()
	m.trace.add("query")

	if onQuery != nil {
		onQuery()
	}
	if err != nil {
		return update.Availability{}, err
	}
	return a, nil
}

func (m *mockUpdatePlatform) StartFlow(ctx context.Context, req update.FlowRequest) error {
	m.trace.add("start_flow")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.startErr != nil {
		return m.startErr
	}
	m.started = append(m.started, req)
	return nil
}

func (m *mockUpdatePlatform) queryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries
}

func (m *mockUpdatePlatform) startedFlows() []update.FlowRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]update.FlowRequest(nil), m.started...)
}

// Ensure mockLaunchEventRepository implements the interface
var _ secondary.LaunchEventRepository = (*mockLaunchEventRepository)(nil)

// mockLaunchEventRepository implements secondary.LaunchEventRepository for testing.
type mockLaunchEventRepository struct {
	mu        sync.Mutex
	events    []*secondary.LaunchEventRecord
	recordErr error
}

func newMockLaunchEventRepository() *mockLaunchEventRepository {
	return &mockLaunchEventRepository{}
}

func (m *mockLaunchEventRepository) Record(ctx context.Context, kind, detail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.events = append(m.events, &secondary.LaunchEventRecord{
		ID:        int64(len(m.events) + 1),
		SessionID: ctxutil.SessionFromContext(ctx),
		Kind:      kind,
		Detail:    detail,
	})
	return nil
}

func (m *mockLaunchEventRepository) List(ctx context.Context, filters secondary.LaunchEventFilters) ([]*secondary.LaunchEventRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.LaunchEventRecord
	for i := len(m.events) - 1; i >= 0; i-- {
		e := m.events[i]
		if filters.SessionID != "" && e.SessionID != filters.SessionID {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *mockLaunchEventRepository) kinds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]string, 0, len(m.events))
	for _, e := range m.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func (m *mockLaunchEventRepository) count(kind string) int {
	n := 0
	for _, k := range m.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

// eventually polls cond until it holds or the deadline passes.
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}
