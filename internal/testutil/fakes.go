package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

type TimerEntry struct {
	Key     domain.TimerKey
	At      time.Time
	Period  time.Duration
	Exact   bool
	Payload domain.AlarmPayload
}

// FakeTimer keeps registrations in memory and releases them through PopDue.
type FakeTimer struct {
	mu      sync.Mutex
	entries map[domain.TimerKey]TimerEntry

	// DenyExact makes exact registrations fail with ErrExactTimerDenied.
	DenyExact bool
	// Err fails every registration, exact or not.
	Err error
}

func NewFakeTimer() *FakeTimer {
	return &FakeTimer{entries: make(map[domain.TimerKey]TimerEntry)}
}

func (f *FakeTimer) ScheduleAt(ctx context.Context, key domain.TimerKey, at time.Time, payload domain.AlarmPayload) error {
	return f.ScheduleRepeating(ctx, key, at, 0, payload)
}

func (f *FakeTimer) ScheduleRepeating(_ context.Context, key domain.TimerKey, first time.Time, period time.Duration, payload domain.AlarmPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	if f.DenyExact {
		return domain.ErrExactTimerDenied
	}
	f.entries[key] = TimerEntry{Key: key, At: first, Period: period, Exact: true, Payload: payload}
	return nil
}

func (f *FakeTimer) ScheduleInexact(_ context.Context, key domain.TimerKey, at time.Time, period time.Duration, payload domain.AlarmPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	f.entries[key] = TimerEntry{Key: key, At: at, Period: period, Payload: payload}
	return nil
}

func (f *FakeTimer) Cancel(_ context.Context, key domain.TimerKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.entries, key)
	return nil
}

func (f *FakeTimer) Pending(key domain.TimerKey) (TimerEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[key]
	return e, ok
}

func (f *FakeTimer) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.entries)
}

// PopDue returns payloads of registrations due at now in trigger order.
// One-shot registrations are removed; repeating ones advance past now.
func (f *FakeTimer) PopDue(now time.Time) []domain.AlarmPayload {
	f.mu.Lock()
	defer f.mu.Unlock()

	var due []TimerEntry
	for _, e := range f.entries {
		if !e.At.After(now) {
			due = append(due, e)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].At.Before(due[j].At) })

	payloads := make([]domain.AlarmPayload, 0, len(due))
	for _, e := range due {
		payloads = append(payloads, e.Payload)
		if e.Period <= 0 {
			delete(f.entries, e.Key)
			continue
		}
		for !e.At.After(now) {
			e.At = e.At.Add(e.Period)
		}
		f.entries[e.Key] = e
	}
	return payloads
}

// MemoryTimerRegistry is an in-memory TimerRegistryRepository. Copies are
// stored and returned so callers cannot alias the stored registrations.
type MemoryTimerRegistry struct {
	mu   sync.Mutex
	regs map[domain.TimerKey]domain.TimerRegistration

	// Err fails every call.
	Err error
}

var _ domain.TimerRegistryRepository = (*MemoryTimerRegistry)(nil)

func NewMemoryTimerRegistry() *MemoryTimerRegistry {
	return &MemoryTimerRegistry{regs: make(map[domain.TimerKey]domain.TimerRegistration)}
}

func (m *MemoryTimerRegistry) Swap(_ context.Context, reg *domain.TimerRegistration) (*domain.TimerRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	prev, ok := m.regs[reg.Key]
	m.regs[reg.Key] = *reg
	if !ok {
		return nil, nil
	}
	return &prev, nil
}

func (m *MemoryTimerRegistry) Get(_ context.Context, key domain.TimerKey) (*domain.TimerRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	reg, ok := m.regs[key]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	return &reg, nil
}

func (m *MemoryTimerRegistry) Remove(_ context.Context, key domain.TimerKey) (*domain.TimerRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	reg, ok := m.regs[key]
	if !ok {
		return nil, nil
	}
	delete(m.regs, key)
	return &reg, nil
}

func (m *MemoryTimerRegistry) RemoveIfToken(_ context.Context, key domain.TimerKey, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return false, m.Err
	}
	reg, ok := m.regs[key]
	if !ok || reg.Token != token {
		return false, nil
	}
	delete(m.regs, key)
	return true, nil
}

func (m *MemoryTimerRegistry) ReplaceIfToken(_ context.Context, token string, reg *domain.TimerRegistration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return false, m.Err
	}
	current, ok := m.regs[reg.Key]
	if !ok || current.Token != token {
		return false, nil
	}
	m.regs[reg.Key] = *reg
	return true, nil
}

func (m *MemoryTimerRegistry) List(_ context.Context) ([]*domain.TimerRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	regs := make([]*domain.TimerRegistration, 0, len(m.regs))
	for _, reg := range m.regs {
		reg := reg
		regs = append(regs, &reg)
	}
	return regs, nil
}

type MemoryAcknowledgements struct {
	mu    sync.Mutex
	flags map[int]bool

	ReadErr  error
	WriteErr error
}

func NewMemoryAcknowledgements() *MemoryAcknowledgements {
	return &MemoryAcknowledgements{flags: make(map[int]bool)}
}

func (m *MemoryAcknowledgements) IsAcknowledged(_ context.Context, reminderID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		return false, m.ReadErr
	}
	return m.flags[reminderID], nil
}

func (m *MemoryAcknowledgements) SetAcknowledged(_ context.Context, reminderID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.flags[reminderID] = true
	return nil
}

func (m *MemoryAcknowledgements) ClearAcknowledged(_ context.Context, reminderID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return m.WriteErr
	}
	delete(m.flags, reminderID)
	return nil
}

type MemorySettings struct {
	mu      sync.Mutex
	snooze  int
	present bool

	ReadErr error
}

func NewMemorySettings() *MemorySettings {
	return &MemorySettings{}
}

func (m *MemorySettings) GetSnoozeMinutes(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		return 0, m.ReadErr
	}
	if !m.present {
		return 0, domain.ErrSettingNotFound
	}
	return m.snooze, nil
}

func (m *MemorySettings) SetSnoozeMinutes(_ context.Context, minutes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snooze = minutes
	m.present = true
	return nil
}

// RecordingPresenter completes every presentation immediately unless Hang is set.
type RecordingPresenter struct {
	mu        sync.Mutex
	alerts    []domain.Alert
	dismissed []int

	Hang       bool
	PresentErr error
	DismissErr error
}

func NewRecordingPresenter() *RecordingPresenter {
	return &RecordingPresenter{}
}

func (p *RecordingPresenter) Present(_ context.Context, alert domain.Alert) <-chan error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.alerts = append(p.alerts, alert)
	done := make(chan error, 1)
	if !p.Hang {
		done <- p.PresentErr
	}
	return done
}

func (p *RecordingPresenter) Dismiss(_ context.Context, reminderID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dismissed = append(p.dismissed, reminderID)
	return p.DismissErr
}

func (p *RecordingPresenter) Alerts() []domain.Alert {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]domain.Alert(nil), p.alerts...)
}

func (p *RecordingPresenter) Dismissed() []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]int(nil), p.dismissed...)
}

type RecordingRecorder struct {
	mu      sync.Mutex
	records []domain.AdherenceRecord

	Err error
}

func NewRecordingRecorder() *RecordingRecorder {
	return &RecordingRecorder{}
}

func (r *RecordingRecorder) Record(_ context.Context, record domain.AdherenceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	r.records = append(r.records, record)
	return nil
}

func (r *RecordingRecorder) Close() error {
	return nil
}

func (r *RecordingRecorder) Records() []domain.AdherenceRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.AdherenceRecord(nil), r.records...)
}
