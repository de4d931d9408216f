// Package registry holds the in-memory, most-recent-first sequence of
// admitted patients and the pure query pipeline over it.
package registry

import (
	"errors"
	"sync"

	"inpatient-registration/internal/domain/entity"

	"github.com/google/uuid"
)

var ErrDuplicateNIK = errors.New("nik already registered")

type Option func(*PatientRegistry)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *PatientRegistry) {
		r.newID = fn
	}
}

// PatientRegistry is safe for concurrent use. Readers always observe either
// the state before or after a mutation, never a partial one.
type PatientRegistry struct {
	mu       sync.RWMutex
	patients []entity.Patient
	byNIK    map[string]string // nik -> id
	newID    func() string
}

func New(opts ...Option) *PatientRegistry {
	r := &PatientRegistry{
		byNIK: make(map[string]string),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seed replaces the registry contents with records, keeping their order.
func (r *PatientRegistry) Seed(records []entity.Patient) {
	patients := make([]entity.Patient, len(records))
	copy(patients, records)

	byNIK := make(map[string]string, len(records))
	for _, p := range patients {
		byNIK[p.NIK] = p.ID
	}

	r.mu.Lock()
	r.patients = patients
	r.byNIK = byNIK
	r.mu.Unlock()
}

// ListAll returns a snapshot of the canonical sequence, most recent first.
func (r *PatientRegistry) ListAll() []entity.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Patient, len(r.patients))
	copy(out, r.patients)
	return out
}

func (r *PatientRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patients)
}

func (r *PatientRegistry) FindByID(id string) (entity.Patient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.patients {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Patient{}, false
}

func (r *PatientRegistry) HasNIK(nik string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byNIK[nik]
	return ok
}

// NewRecord assigns a fresh id to in without touching the registry.
func (r *PatientRegistry) NewRecord(in entity.PatientInput) entity.Patient {
	return in.ToPatient(r.newID())
}

// Insert prepends a record built by NewRecord.
func (r *PatientRegistry) Insert(p entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byNIK[p.NIK]; ok {
		return ErrDuplicateNIK
	}

	patients := make([]entity.Patient, 0, len(r.patients)+1)
	patients = append(patients, p)
	patients = append(patients, r.patients...)

	r.patients = patients
	r.byNIK[p.NIK] = p.ID
	return nil
}

// Admit assigns an id to in and prepends the resulting record.
func (r *PatientRegistry) Admit(in entity.PatientInput) (entity.Patient, error) {
	p := r.NewRecord(in)
	if err := r.Insert(p); err != nil {
		return entity.Patient{}, err
	}
	return p, nil
}
