package usecase

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sync"
	"time"

	"careconnect-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func duplicateEmailErr() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
}

// In-memory collaborators shared by the usecase tests. The user and
// doctor fakes share one store so registration through the doctor repo
// is visible to email lookups, like the real aggregate persistence.

type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	profiles map[uuid.UUID]*entity.DoctorProfile
	patients map[uuid.UUID]*entity.Patient
	audits   []entity.AuditLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*entity.User),
		profiles: make(map[uuid.UUID]*entity.DoctorProfile),
		patients: make(map[uuid.UUID]*entity.Patient),
	}
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return duplicateEmailErr()
		}
	}
	r.store.users[user.ID] = copyUser(user)
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if u, ok := r.store.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = copyUser(user)
	return nil
}

func (r *fakeUserRepo) Search(ctx context.Context, search string, limit, offset int) ([]entity.User, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []entity.User
	for _, u := range r.store.users {
		matched = append(matched, *u)
	}
	total := int64(len(matched))
	if offset > len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

type fakeDoctorRepo struct {
	store      *fakeStore
	createErr  error
	replaceErr error
}

func (r *fakeDoctorRepo) Create(ctx context.Context, profile *entity.DoctorProfile) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == profile.User.Email {
			return duplicateEmailErr()
		}
	}
	if profile.User.ID == uuid.Nil {
		profile.User.ID = uuid.New()
	}
	profile.UserID = profile.User.ID
	r.store.users[profile.User.ID] = copyUser(&profile.User)
	stored := *profile
	r.store.profiles[profile.UserID] = &stored
	return nil
}

func (r *fakeDoctorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.profiles[userID]
	if !ok {
		return nil, nil
	}
	c := *p
	if u, ok := r.store.users[userID]; ok {
		c.User = *u
	}
	return &c, nil
}

func (r *fakeDoctorRepo) FindAll(ctx context.Context) ([]entity.DoctorProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []entity.DoctorProfile
	for _, p := range r.store.profiles {
		all = append(all, *p)
	}
	return all, nil
}

func (r *fakeDoctorRepo) Update(ctx context.Context, profile *entity.DoctorProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.profiles[profile.UserID]
	if !ok {
		return fmt.Errorf("doctor profile %s not found", profile.UserID)
	}
	// Scalars only; child collections go through the Replace* methods
	clinics, availability, fees := stored.Clinics, stored.Availability, stored.ConsultationFees
	c := *profile
	c.Clinics, c.Availability, c.ConsultationFees = clinics, availability, fees
	r.store.profiles[profile.UserID] = &c
	r.store.users[profile.UserID] = copyUser(&profile.User)
	return nil
}

func (r *fakeDoctorRepo) ReplaceClinics(ctx context.Context, doctorID uuid.UUID, clinics []entity.Clinic) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.profiles[doctorID].Clinics = clinics
	return nil
}

func (r *fakeDoctorRepo) ReplaceAvailability(ctx context.Context, doctorID uuid.UUID, slots []entity.Availability) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.profiles[doctorID].Availability = slots
	return nil
}

func (r *fakeDoctorRepo) ReplaceConsultationFees(ctx context.Context, doctorID uuid.UUID, fees []entity.ConsultationFee) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.profiles[doctorID].ConsultationFees = fees
	return nil
}

type fakePatientRepo struct {
	store *fakeStore
}

func (r *fakePatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	c := *patient
	r.store.patients[patient.ID] = &c
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.patients[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r *fakePatientRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var patients []entity.Patient
	for _, p := range r.store.patients {
		if p.UserID == userID {
			patients = append(patients, *p)
		}
	}
	return patients, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, patient *entity.Patient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *patient
	r.store.patients[patient.ID] = &c
	return nil
}

type fakeAuditRepo struct {
	store *fakeStore
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.audits = append(r.store.audits, *log)
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, limit, offset int) ([]entity.AuditLog, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := int64(len(r.store.audits))
	if offset > len(r.store.audits) {
		return nil, total, nil
	}
	logs := r.store.audits[offset:]
	if limit < len(logs) {
		logs = logs[:limit]
	}
	return logs, total, nil
}

// fakeCodeStore keeps codes with expiry driven by a movable clock
type fakeCodeStore struct {
	mu      sync.Mutex
	now     time.Time
	entries map[string]codeEntry
}

type codeEntry struct {
	value     string
	expiresAt time.Time
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{
		now:     time.Now(),
		entries: make(map[string]codeEntry),
	}
}

func (s *fakeCodeStore) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *fakeCodeStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = codeEntry{value: value, expiresAt: s.now.Add(ttl)}
	return nil
}

func (s *fakeCodeStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok || s.now.After(entry.expiresAt) {
		return "", nil
	}
	return entry.value, nil
}

func (s *fakeCodeStore) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// fakeMailer records every message instead of sending it
type fakeMailer struct {
	mu         sync.Mutex
	codes      map[string][]string
	resetLinks map[string][]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		codes:      make(map[string][]string),
		resetLinks: make(map[string][]string),
	}
}

func (m *fakeMailer) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[toEmail] = append(m.codes[toEmail], code)
	return nil
}

func (m *fakeMailer) SendPasswordReset(ctx context.Context, toEmail, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLinks[toEmail] = append(m.resetLinks[toEmail], resetLink)
	return nil
}

func (m *fakeMailer) lastCode(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	codes := m.codes[email]
	if len(codes) == 0 {
		return ""
	}
	return codes[len(codes)-1]
}

type fakeFileStorage struct{}

func (fakeFileStorage) Upload(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader) (string, error) {
	return "https://cdn.example.com/uploads/" + fileHeader.Filename, nil
}
