package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"files-manager-api/internal/application/ports"
	"files-manager-api/internal/domain/file"
	"files-manager-api/internal/domain/job"
	"files-manager-api/internal/domain/user"
)

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counter"}, []string{"result"})
}

func newJobCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_jobs"}, []string{"status"})
}

type FakeSessionStore struct {
	tokens map[string]string
	err    error
}

func newFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{tokens: map[string]string{}}
}

func (s *FakeSessionStore) Create(_ context.Context, userID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	t := uuid.NewString()
	s.tokens[t] = userID
	return t, nil
}

func (s *FakeSessionStore) Validate(_ context.Context, token string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.tokens[token], nil
}

func (s *FakeSessionStore) Revoke(_ context.Context, token string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.tokens, token)
	return nil
}

type FakeUserRepository struct {
	users     map[string]*user.User
	err       error
	createErr error
}

func newFakeUserRepository(users ...*user.User) *FakeUserRepository {
	r := &FakeUserRepository{users: map[string]*user.User{}}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *FakeUserRepository) FetchUserByID(_ context.Context, id user.UUID) (*user.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.UUID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *FakeUserRepository) FetchUserByEmail(_ context.Context, email string) (*user.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users[email], nil
}

func (r *FakeUserRepository) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	req.UUID = uuid.New()
	req.CreatedAt = time.Now()
	r.users[req.Email] = &req
	return &req, nil
}

func (r *FakeUserRepository) CountUsers(context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.users)), nil
}

// FakeFileRepository keeps files in insertion order like the seq column.
type FakeFileRepository struct {
	mu        sync.Mutex
	files     []*file.File
	err       error
	createErr error
}

func (r *FakeFileRepository) add(f *file.File) *file.File {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.UUID == uuid.Nil {
		f.UUID = uuid.New()
	}
	r.files = append(r.files, f)
	return f
}

func (r *FakeFileRepository) find(id uuid.UUID) *file.File {
	for _, f := range r.files {
		if f.UUID == id {
			cp := *f
			return &cp
		}
	}
	return nil
}

func (r *FakeFileRepository) CreateFile(_ context.Context, req *file.File) (*file.File, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	cp := *req
	cp.UUID = uuid.New()
	cp.CreatedAt = time.Now()
	if cp.Kind == file.KindFolder {
		cp.LocalPath = ""
	}
	r.add(&cp)
	out := cp
	return &out, nil
}

func (r *FakeFileRepository) FetchFileByID(_ context.Context, id uuid.UUID) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.find(id), nil
}

func (r *FakeFileRepository) FetchOwnedFile(_ context.Context, id, ownerID uuid.UUID) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	f := r.find(id)
	if f == nil || f.OwnerID != ownerID {
		return nil, nil
	}
	return f, nil
}

func (r *FakeFileRepository) FetchChildren(_ context.Context, parent file.ParentRef, ownerID uuid.UUID, page int) (file.Files, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var all file.Files
	for _, f := range r.files {
		if f.OwnerID == ownerID && f.ParentID == parent {
			cp := *f
			all = append(all, &cp)
		}
	}
	start := page * file.PageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + file.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *FakeFileRepository) SetPublic(_ context.Context, id, ownerID uuid.UUID, isPublic bool) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, f := range r.files {
		if f.UUID == id && f.OwnerID == ownerID {
			f.IsPublic = isPublic
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *FakeFileRepository) CountFiles(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.files)), nil
}

type FakeJobRepository struct {
	mu      sync.Mutex
	records map[uuid.UUID]*job.Record
	err     error
}

func newFakeJobRepository() *FakeJobRepository {
	return &FakeJobRepository{records: map[uuid.UUID]*job.Record{}}
}

func (r *FakeJobRepository) CreateJob(_ context.Context, j job.DerivationJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records[j.ID] = &job.Record{ID: j.ID, FileID: j.FileID, OwnerID: j.OwnerID, Status: job.StatusPending}
	return nil
}

func (r *FakeJobRepository) set(id uuid.UUID, fn func(rec *job.Record)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	rec, ok := r.records[id]
	if !ok {
		rec = &job.Record{ID: id}
		r.records[id] = rec
	}
	fn(rec)
	return nil
}

func (r *FakeJobRepository) MarkProcessing(_ context.Context, id uuid.UUID, attempt int) error {
	return r.set(id, func(rec *job.Record) { rec.Status, rec.Attempts = job.StatusProcessing, attempt })
}

func (r *FakeJobRepository) MarkCompleted(_ context.Context, id uuid.UUID) error {
	return r.set(id, func(rec *job.Record) { rec.Status, rec.LastError = job.StatusCompleted, "" })
}

func (r *FakeJobRepository) MarkFailed(_ context.Context, id uuid.UUID, status job.Status, reason string) error {
	return r.set(id, func(rec *job.Record) { rec.Status, rec.LastError = status, reason })
}

func (r *FakeJobRepository) FetchJob(_ context.Context, id uuid.UUID) (*job.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *FakeJobRepository) status(id uuid.UUID) job.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[id]; ok {
		return rec.Status
	}
	return ""
}

// FakeStorage is an in-memory blob store rooted at "/blobs".
type FakeStorage struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	writes   int
	writeErr error
	readErr  error
}

func newFakeStorage() *FakeStorage {
	return &FakeStorage{blobs: map[string][]byte{}}
}

func (s *FakeStorage) Path(name string) string { return "/blobs/" + name }

func (s *FakeStorage) Write(_ context.Context, path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.writes++
	s.blobs[path] = append([]byte(nil), data...)
	return nil
}

func (s *FakeStorage) Read(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	b, ok := s.blobs[path]
	if !ok {
		return nil, ports.ErrBlobNotExist
	}
	return b, nil
}

func (s *FakeStorage) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[path]
	return ok, nil
}

func (s *FakeStorage) Ping(context.Context) error { return nil }

func (s *FakeStorage) paths(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for p := range s.blobs {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

type FakeQueue struct {
	jobs []job.DerivationJob
	err  error
}

func (q *FakeQueue) Enqueue(_ context.Context, j job.DerivationJob) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, j)
	return nil
}

var errBackend = errors.New("backend down")
