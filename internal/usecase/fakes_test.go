package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/profile"
	"jobboard/internal/infrastructure/events"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

// memStore backs the profile repositories. WithinTx works on a copy and
// swaps it in only when fn succeeds.
type memStore struct {
	profiles map[uuid.UUID]profile.Profile
	work     map[int64]profile.WorkExperience
	edu      map[int64]profile.Education
	nextID   int64

	failDelete error
}

func newMemStore() *memStore {
	return &memStore{
		profiles: map[uuid.UUID]profile.Profile{},
		work:     map[int64]profile.WorkExperience{},
		edu:      map[int64]profile.Education{},
		nextID:   100,
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k, v := range s.work {
		c.work[k] = v
	}
	for k, v := range s.edu {
		c.edu[k] = v
	}
	c.nextID = s.nextID
	c.failDelete = s.failDelete
	return c
}

func (s *memStore) WithinTx(_ context.Context, fn func(repository.TxRepositories) error) error {
	staged := s.clone()
	if err := fn(repository.TxRepositories{
		Profiles:        memProfiles{staged},
		WorkExperiences: memWork{staged},
		Educations:      memEdu{staged},
	}); err != nil {
		return err
	}
	*s = *staged
	return nil
}

type memProfiles struct{ s *memStore }

func (m memProfiles) CreateEmpty(_ context.Context, userID uuid.UUID) (int64, error) {
	m.s.nextID++
	m.s.profiles[userID] = profile.Profile{ID: m.s.nextID, UserID: userID}
	return m.s.nextID, nil
}

func (m memProfiles) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, ok := m.s.profiles[userID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (m memProfiles) byID(id int64) (uuid.UUID, profile.Profile, bool) {
	for k, p := range m.s.profiles {
		if p.ID == id {
			return k, p, true
		}
	}
	return uuid.Nil, profile.Profile{}, false
}

func (m memProfiles) UpdateAboutMe(_ context.Context, profileID int64, aboutMe string) error {
	k, p, ok := m.byID(profileID)
	if !ok {
		return profile.ErrNotFound
	}
	p.AboutMe = &aboutMe
	m.s.profiles[k] = p
	return nil
}

func (m memProfiles) UpdateSkills(_ context.Context, profileID int64, skills []string) error {
	k, p, ok := m.byID(profileID)
	if !ok {
		return profile.ErrNotFound
	}
	p.Skills = skills
	m.s.profiles[k] = p
	return nil
}

func (m memProfiles) SetResume(_ context.Context, profileID int64, key string) (*string, error) {
	k, p, ok := m.byID(profileID)
	if !ok {
		return nil, profile.ErrNotFound
	}
	prev := p.Resume
	p.Resume = &key
	m.s.profiles[k] = p
	return prev, nil
}

func (m memProfiles) SetAvatar(_ context.Context, profileID int64, key string) (*string, error) {
	k, p, ok := m.byID(profileID)
	if !ok {
		return nil, profile.ErrNotFound
	}
	prev := p.Avatar
	p.Avatar = &key
	m.s.profiles[k] = p
	return prev, nil
}

type memWork struct{ s *memStore }

func (m memWork) ListByProfile(_ context.Context, profileID int64) ([]profile.WorkExperience, error) {
	out := []profile.WorkExperience{}
	for _, w := range m.s.work {
		if w.ProfileID == profileID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memWork) GetForUpdate(_ context.Context, id, profileID int64) (profile.WorkExperience, error) {
	w, ok := m.s.work[id]
	if !ok || w.ProfileID != profileID {
		return profile.WorkExperience{}, profile.ErrWorkExperienceNotFound
	}
	return w, nil
}

func (m memWork) Create(_ context.Context, w profile.WorkExperience) (profile.WorkExperience, error) {
	m.s.nextID++
	w.ID = m.s.nextID
	m.s.work[w.ID] = w
	return w, nil
}

func (m memWork) Update(_ context.Context, w profile.WorkExperience) error {
	if _, ok := m.s.work[w.ID]; !ok {
		return profile.ErrWorkExperienceNotFound
	}
	m.s.work[w.ID] = w
	return nil
}

func (m memWork) DeleteByIDs(_ context.Context, profileID int64, ids []int64) (int64, error) {
	if m.s.failDelete != nil {
		return 0, m.s.failDelete
	}
	var n int64
	for _, id := range ids {
		if w, ok := m.s.work[id]; ok && w.ProfileID == profileID {
			delete(m.s.work, id)
			n++
		}
	}
	return n, nil
}

type memEdu struct{ s *memStore }

func (m memEdu) ListByProfile(_ context.Context, profileID int64) ([]profile.Education, error) {
	out := []profile.Education{}
	for _, e := range m.s.edu {
		if e.ProfileID == profileID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memEdu) GetForUpdate(_ context.Context, id, profileID int64) (profile.Education, error) {
	e, ok := m.s.edu[id]
	if !ok || e.ProfileID != profileID {
		return profile.Education{}, profile.ErrEducationNotFound
	}
	return e, nil
}

func (m memEdu) Create(_ context.Context, e profile.Education) (profile.Education, error) {
	m.s.nextID++
	e.ID = m.s.nextID
	m.s.edu[e.ID] = e
	return e, nil
}

func (m memEdu) Update(_ context.Context, e profile.Education) error {
	if _, ok := m.s.edu[e.ID]; !ok {
		return profile.ErrEducationNotFound
	}
	m.s.edu[e.ID] = e
	return nil
}

func (m memEdu) DeleteByIDs(_ context.Context, profileID int64, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if e, ok := m.s.edu[id]; ok && e.ProfileID == profileID {
			delete(m.s.edu, id)
			n++
		}
	}
	return n, nil
}

// memFiles records object writes.
type memFiles struct {
	mu      sync.Mutex
	objects map[string]string
	removed []string
}

func newMemFiles() *memFiles { return &memFiles{objects: map[string]string{}} }

func (f *memFiles) Put(_ context.Context, key, _ string, r io.Reader, _ int64) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = string(b)
	return nil
}

func (f *memFiles) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.removed = append(f.removed, key)
	return nil
}

// memCache is a ListingCache over a map.
type memCache struct {
	mu      sync.Mutex
	data    map[string]any
	locks   map[string]bool
	gens    map[string]int64
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string]any{}, locks: map[string]bool{}, gens: map[string]int64{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if p, ok := out.(*JobListPage); ok {
		*p = v.(JobListPage)
	}
	return true, nil
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	delete(c.locks, key)
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	c.deleted = append(c.deleted, pattern)
	return nil
}

func (c *memCache) Generation(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key], nil
}

func (c *memCache) BumpGeneration(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	return c.gens[key], nil
}

// fakeJobRepo serves a fixed job set.
type fakeJobRepo struct {
	mu      sync.Mutex
	jobs    map[int64]job.Job
	total   int
	page    []job.Job
	calls   int
	last    repository.JobListFilter
	err     error
	created []job.Job

	// onList runs inside ListFiltered before it returns.
	onList func()
}

func (f *fakeJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	if f.err != nil {
		return job.Job{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	j.ID = int64(len(f.created) + 1)
	j.CreatedAt = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	f.created = append(f.created, j)
	return j, nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id int64) (job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.jobs[id]
	return ok, f.err
}

func (f *fakeJobRepo) ListAll(context.Context) ([]job.Job, error) { return f.page, f.err }

func (f *fakeJobRepo) ListFiltered(_ context.Context, flt repository.JobListFilter) ([]job.Job, int, error) {
	f.mu.Lock()
	f.calls++
	f.last = flt
	hook := f.onList
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return f.page, f.total, f.err
}

type recordingPublisher struct {
	events []events.JobCreated
	err    error
}

func (p *recordingPublisher) PublishJobCreated(_ context.Context, e events.JobCreated) error {
	p.events = append(p.events, e)
	return p.err
}

type recordingNotifier struct {
	jobs []job.Job
}

func (n *recordingNotifier) NotifyJobCreated(j job.Job) { n.jobs = append(n.jobs, j) }
