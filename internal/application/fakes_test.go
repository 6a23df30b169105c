package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/internal/domain/repository"
)

type fakeSessions struct {
	mu        sync.Mutex
	data      map[string]entity.Session
	seq       int
	destroyed []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{data: map[string]entity.Session{}}
}

func (f *fakeSessions) Load(_ context.Context, id string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.data[id]
	if !ok {
		return nil, nil
	}
	s.ID = id
	return &s, nil
}

func (f *fakeSessions) Save(_ context.Context, s *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == "" {
		f.seq++
		s.ID = fmt.Sprintf("sid-%d", f.seq)
	}
	f.data[s.ID] = *s
	return nil
}

func (f *fakeSessions) Destroy(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, id)
	f.destroyed = append(f.destroyed, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.Activity
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, a entity.Activity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, a)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingIndex struct {
	indexed []Profile
	results []Profile
	err     error
}

func (x *recordingIndex) Index(_ context.Context, p Profile) error {
	x.indexed = append(x.indexed, p)
	return x.err
}

func (x *recordingIndex) Search(_ context.Context, _ string, _ int) ([]Profile, error) {
	return x.results, x.err
}

type failingAvatars struct{}

func (failingAvatars) Store(context.Context, string, string) (string, error) {
	return "", errors.New("bucket unavailable")
}

// countingUsers wraps a UserRepository and counts lookups and inserts.
type countingUsers struct {
	repository.UserRepository
	mu      sync.Mutex
	lookups int
	creates int
}

func (c *countingUsers) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	c.mu.Lock()
	c.lookups++
	c.mu.Unlock()
	return c.UserRepository.GetByUsername(ctx, username)
}

func (c *countingUsers) Create(ctx context.Context, u *entity.User) error {
	c.mu.Lock()
	c.creates++
	c.mu.Unlock()
	return c.UserRepository.Create(ctx, u)
}

func (c *countingUsers) calls() (lookups, creates int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookups, c.creates
}
