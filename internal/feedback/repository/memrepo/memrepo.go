// Package memrepo keeps users and feedback in process memory. It enforces the
// same keys and ownership rules as the postgres schema and is used with
// `storage: memory` and in tests.
package memrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
	"github.com/Leopold1975/feedback_board/internal/feedback/repository/feedbackrepo"
	"github.com/Leopold1975/feedback_board/internal/feedback/repository/userrepo"
)

type Store struct {
	mu       sync.Mutex
	users    map[string]models.User
	emails   map[string]string
	feedback map[int64]models.Feedback
	nextID   int64
}

func New() *Store {
	return &Store{
		users:    make(map[string]models.User),
		emails:   make(map[string]string),
		feedback: make(map[int64]models.Feedback),
		nextID:   1,
	}
}

func (s *Store) CreateUser(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Username]; ok {
		return userrepo.ErrUsernameTaken
	}

	if _, ok := s.emails[u.Email]; ok {
		return userrepo.ErrEmailTaken
	}

	s.users[u.Username] = u
	s.emails[u.Email] = u.Username

	return nil
}

func (s *Store) GetUser(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return models.User{}, userrepo.ErrNotFound
	}

	return u, nil
}

func (s *Store) DeleteUser(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return userrepo.ErrNotFound
	}

	for id, f := range s.feedback {
		if f.Username == username {
			delete(s.feedback, id)
		}
	}

	delete(s.emails, u.Email)
	delete(s.users, username)

	return nil
}

func (s *Store) CreateFeedback(_ context.Context, f models.Feedback) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[f.Username]; !ok {
		return models.Feedback{}, feedbackrepo.ErrUserNotFound
	}

	f.ID = s.nextID
	s.nextID++
	s.feedback[f.ID] = f

	return f, nil
}

func (s *Store) GetFeedback(_ context.Context, id int64) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.feedback[id]
	if !ok {
		return models.Feedback{}, feedbackrepo.ErrNotFound
	}

	return f, nil
}

func (s *Store) ListFeedbackByUser(_ context.Context, username string) ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]models.Feedback, 0)

	for _, f := range s.feedback {
		if f.Username == username {
			res = append(res, f)
		}
	}

	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	return res, nil
}

func (s *Store) UpdateFeedback(_ context.Context, id int64, update feedbackrepo.UpdateFunc) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.feedback[id]
	if !ok {
		return models.Feedback{}, feedbackrepo.ErrNotFound
	}

	next := current
	if err := update(&next); err != nil {
		return models.Feedback{}, err
	}

	next.ID = current.ID
	next.Username = current.Username
	s.feedback[id] = next

	return next, nil
}

func (s *Store) DeleteFeedback(_ context.Context, id int64, check feedbackrepo.CheckFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.feedback[id]
	if !ok {
		return feedbackrepo.ErrNotFound
	}

	if err := check(current); err != nil {
		return err
	}

	delete(s.feedback, id)

	return nil
}
