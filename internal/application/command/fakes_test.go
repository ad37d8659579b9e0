package command

import (
	"context"
	"sort"
	"strings"

	"github.com/campus-hub/student-records/internal/domain/session"
	"github.com/campus-hub/student-records/internal/domain/shared"
	"github.com/campus-hub/student-records/internal/domain/student"
	"github.com/campus-hub/student-records/internal/domain/user"
)

// fakeUserRepo is an in-memory user.Repository used by the command tests.
type fakeUserRepo struct {
	users map[string]*user.User // keyed by username
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username || strings.EqualFold(existing.Email, u.Email) {
			return shared.ErrUserExists
		}
	}
	cp := *u
	r.users[u.Username] = &cp
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// fakeSessionStore is an in-memory session.Store.
type fakeSessionStore struct {
	sessions map[string]*session.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*session.Session)}
}

func (s *fakeSessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, shared.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *fakeSessionStore) Save(_ context.Context, sess *session.Session) error {
	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

// fakeStudentRepo is an in-memory student.Repository.
type fakeStudentRepo struct {
	students map[string]*student.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]*student.Student)}
}

func (r *fakeStudentRepo) Create(_ context.Context, s *student.Student) error {
	for _, existing := range r.students {
		if existing.StudentNumber == s.StudentNumber || existing.Email == s.Email {
			return shared.ErrDuplicateStudent
		}
	}
	cp := *s
	r.students[s.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id string) (*student.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, shared.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, s *student.Student) error {
	if _, ok := r.students[s.ID]; !ok {
		return shared.ErrStudentNotFound
	}
	cp := *s
	r.students[s.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.students[id]; !ok {
		return shared.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) List(_ context.Context, opts student.ListOptions) ([]*student.Student, error) {
	matched := r.matching(opts.Filter)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if opts.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[opts.Offset:]
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (r *fakeStudentRepo) Count(_ context.Context, f student.Filter) (int, error) {
	return len(r.matching(f)), nil
}

func (r *fakeStudentRepo) DistinctMajors(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var majors []string
	for _, s := range r.students {
		if !seen[s.Major] {
			seen[s.Major] = true
			majors = append(majors, s.Major)
		}
	}
	sort.Strings(majors)
	return majors, nil
}

func (r *fakeStudentRepo) ExistsOther(_ context.Context, excludeID, studentNumber, email string) (bool, error) {
	for _, s := range r.students {
		if s.ID == excludeID {
			continue
		}
		if s.StudentNumber == studentNumber || s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) matching(f student.Filter) []*student.Student {
	var out []*student.Student
	for _, s := range r.students {
		if f.HasSearch() {
			term := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(s.FirstName), term) &&
				!strings.Contains(strings.ToLower(s.LastName), term) &&
				!strings.Contains(strings.ToLower(s.Major), term) {
				continue
			}
		}
		if f.HasMajor() && !strings.Contains(strings.ToLower(s.Major), strings.ToLower(f.Major)) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out
}
