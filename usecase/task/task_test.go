package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

type fakeUsers struct {
	users map[int64]*domain.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) List(ctx context.Context) ([]domain.User, error)                 { return nil, nil }
func (f *fakeUsers) Create(ctx context.Context, u *domain.User) (*domain.User, error) { return u, nil }
func (f *fakeUsers) Update(ctx context.Context, u *domain.User) error                 { return nil }
func (f *fakeUsers) Delete(ctx context.Context, id int64) error                       { return nil }

type fakeStatuses struct {
	statuses map[int64]*domain.TaskStatus
}

func (f *fakeStatuses) GetByID(ctx context.Context, id int64) (*domain.TaskStatus, error) {
	if s, ok := f.statuses[id]; ok {
		return s, nil
	}
	return nil, domain.ErrStatusNotFound
}

func (f *fakeStatuses) List(ctx context.Context) ([]domain.TaskStatus, error) { return nil, nil }
func (f *fakeStatuses) Create(ctx context.Context, s *domain.TaskStatus) (*domain.TaskStatus, error) {
	return s, nil
}
func (f *fakeStatuses) Update(ctx context.Context, s *domain.TaskStatus) error { return nil }
func (f *fakeStatuses) Delete(ctx context.Context, id int64) error             { return nil }

type fakeLabels struct {
	labels map[int64]*domain.Label
}

func (f *fakeLabels) GetByID(ctx context.Context, id int64) (*domain.Label, error) {
	if l, ok := f.labels[id]; ok {
		return l, nil
	}
	return nil, domain.ErrLabelNotFound
}

func (f *fakeLabels) List(ctx context.Context) ([]domain.Label, error)                 { return nil, nil }
func (f *fakeLabels) Create(ctx context.Context, l *domain.Label) (*domain.Label, error) { return l, nil }
func (f *fakeLabels) Update(ctx context.Context, l *domain.Label) error                 { return nil }
func (f *fakeLabels) Delete(ctx context.Context, id int64) error                        { return nil }

// fakeTasks applies the same AND/membership filter semantics as the SQL
// composer so listing behavior can be exercised at the use-case boundary.
type fakeTasks struct {
	tasks  map[int64]*domain.Task
	nextID int64
}

func (f *fakeTasks) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if t, ok := f.tasks[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTasks) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for id := int64(1); id <= f.nextID; id++ {
		t, ok := f.tasks[id]
		if !ok || !matches(t, filter) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func matches(t *domain.Task, filter repository.TaskFilter) bool {
	if filter.StatusID != nil && t.Status.ID != *filter.StatusID {
		return false
	}
	if filter.ExecutorID != nil && (t.Executor == nil || t.Executor.ID != *filter.ExecutorID) {
		return false
	}
	if filter.AuthorID != nil && t.Author.ID != *filter.AuthorID {
		return false
	}
	if filter.LabelID != nil {
		found := false
		for _, l := range t.Labels {
			if l.ID == *filter.LabelID {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeTasks) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	f.nextID++
	t.ID = f.nextID
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTasks) Update(ctx context.Context, t *domain.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	f.tasks[t.ID] = t
	return nil
}

func (f *fakeTasks) Delete(ctx context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTasks) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	for _, t := range f.tasks {
		if t.Author.ID == authorID {
			count++
		}
	}
	return count, nil
}

func fixture() *UseCase {
	users := &fakeUsers{users: map[int64]*domain.User{
		1: {ID: 1, Email: "a@x.com"},
		2: {ID: 2, Email: "b@x.com"},
	}}
	statuses := &fakeStatuses{statuses: map[int64]*domain.TaskStatus{
		1: {ID: 1, Name: "new"},
		2: {ID: 2, Name: "done"},
	}}
	labels := &fakeLabels{labels: map[int64]*domain.Label{
		1: {ID: 1, Name: "bug"},
	}}
	tasks := &fakeTasks{tasks: map[int64]*domain.Task{}}
	return New(tasks, users, statuses, labels, nil, nil)
}

func TestCreate_AuthorFromCaller(t *testing.T) {
	uc := fixture()

	created, err := uc.Create(context.Background(), "a@x.com", Input{Name: "T1", StatusID: 1})
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", created.Author.Email)
	assert.Equal(t, "new", created.Status.Name)
}

func TestCreate_UnknownCaller(t *testing.T) {
	uc := fixture()

	_, err := uc.Create(context.Background(), "ghost@x.com", Input{Name: "T1", StatusID: 1})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}

func TestCreate_Validation(t *testing.T) {
	uc := fixture()

	_, err := uc.Create(context.Background(), "a@x.com", Input{Name: "  ", StatusID: 1})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Create(context.Background(), "a@x.com", Input{Name: "T1"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestCreate_DanglingReferences(t *testing.T) {
	uc := fixture()
	missing := int64(99)

	_, err := uc.Create(context.Background(), "a@x.com", Input{Name: "T1", StatusID: 99})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	_, err = uc.Create(context.Background(), "a@x.com", Input{Name: "T1", StatusID: 1, ExecutorID: &missing})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	_, err = uc.Create(context.Background(), "a@x.com", Input{Name: "T1", StatusID: 1, LabelIDs: []int64{99}})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestDelete_OwnershipSequence(t *testing.T) {
	uc := fixture()

	created, err := uc.Create(context.Background(), "a@x.com", Input{Name: "T1", StatusID: 1})
	require.NoError(t, err)

	// Nonexistent id resolves to not-found before any ownership decision.
	err = uc.Delete(context.Background(), "b@x.com", 999)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	// Another identity is rejected with forbidden, not not-found.
	err = uc.Delete(context.Background(), "b@x.com", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// The author succeeds and the task is gone from listings.
	require.NoError(t, uc.Delete(context.Background(), "a@x.com", created.ID))
	remaining, err := uc.List(context.Background(), repository.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestUpdate_PreservesAuthor(t *testing.T) {
	uc := fixture()

	created, err := uc.Create(context.Background(), "a@x.com", Input{Name: "T1", StatusID: 1})
	require.NoError(t, err)

	// Any authenticated user may update, but the author never changes.
	updated, err := uc.Update(context.Background(), "b@x.com", created.ID, Input{Name: "T1b", StatusID: 2})
	require.NoError(t, err)

	assert.Equal(t, "T1b", updated.Name)
	assert.Equal(t, "a@x.com", updated.Author.Email)
	assert.Equal(t, "done", updated.Status.Name)
}

func TestList_FilterCombinations(t *testing.T) {
	uc := fixture()
	exec1, exec2 := int64(1), int64(2)

	// T1: status 1, executor 1, label {1}; T2: status 2, executor 2, no labels.
	t1, err := uc.Create(context.Background(), "a@x.com", Input{
		Name: "T1", StatusID: 1, ExecutorID: &exec1, LabelIDs: []int64{1},
	})
	require.NoError(t, err)
	t2, err := uc.Create(context.Background(), "b@x.com", Input{
		Name: "T2", StatusID: 2, ExecutorID: &exec2,
	})
	require.NoError(t, err)

	status1 := int64(1)
	byStatus, err := uc.List(context.Background(), repository.TaskFilter{StatusID: &status1})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, t1.ID, byStatus[0].ID)

	label := int64(1)
	byLabel, err := uc.List(context.Background(), repository.TaskFilter{LabelID: &label})
	require.NoError(t, err)
	require.Len(t, byLabel, 1)
	assert.Equal(t, t1.ID, byLabel[0].ID)

	all, err := uc.List(context.Background(), repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, t1.ID, all[0].ID)
	assert.Equal(t, t2.ID, all[1].ID)

	none, err := uc.List(context.Background(), repository.TaskFilter{StatusID: &status1, ExecutorID: &exec2})
	require.NoError(t, err)
	assert.Empty(t, none)
}
