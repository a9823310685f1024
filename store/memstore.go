package store

import (
	"context"
	"sort"
	"sync"

	"taskboard/model"
)

// MemStore is a mutex-guarded in-memory Store. The test suites run the
// full HTTP surface against it; it is also handy for local runs without
// Firestore credentials.
type MemStore struct {
	mu       sync.RWMutex
	seq      int
	users    map[string]*userEntry
	projects map[string]*projectEntry
	columns  map[string]*columnEntry
	tasks    map[string]*taskEntry
}

type userEntry struct {
	seq  int
	user model.User
}

type projectEntry struct {
	seq     int
	project model.Project
}

type columnEntry struct {
	seq    int
	column model.Column
}

type taskEntry struct {
	seq  int
	task model.Task
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:    make(map[string]*userEntry),
		projects: make(map[string]*projectEntry),
		columns:  make(map[string]*columnEntry),
		tasks:    make(map[string]*taskEntry),
	}
}

func cloneUser(u model.User) model.User {
	u.Tokens = append([]string(nil), u.Tokens...)
	return u
}

func cloneProject(p model.Project) model.Project {
	p.MemberIDs = append([]string(nil), p.MemberIDs...)
	p.Tokens = append([]string(nil), p.Tokens...)
	return p
}

func cloneTask(t model.Task) model.Task {
	t.SubscriberIDs = append([]string(nil), t.SubscriberIDs...)
	return t
}

func (s *MemStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := cloneUser(entry.user)
	return &user, nil
}

func (s *MemStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.users {
		if entry.user.Email == email {
			user := cloneUser(entry.user)
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) ListUsers(ctx context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]*userEntry, 0, len(s.users))
	for _, entry := range s.users {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	users := make([]model.User, 0, len(entries))
	for _, entry := range entries {
		users = append(users, cloneUser(entry.user))
	}
	return users, nil
}

func (s *MemStore) PutUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.users[user.UserID]; ok {
		entry.user = cloneUser(*user)
		return nil
	}
	s.seq++
	s.users[user.UserID] = &userEntry{seq: s.seq, user: cloneUser(*user)}
	return nil
}

func (s *MemStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *MemStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	project := cloneProject(entry.project)
	return &project, nil
}

func (s *MemStore) GetProjectOwnedBy(ctx context.Context, id, ownerID string) (*model.Project, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return project, nil
}

func (s *MemStore) FindProjectByTitle(ctx context.Context, title string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.projects {
		if entry.project.Title == title {
			project := cloneProject(entry.project)
			return &project, nil
		}
	}
	return nil, nil
}

func (s *MemStore) listProjects(match func(*model.Project) bool) []model.Project {
	entries := make([]*projectEntry, 0, len(s.projects))
	for _, entry := range s.projects {
		if match(&entry.project) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	projects := make([]model.Project, 0, len(entries))
	for _, entry := range entries {
		projects = append(projects, cloneProject(entry.project))
	}
	return projects
}

func (s *MemStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listProjects(func(*model.Project) bool { return true }), nil
}

func (s *MemStore) ProjectsOwnedBy(ctx context.Context, userID string) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listProjects(func(p *model.Project) bool { return p.OwnerID == userID }), nil
}

func (s *MemStore) ProjectsWithMember(ctx context.Context, userID string) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listProjects(func(p *model.Project) bool { return p.HasMember(userID) }), nil
}

func (s *MemStore) PutProject(ctx context.Context, project *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.projects[project.ProjectID]; ok {
		entry.project = cloneProject(*project)
		return nil
	}
	s.seq++
	s.projects[project.ProjectID] = &projectEntry{seq: s.seq, project: cloneProject(*project)}
	return nil
}

func (s *MemStore) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

func (s *MemStore) GetColumn(ctx context.Context, id string) (*model.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.columns[id]
	if !ok {
		return nil, ErrNotFound
	}
	column := entry.column
	return &column, nil
}

func (s *MemStore) listColumns(match func(*model.Column) bool) []model.Column {
	entries := make([]*columnEntry, 0, len(s.columns))
	for _, entry := range s.columns {
		if match(&entry.column) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	columns := make([]model.Column, 0, len(entries))
	for _, entry := range entries {
		columns = append(columns, entry.column)
	}
	return columns
}

func (s *MemStore) ColumnsOfProject(ctx context.Context, projectID string) ([]model.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listColumns(func(c *model.Column) bool { return c.ProjectID == projectID }), nil
}

func (s *MemStore) CountColumns(ctx context.Context, projectID string) (int, error) {
	columns, err := s.ColumnsOfProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return len(columns), nil
}

func (s *MemStore) FindColumnConflict(ctx context.Context, projectID, title string, order int) (*model.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.columns {
		c := entry.column
		if c.ProjectID == projectID && (c.Title == title || c.Order == order) {
			return &c, nil
		}
	}
	return nil, nil
}

func (s *MemStore) FindColumnByTitle(ctx context.Context, projectID, title string) (*model.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.columns {
		c := entry.column
		if c.ProjectID == projectID && c.Title == title {
			return &c, nil
		}
	}
	return nil, nil
}

func (s *MemStore) PutColumn(ctx context.Context, column *model.Column) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.columns[column.ColumnID]; ok {
		entry.column = *column
		return nil
	}
	s.seq++
	s.columns[column.ColumnID] = &columnEntry{seq: s.seq, column: *column}
	return nil
}

func (s *MemStore) DeleteColumn(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.columns, id)
	return nil
}

func (s *MemStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	task := cloneTask(entry.task)
	return &task, nil
}

func (s *MemStore) listTasks(match func(*model.Task) bool) []model.Task {
	entries := make([]*taskEntry, 0, len(s.tasks))
	for _, entry := range s.tasks {
		if match(&entry.task) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	tasks := make([]model.Task, 0, len(entries))
	for _, entry := range entries {
		tasks = append(tasks, cloneTask(entry.task))
	}
	return tasks
}

func (s *MemStore) TasksOfProject(ctx context.Context, projectID string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listTasks(func(t *model.Task) bool { return t.ProjectID == projectID }), nil
}

func (s *MemStore) TasksOfColumn(ctx context.Context, columnID string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listTasks(func(t *model.Task) bool { return t.ColumnID == columnID }), nil
}

func (s *MemStore) CountTasks(ctx context.Context, projectID string) (int, error) {
	tasks, err := s.TasksOfProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return len(tasks), nil
}

func (s *MemStore) FindTaskConflict(ctx context.Context, projectID, title, columnID string, order int) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.tasks {
		t := entry.task
		if (t.ProjectID == projectID && t.Title == title) ||
			(t.ColumnID == columnID && t.Order == order) {
			task := cloneTask(t)
			return &task, nil
		}
	}
	return nil, nil
}

func (s *MemStore) FindTaskByTitle(ctx context.Context, projectID, title string) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.tasks {
		if entry.task.ProjectID == projectID && entry.task.Title == title {
			task := cloneTask(entry.task)
			return &task, nil
		}
	}
	return nil, nil
}

func (s *MemStore) TasksWithAssignee(ctx context.Context, userID string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listTasks(func(t *model.Task) bool { return t.AssigneeID == userID }), nil
}

func (s *MemStore) TasksWithSubscriber(ctx context.Context, userID string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listTasks(func(t *model.Task) bool { return t.HasSubscriber(userID) }), nil
}

func (s *MemStore) PutTask(ctx context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.tasks[task.TaskID]; ok {
		entry.task = cloneTask(*task)
		return nil
	}
	s.seq++
	s.tasks[task.TaskID] = &taskEntry{seq: s.seq, task: cloneTask(*task)}
	return nil
}

func (s *MemStore) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}
