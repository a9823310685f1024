package store

import (
	"context"

	"taskboard/model"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection    = "Users"
	projectsCollection = "Projects"
	columnsCollection  = "Columns"
	tasksCollection    = "Tasks"
)

// FirestoreStore implements Store on top of a Firestore client. Document
// ids double as entity ids.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) getDoc(ctx context.Context, collection, id string, out interface{}) error {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}
	return snap.DataTo(out)
}

func (s *FirestoreStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.getDoc(ctx, usersCollection, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *FirestoreStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	docs, err := s.client.Collection(usersCollection).
		Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	var user model.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *FirestoreStore) ListUsers(ctx context.Context) ([]model.User, error) {
	docs, err := s.client.Collection(usersCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(docs))
	for _, doc := range docs {
		var user model.User
		if err := doc.DataTo(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *FirestoreStore) PutUser(ctx context.Context, user *model.User) error {
	_, err := s.client.Collection(usersCollection).Doc(user.UserID).Set(ctx, user)
	return err
}

func (s *FirestoreStore) DeleteUser(ctx context.Context, id string) error {
	_, err := s.client.Collection(usersCollection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := s.getDoc(ctx, projectsCollection, id, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *FirestoreStore) GetProjectOwnedBy(ctx context.Context, id, ownerID string) (*model.Project, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return project, nil
}

func (s *FirestoreStore) FindProjectByTitle(ctx context.Context, title string) (*model.Project, error) {
	docs, err := s.client.Collection(projectsCollection).
		Where("title", "==", title).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	var project model.Project
	if err := docs[0].DataTo(&project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *FirestoreStore) projectQuery(ctx context.Context, query firestore.Query) ([]model.Project, error) {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	projects := make([]model.Project, 0, len(docs))
	for _, doc := range docs {
		var project model.Project
		if err := doc.DataTo(&project); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (s *FirestoreStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.projectQuery(ctx, s.client.Collection(projectsCollection).Query)
}

func (s *FirestoreStore) ProjectsOwnedBy(ctx context.Context, userID string) ([]model.Project, error) {
	return s.projectQuery(ctx, s.client.Collection(projectsCollection).Where("owner", "==", userID))
}

func (s *FirestoreStore) ProjectsWithMember(ctx context.Context, userID string) ([]model.Project, error) {
	return s.projectQuery(ctx, s.client.Collection(projectsCollection).Where("members", "array-contains", userID))
}

func (s *FirestoreStore) PutProject(ctx context.Context, project *model.Project) error {
	_, err := s.client.Collection(projectsCollection).Doc(project.ProjectID).Set(ctx, project)
	return err
}

func (s *FirestoreStore) DeleteProject(ctx context.Context, id string) error {
	_, err := s.client.Collection(projectsCollection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) GetColumn(ctx context.Context, id string) (*model.Column, error) {
	var column model.Column
	if err := s.getDoc(ctx, columnsCollection, id, &column); err != nil {
		return nil, err
	}
	return &column, nil
}

func (s *FirestoreStore) columnQuery(ctx context.Context, query firestore.Query) ([]model.Column, error) {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	columns := make([]model.Column, 0, len(docs))
	for _, doc := range docs {
		var column model.Column
		if err := doc.DataTo(&column); err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	return columns, nil
}

func (s *FirestoreStore) ColumnsOfProject(ctx context.Context, projectID string) ([]model.Column, error) {
	return s.columnQuery(ctx, s.client.Collection(columnsCollection).Where("projectid", "==", projectID))
}

func (s *FirestoreStore) CountColumns(ctx context.Context, projectID string) (int, error) {
	columns, err := s.ColumnsOfProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return len(columns), nil
}

// Firestore has no OR filter across fields in this client version, so the
// title and order probes run as two queries.
func (s *FirestoreStore) FindColumnConflict(ctx context.Context, projectID, title string, order int) (*model.Column, error) {
	byTitle, err := s.columnQuery(ctx, s.client.Collection(columnsCollection).
		Where("projectid", "==", projectID).Where("title", "==", title).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(byTitle) > 0 {
		return &byTitle[0], nil
	}
	byOrder, err := s.columnQuery(ctx, s.client.Collection(columnsCollection).
		Where("projectid", "==", projectID).Where("order", "==", order).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(byOrder) > 0 {
		return &byOrder[0], nil
	}
	return nil, nil
}

func (s *FirestoreStore) FindColumnByTitle(ctx context.Context, projectID, title string) (*model.Column, error) {
	columns, err := s.columnQuery(ctx, s.client.Collection(columnsCollection).
		Where("projectid", "==", projectID).Where("title", "==", title).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, nil
	}
	return &columns[0], nil
}

func (s *FirestoreStore) PutColumn(ctx context.Context, column *model.Column) error {
	_, err := s.client.Collection(columnsCollection).Doc(column.ColumnID).Set(ctx, column)
	return err
}

func (s *FirestoreStore) DeleteColumn(ctx context.Context, id string) error {
	_, err := s.client.Collection(columnsCollection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := s.getDoc(ctx, tasksCollection, id, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *FirestoreStore) taskQuery(ctx context.Context, query firestore.Query) ([]model.Task, error) {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(docs))
	for _, doc := range docs {
		var task model.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *FirestoreStore) TasksOfProject(ctx context.Context, projectID string) ([]model.Task, error) {
	return s.taskQuery(ctx, s.client.Collection(tasksCollection).Where("projectid", "==", projectID))
}

func (s *FirestoreStore) TasksOfColumn(ctx context.Context, columnID string) ([]model.Task, error) {
	return s.taskQuery(ctx, s.client.Collection(tasksCollection).Where("columnid", "==", columnID))
}

func (s *FirestoreStore) CountTasks(ctx context.Context, projectID string) (int, error) {
	tasks, err := s.TasksOfProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return len(tasks), nil
}

func (s *FirestoreStore) FindTaskConflict(ctx context.Context, projectID, title, columnID string, order int) (*model.Task, error) {
	byTitle, err := s.taskQuery(ctx, s.client.Collection(tasksCollection).
		Where("projectid", "==", projectID).Where("title", "==", title).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(byTitle) > 0 {
		return &byTitle[0], nil
	}
	byOrder, err := s.taskQuery(ctx, s.client.Collection(tasksCollection).
		Where("columnid", "==", columnID).Where("order", "==", order).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(byOrder) > 0 {
		return &byOrder[0], nil
	}
	return nil, nil
}

func (s *FirestoreStore) FindTaskByTitle(ctx context.Context, projectID, title string) (*model.Task, error) {
	tasks, err := s.taskQuery(ctx, s.client.Collection(tasksCollection).
		Where("projectid", "==", projectID).Where("title", "==", title).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

func (s *FirestoreStore) TasksWithAssignee(ctx context.Context, userID string) ([]model.Task, error) {
	return s.taskQuery(ctx, s.client.Collection(tasksCollection).Where("assignee", "==", userID))
}

func (s *FirestoreStore) TasksWithSubscriber(ctx context.Context, userID string) ([]model.Task, error) {
	return s.taskQuery(ctx, s.client.Collection(tasksCollection).Where("subscribers", "array-contains", userID))
}

func (s *FirestoreStore) PutTask(ctx context.Context, task *model.Task) error {
	_, err := s.client.Collection(tasksCollection).Doc(task.TaskID).Set(ctx, task)
	return err
}

func (s *FirestoreStore) DeleteTask(ctx context.Context, id string) error {
	_, err := s.client.Collection(tasksCollection).Doc(id).Delete(ctx)
	return err
}
