package model

import "time"

type Task struct {
	TaskID        string    `firestore:"taskid" json:"id"`
	ProjectID     string    `firestore:"projectid" json:"projectId"`
	ColumnID      string    `firestore:"columnid" json:"columnId"`
	Title         string    `firestore:"title" json:"title"`
	AssigneeID    string    `firestore:"assignee" json:"assigneeId"`
	SubscriberIDs []string  `firestore:"subscribers" json:"subscriberIds"`
	Priority      int       `firestore:"priority" json:"priority"`
	Order         int       `firestore:"order" json:"order"`
	Description   string    `firestore:"description" json:"description"`
	CreatedAt     time.Time `firestore:"createdat" json:"createdAt"`
}

func (t *Task) HasSubscriber(userID string) bool {
	for _, id := range t.SubscriberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (t *Task) AddSubscriber(userID string) {
	if t.HasSubscriber(userID) {
		return
	}
	t.SubscriberIDs = append(t.SubscriberIDs, userID)
}

// RemoveSubscriber is a no-op when userID is not subscribed.
func (t *Task) RemoveSubscriber(userID string) {
	for i, id := range t.SubscriberIDs {
		if id == userID {
			t.SubscriberIDs = append(t.SubscriberIDs[:i], t.SubscriberIDs[i+1:]...)
			return
		}
	}
}
