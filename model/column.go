package model

import "time"

type Column struct {
	ColumnID  string    `firestore:"columnid" json:"id"`
	ProjectID string    `firestore:"projectid" json:"projectId"`
	Title     string    `firestore:"title" json:"title"`
	Order     int       `firestore:"order" json:"order"`
	CreatedAt time.Time `firestore:"createdat" json:"createdAt"`
}
