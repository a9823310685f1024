package model

import "time"

// Project holds one owner, a member set disjoint from the owner, and the
// list of outstanding invitation tokens. Tokens and the member list are
// persisted but tokens never leave the server.
type Project struct {
	ProjectID   string    `firestore:"projectid" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	OwnerID     string    `firestore:"owner" json:"ownerId"`
	MemberIDs   []string  `firestore:"members" json:"memberIds"`
	Tokens      []string  `firestore:"tokens" json:"-"`
	Description string    `firestore:"description" json:"description"`
	CreatedAt   time.Time `firestore:"createdat" json:"createdAt"`
}

type ProjectSummary struct {
	ProjectID string `json:"id"`
	Title     string `json:"title"`
}

func (p *Project) Summary() ProjectSummary {
	return ProjectSummary{ProjectID: p.ProjectID, Title: p.Title}
}

// HasMember reports whether userID is in the member set. The owner is never
// a member.
func (p *Project) HasMember(userID string) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AddMember appends userID to the member set unless it is already present
// or equals the owner.
func (p *Project) AddMember(userID string) {
	if userID == p.OwnerID || p.HasMember(userID) {
		return
	}
	p.MemberIDs = append(p.MemberIDs, userID)
}

// RemoveMember drops userID from the member set and reports whether it was
// present.
func (p *Project) RemoveMember(userID string) bool {
	for i, id := range p.MemberIDs {
		if id == userID {
			p.MemberIDs = append(p.MemberIDs[:i], p.MemberIDs[i+1:]...)
			return true
		}
	}
	return false
}

// HasToken reports whether the invitation token is still outstanding.
func (p *Project) HasToken(token string) bool {
	for _, t := range p.Tokens {
		if t == token {
			return true
		}
	}
	return false
}
