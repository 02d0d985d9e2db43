package models

import "fmt"

// TargetKind names an entity type that reactions and bookmarks can point at.
type TargetKind string

const (
	KindMovie   TargetKind = "movie"
	KindPerson  TargetKind = "person"
	KindComment TargetKind = "comment"
)

// Valid reports whether k is a known kind.
func (k TargetKind) Valid() bool {
	switch k {
	case KindMovie, KindPerson, KindComment:
		return true
	}
	return false
}

// Bookmarkable reports whether users may bookmark entities of this kind.
func (k TargetKind) Bookmarkable() bool {
	return k == KindMovie || k == KindPerson
}

// Target identifies one reactable row: (kind, id).
type Target struct {
	Kind TargetKind
	ID   int64
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// Reactable is implemented by every entity users can like, dislike or bookmark.
type Reactable interface {
	ReactionTarget() Target
}
