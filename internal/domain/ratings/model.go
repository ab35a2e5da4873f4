package ratings

import "time"

// Kind distingue el tipo de target de un like. Posts y comments tienen
// espacios de ratings independientes aunque coincida el id.
type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

func (k Kind) Valid() bool {
	return k == KindPost || k == KindComment
}

// Rating es el like de un usuario sobre un post o comment.
// Su sola existencia indica el like; no hay dislike.
type Rating struct {
	ID        string
	Username  string
	TargetID  string
	Kind      Kind
	CreatedAt time.Time
}
