package comments

import "time"

// Comment pertenece a un Post. La FK se valida solo al crear.
type Comment struct {
	ID             string
	AuthorUsername string
	PostID         string
	Body           string
	CreatedAt      time.Time
}
