package posts

import "time"

// Post es inmutable después de creado (no hay edit ni delete).
type Post struct {
	ID             string
	AuthorUsername string
	Title          string
	ImageRef       string
	Tag            string
	Body           string
	CreatedAt      time.Time // se persiste como epoch seconds
}
