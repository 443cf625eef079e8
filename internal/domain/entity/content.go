package entity

import "time"

// ContentKind distinguishes articles from videos.
type ContentKind string

const (
	ContentArticle ContentKind = "article"
	ContentVideo   ContentKind = "video"
)

// IsValid checks if the ContentKind is a valid value.
func (k ContentKind) IsValid() bool {
	return k == ContentArticle || k == ContentVideo
}

// ContentItem is a piece of educational material published by a doctor.
type ContentItem struct {
	ID             uint
	AuthorDoctorID uint
	Title          string
	Kind           ContentKind
	Body           string
	MediaKey       string // Object storage key; empty when no media was uploaded.
	CreatedAt      time.Time
}
