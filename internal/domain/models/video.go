package models

import (
	"time"
)

// Video is the metadata record for one clip in a folder. The binary
// payload lives in object storage under StorageKey; this record only
// carries the pointer plus display metadata.
type Video struct {
	ID           string    `json:"id" db:"id"`
	FolderID     string    `json:"folder_id" db:"folder_id"`
	Title        string    `json:"title" db:"title"`
	StorageKey   string    `json:"storage_key" db:"storage_key"`
	ThumbnailKey string    `json:"thumbnail_key,omitempty" db:"thumbnail_key"`
	DurationSec  int       `json:"duration_sec" db:"duration_sec"`
	UploadedBy   string    `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Comment is a coach or athlete annotation on a video.
type Comment struct {
	ID         string    `json:"id" db:"id"`
	VideoID    string    `json:"video_id" db:"video_id"`
	AuthorID   string    `json:"author_id" db:"author_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Text       string    `json:"text" db:"text_body"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
