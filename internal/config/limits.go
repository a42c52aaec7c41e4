package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxVideoTitleLength is the maximum length for video titles.
	// Same limit as folder names for consistency.
	MaxVideoTitleLength = 255

	// MaxCommentLength is the maximum length for video annotations.
	MaxCommentLength = 2000

	// CascadeWorkers bounds the fan-out of per-item revoke/delete work
	// inside the folder deletion cascade so a large folder cannot
	// overwhelm the remote store.
	CascadeWorkers = 6
)
