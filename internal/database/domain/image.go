package domain

import "time"

// Image is a versioned container image a demo can be deployed from.
type Image struct {
	ID          string
	Name        string
	Version     string
	URL         string
	Description *string
	UpdatedAt   time.Time
}

// ImagePatch carries the fields of a partial image update.
type ImagePatch struct {
	Name        *string
	Version     *string
	URL         *string
	Description *string
}

func (p ImagePatch) IsEmpty() bool {
	return p == ImagePatch{}
}
