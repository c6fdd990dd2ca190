package company

import "github.com/google/uuid"

// Company is an employer that posts jobs. Name is globally unique.
type Company struct {
	ID              uuid.UUID
	Name            string
	Description     *string
	Website         *string
	YoutubeVideo    *string
	TwitterHandle   *string
	InstagramHandle *string
	LogoURL         *string
}
