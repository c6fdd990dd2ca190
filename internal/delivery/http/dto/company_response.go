package dto

import (
	"jobboard/internal/domain/company"

	"github.com/google/uuid"
)

type CompanyResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	Website         *string   `json:"website"`
	YoutubeVideo    *string   `json:"youtube_video"`
	TwitterHandle   *string   `json:"twitter_handle"`
	InstagramHandle *string   `json:"instagram_handle"`
	LogoURL         *string   `json:"logo_url"`
}

func NewCompanyResponse(c company.Company) CompanyResponse {
	return CompanyResponse{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		Website:         c.Website,
		YoutubeVideo:    c.YoutubeVideo,
		TwitterHandle:   c.TwitterHandle,
		InstagramHandle: c.InstagramHandle,
		LogoURL:         c.LogoURL,
	}
}
