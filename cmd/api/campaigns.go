package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const maxBannerSize = 5 << 20 // 5 MB

// uploadCampaignBanner godoc
//
//	@Summary		Upload a newsletter campaign banner
//	@Description	Accepts a multipart image and returns the hosted URL for use in an issue.
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			banner	formData	file	true	"Banner image"
//	@Success		201		{object}	map[string]string
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/campaigns/banner [post]
func (app *application) uploadCampaignBannerHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBannerSize); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("banner")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("missing banner file: %w", err))
		return
	}
	defer file.Close()

	publicID := fmt.Sprintf("banner_%d", time.Now().UnixNano())

	resp, err := app.cld.Upload.Upload(
		context.Background(),
		file,
		uploader.UploadParams{
			Folder:    "newsletter/banners",
			PublicID:  publicID,
			Overwrite: api.Bool(false),
		},
	)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("cloudinary upload: %w", err))
		return
	}

	app.logger.Infow("campaign banner uploaded", "filename", header.Filename, "url", resp.SecureURL)

	if err := app.jsonResponse(w, http.StatusCreated, map[string]string{"url": resp.SecureURL}); err != nil {
		app.internalServerError(w, r, err)
	}
}
