package queries

import apperrors "archibridge/pkg/errors"

// ListImagesQuery lists the images of a model
type ListImagesQuery struct {
	ModelID string
}

// Validate validates the ListImagesQuery
func (q ListImagesQuery) Validate() error {
	if q.ModelID == "" {
		return apperrors.NewValidationError("model ID is required")
	}
	return nil
}

// ListImagesResult holds the image keys of a model
type ListImagesResult struct {
	// Referenced are the keys shown by view figures
	Referenced []string `json:"referenced"`
	// Stored are the keys held in the model, referenced or not
	Stored []string `json:"stored"`
}

// GetImageQuery returns the bytes of one stored image
type GetImageQuery struct {
	ModelID string
	Key     string
}

// Validate validates the GetImageQuery
func (q GetImageQuery) Validate() error {
	if q.ModelID == "" {
		return apperrors.NewValidationError("model ID is required")
	}
	if q.Key == "" {
		return apperrors.NewValidationError("image key is required")
	}
	return nil
}

// GetImageResult is a stored image
type GetImageResult struct {
	Key         string
	Format      string
	ContentType string
	Data        []byte
	// ContentAddressed is set when the key is a hash of Data
	ContentAddressed bool
}
