package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"archibridge/application/archive"
	"archibridge/application/queries"
	"archibridge/application/workspace"
	apperrors "archibridge/pkg/errors"
)

// ImageQueryHandler answers image store queries
type ImageQueryHandler struct {
	repo   workspace.Repository
	logger *zap.Logger
}

// NewImageQueryHandler creates a new image query handler
func NewImageQueryHandler(repo workspace.Repository, logger *zap.Logger) *ImageQueryHandler {
	return &ImageQueryHandler{repo: repo, logger: logger}
}

// HandleListImages executes the list images query
func (h *ImageQueryHandler) HandleListImages(ctx context.Context, query queries.ListImagesQuery) (*queries.ListImagesResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	doc, err := h.repo.Get(ctx, query.ModelID)
	if err != nil {
		return nil, err
	}

	result := &queries.ListImagesResult{}
	_ = doc.Do(func(d *workspace.Document) error {
		result.Referenced = nonNil(d.Images.ImagePaths())
		result.Stored = nonNil(d.Images.LoadedImagePaths())
		return nil
	})
	return result, nil
}

// HandleGetImage executes the get image query
func (h *ImageQueryHandler) HandleGetImage(ctx context.Context, query queries.GetImageQuery) (*queries.GetImageResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	doc, err := h.repo.Get(ctx, query.ModelID)
	if err != nil {
		return nil, err
	}

	var (
		data        []byte
		contentKey  bool
		underPrefix bool
	)
	_ = doc.Do(func(d *workspace.Document) error {
		// other model features are not images and are never served
		if underPrefix = d.Images.IsImageKey(query.Key); underPrefix {
			data = d.Images.BytesFromEntry(query.Key)
			contentKey = d.Images.IsContentKey(query.Key)
		}
		return nil
	})
	if !underPrefix || data == nil {
		return nil, apperrors.NewDomainError(apperrors.DomainNotFoundError, "IMAGE_NOT_FOUND",
			"image not found: "+query.Key).WithDetail("key", query.Key)
	}

	format, err := archive.ImageFormat(data)
	if err != nil {
		h.logger.Warn("Stored image does not decode",
			zap.String("model_id", query.ModelID),
			zap.String("key", query.Key),
			zap.Error(err),
		)
		return nil, apperrors.NewUnsupportedImageError(query.Key).WithCause(err)
	}

	return &queries.GetImageResult{
		Key:         query.Key,
		Format:      format,
		ContentType: "image/" + format,
		Data:        data,

		ContentAddressed: contentKey,
	}, nil
}

func nonNil(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}
