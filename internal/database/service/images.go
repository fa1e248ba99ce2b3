package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
	"github.com/ltplabs/ecatalog/pkg/idx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// ImageService manages the docker images demos are deployed from.
type ImageService struct {
	Store store.Store
}

func (s *ImageService) List(ctx context.Context) ([]domain.Image, error) {
	return s.Store.Images().ListImages(ctx)
}

func (s *ImageService) ListByName(ctx context.Context, name string) ([]domain.Image, error) {
	return s.Store.Images().ListImagesByName(ctx, name)
}

func (s *ImageService) Get(ctx context.Context, id string) (domain.Image, error) {
	img, err := s.Store.Images().GetImageByID(ctx, id)
	return img, mapStoreErr(err, ErrImageNotFound)
}

func (s *ImageService) Create(ctx context.Context, img domain.Image) (domain.Image, error) {
	img.Name = strings.TrimSpace(img.Name)
	img.Version = strings.TrimSpace(img.Version)
	img.URL = strings.TrimSpace(img.URL)
	switch {
	case img.Name == "":
		return domain.Image{}, invalid("nome_imagem is required")
	case img.Version == "":
		return domain.Image{}, invalid("versao_imagem is required")
	case img.URL == "":
		return domain.Image{}, invalid("url is required")
	}

	img.ID = idx.New().String()
	if err := s.Store.Images().CreateImage(ctx, img); err != nil {
		return domain.Image{}, mapStoreErr(err, ErrImageNotFound)
	}

	slogx.FromContext(ctx).Info("docker image registered",
		slog.String("image_id", img.ID),
		slog.String("nome_imagem", img.Name),
		slog.String("versao_imagem", img.Version),
	)
	return s.Get(ctx, img.ID)
}

func (s *ImageService) Update(ctx context.Context, id string, patch domain.ImagePatch) (domain.Image, error) {
	for field, v := range map[string]*string{
		"nome_imagem":   patch.Name,
		"versao_imagem": patch.Version,
		"url":           patch.URL,
	} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return domain.Image{}, invalid("%s must not be empty", field)
		}
	}

	if err := s.Store.Images().UpdateImage(ctx, id, patch); err != nil {
		return domain.Image{}, mapStoreErr(err, ErrImageNotFound)
	}
	return s.Get(ctx, id)
}

func (s *ImageService) Delete(ctx context.Context, id string) error {
	return mapStoreErr(s.Store.Images().DeleteImage(ctx, id), ErrImageNotFound)
}
