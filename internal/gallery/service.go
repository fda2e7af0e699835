package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"web-travelsite/internal/apiclient"
	"web-travelsite/internal/content"
)

var ErrNotFound = errors.New("gallery not found")

// Service talks to /galleries directly; galleries are not mirrored by the
// site provider, so every read goes to the backend.
type Service struct {
	api apiclient.Doer
}

func NewService(api apiclient.Doer) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context) ([]content.Gallery, error) {
	var out []content.Gallery
	if err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/galleries"}, &out); err != nil {
		return nil, fmt.Errorf("list galleries: %w", err)
	}
	return out, nil
}

// Active keeps only galleries flagged for public display.
func (s *Service) Active(ctx context.Context) ([]content.Gallery, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]content.Gallery, 0, len(all))
	for _, g := range all {
		if g.Status {
			active = append(active, g)
		}
	}
	return active, nil
}

// Get resolves a gallery by slug or id from a fresh list.
func (s *Service) Get(ctx context.Context, slug string) (content.Gallery, error) {
	all, err := s.List(ctx)
	if err != nil {
		return content.Gallery{}, err
	}
	for _, g := range all {
		if g.Slug == slug || g.ID == slug {
			return g, nil
		}
	}
	return content.Gallery{}, fmt.Errorf("%s: %w", slug, ErrNotFound)
}

func (s *Service) Create(ctx context.Context, g content.Gallery, files []apiclient.Upload, token string) (content.Gallery, error) {
	req := apiclient.Request{Method: http.MethodPost, Path: "/galleries", Token: token}
	if len(files) == 0 {
		req.Body = g
	} else {
		fields, err := apiclient.FormFields(g)
		if err != nil {
			return content.Gallery{}, fmt.Errorf("create gallery: %w", err)
		}
		req.Fields, req.Files = fields, files
	}

	var created content.Gallery
	if err := s.api.Do(ctx, req, &created); err != nil {
		return content.Gallery{}, fmt.Errorf("create gallery: %w", err)
	}
	return created, nil
}

// Update always sends multipart so that existingImages, the JSON list of
// retained public ids, reaches the backend alongside any new files.
func (s *Service) Update(ctx context.Context, id string, g content.Gallery, keep []string, files []apiclient.Upload, token string) (content.Gallery, error) {
	fields, err := apiclient.FormFields(g)
	if err != nil {
		return content.Gallery{}, fmt.Errorf("update gallery %s: %w", id, err)
	}
	if keep == nil {
		keep = []string{}
	}
	existing, err := json.Marshal(keep)
	if err != nil {
		return content.Gallery{}, fmt.Errorf("update gallery %s: %w", id, err)
	}
	fields["existingImages"] = string(existing)

	req := apiclient.Request{
		Method:    http.MethodPut,
		Path:      "/galleries/" + url.PathEscape(id),
		Token:     token,
		Fields:    fields,
		Files:     files,
		Multipart: true,
	}

	var updated content.Gallery
	if err := s.api.Do(ctx, req, &updated); err != nil {
		return content.Gallery{}, fmt.Errorf("update gallery %s: %w", id, err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, token string) error {
	req := apiclient.Request{Method: http.MethodDelete, Path: "/galleries/" + url.PathEscape(id), Token: token}
	if err := s.api.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("delete gallery %s: %w", id, err)
	}
	return nil
}

// ToggleStatus flips g.Status and writes the full record back, keeping all
// of its current images.
func (s *Service) ToggleStatus(ctx context.Context, g content.Gallery, token string) (content.Gallery, error) {
	g.Status = !g.Status
	return s.Update(ctx, g.ID, g, PublicIDs(g.Images), nil, token)
}

func PublicIDs(images []content.Image) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		if img.PublicID != "" {
			ids = append(ids, img.PublicID)
		}
	}
	return ids
}
