package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"web-travelsite/internal/apiclient"
	"web-travelsite/internal/content"
	"web-travelsite/internal/store"
)

var (
	ErrNotFound = errors.New("not found")
	ErrNoStatus = errors.New("entity has no status field")
)

// Resource is the fetch/create/update/delete gateway for one entity type.
// Local state changes only after the backend confirms a call; a failed call
// leaves the collection exactly as it was.
type Resource[T content.Entity] struct {
	name     string
	path     string
	listPath string
	api      apiclient.Doer
	items    *store.Collection[T]
	toggle   func(T) T
	slugOf   func(T) string
}

func (r *Resource[T]) Name() string { return r.name }

// Fetch replaces the whole collection with the backend's current list.
func (r *Resource[T]) Fetch(ctx context.Context) ([]T, error) {
	var items []T
	err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: r.listPath}, &items)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r.name, err)
	}
	r.items.Replace(items)
	return items, nil
}

func (r *Resource[T]) Create(ctx context.Context, item T, files []apiclient.Upload, token string) (T, error) {
	var created T
	req, err := writeRequest(http.MethodPost, r.path, item, files, token)
	if err != nil {
		return created, fmt.Errorf("create %s: %w", r.name, err)
	}
	if err := r.api.Do(ctx, req, &created); err != nil {
		return created, fmt.Errorf("create %s: %w", r.name, err)
	}
	r.items.Append(created)
	return created, nil
}

// Update sends item as the new state of id. The local entry becomes exactly
// the server's response; with concurrent updates the last response wins.
func (r *Resource[T]) Update(ctx context.Context, id string, item T, files []apiclient.Upload, token string) (T, error) {
	var updated T
	req, err := writeRequest(http.MethodPut, r.itemPath(id), item, files, token)
	if err != nil {
		return updated, fmt.Errorf("update %s %s: %w", r.name, id, err)
	}
	if err := r.api.Do(ctx, req, &updated); err != nil {
		return updated, fmt.Errorf("update %s %s: %w", r.name, id, err)
	}
	r.items.Put(updated)
	return updated, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id, token string) error {
	req := apiclient.Request{Method: http.MethodDelete, Path: r.itemPath(id), Token: token}
	if err := r.api.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", r.name, id, err)
	}
	r.items.Remove(id)
	return nil
}

// ToggleStatus flips the status of the locally held copy of id and sends the
// whole record back. It is a read-then-write: a mutation racing between the
// two steps is overwritten (last write wins at the backend).
func (r *Resource[T]) ToggleStatus(ctx context.Context, id, token string) (T, error) {
	var zero T
	if r.toggle == nil {
		return zero, fmt.Errorf("toggle %s: %w", r.name, ErrNoStatus)
	}
	current, ok := r.items.Get(id)
	if !ok {
		return zero, fmt.Errorf("toggle %s %s: %w", r.name, id, ErrNotFound)
	}
	return r.Update(ctx, id, r.toggle(current), nil, token)
}

func (r *Resource[T]) Snapshot() []T { return r.items.List() }

func (r *Resource[T]) Len() int { return r.items.Len() }

func (r *Resource[T]) Get(id string) (T, bool) { return r.items.Get(id) }

// BySlug finds an entry by slug, falling back to its id.
func (r *Resource[T]) BySlug(slug string) (T, bool) {
	return r.items.FindBy(func(it T) bool {
		if r.slugOf != nil && r.slugOf(it) == slug {
			return true
		}
		return it.EntityID() == slug
	})
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func writeRequest(method, path string, item any, files []apiclient.Upload, token string) (apiclient.Request, error) {
	req := apiclient.Request{Method: method, Path: path, Token: token}
	if len(files) == 0 {
		req.Body = item
		return req, nil
	}
	fields, err := apiclient.FormFields(item)
	if err != nil {
		return req, err
	}
	req.Fields = fields
	req.Files = files
	return req, nil
}
