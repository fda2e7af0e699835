package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"web-travelsite/internal/apiclient"
	"web-travelsite/internal/content"
)

func newTestService(t *testing.T, h http.HandlerFunc) *Service {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewService(apiclient.New(srv.URL, time.Second))
}

func TestListActiveAndGet(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"g1","slug":"ladakh","name":"Ladakh","status":true},{"_id":"g2","name":"Hidden","status":false}]`))
	})

	all, err := svc.List(context.Background())
	if err != nil || len(all) != 2 {
		t.Fatalf("list: %v", err)
	}
	active, err := svc.Active(context.Background())
	if err != nil || len(active) != 1 || active[0].ID != "g1" {
		t.Fatalf("active: %v %+v", err, active)
	}
	g, err := svc.Get(context.Background(), "ladakh")
	if err != nil || g.ID != "g1" {
		t.Fatalf("get by slug: %v", err)
	}
	if _, err := svc.Get(context.Background(), "g2"); err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found")
	}
}

func TestCreateMultipart(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse: %v", err)
		}
		if r.FormValue("passengerName") != "Ravi" {
			t.Errorf("expected passengerName field")
		}
		if len(r.MultipartForm.File["images"]) != 1 {
			t.Errorf("expected one image")
		}
		_, _ = w.Write([]byte(`{"_id":"g1","name":"Trip","passengerName":"Ravi","status":true}`))
	})

	g, err := svc.Create(context.Background(), content.Gallery{Name: "Trip", PassengerName: "Ravi", Status: true},
		[]apiclient.Upload{{FileName: "a.jpg", Data: []byte("a")}}, "tok")
	if err != nil || g.ID != "g1" {
		t.Fatalf("create: %v", err)
	}
}

func TestUpdateSendsExistingImages(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/galleries/g1" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("expected multipart even without files")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse: %v", err)
		}
		var keep []string
		if err := json.Unmarshal([]byte(r.FormValue("existingImages")), &keep); err != nil {
			t.Errorf("existingImages not json: %v", err)
		}
		if len(keep) != 1 || keep[0] != "pub-1" {
			t.Errorf("unexpected existingImages %v", keep)
		}
		if r.FormValue("status") != "false" {
			t.Errorf("expected toggled status, got %q", r.FormValue("status"))
		}
		_, _ = w.Write([]byte(`{"_id":"g1","name":"Trip","status":false}`))
	})

	g := content.Gallery{ID: "g1", Name: "Trip", Status: true, Images: []content.Image{{URL: "u", PublicID: "pub-1"}, {URL: "legacy"}}}
	updated, err := svc.ToggleStatus(context.Background(), g, "tok")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if updated.Status {
		t.Fatalf("expected inactive gallery")
	}
}

func TestUpdateEmptyKeepList(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(1 << 20)
		if r.FormValue("existingImages") != "[]" {
			t.Errorf("expected empty json array, got %q", r.FormValue("existingImages"))
		}
		_, _ = w.Write([]byte(`{"_id":"g1"}`))
	})
	if _, err := svc.Update(context.Background(), "g1", content.Gallery{ID: "g1"}, nil, nil, "tok"); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestDeleteError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	err := svc.Delete(context.Background(), "g1", "tok")
	if apiclient.StatusCode(err) != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
