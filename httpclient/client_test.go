package httpclient

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "42", "name": "jane"})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)

	var user struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := client.Get(context.Background(), "/users/42", &user); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if user.ID != "42" || user.Name != "jane" {
		t.Errorf("user = %+v", user)
	}
}

func TestPostSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if body["email"] != "a@b.co" {
			t.Errorf("body = %v", body)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": "new"})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)

	var created map[string]any
	err := client.Post(context.Background(), "/users", map[string]any{"email": "a@b.co"}, &created)
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if created["id"] != "new" {
		t.Errorf("created = %v", created)
	}
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"NOT_FOUND","error":"missing"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)

	err := client.Get(context.Background(), "/absent", nil)
	if err == nil {
		t.Fatal("Get succeeded on a 404")
	}

	var statusErr *StatusError
	if !stderrors.As(err, &statusErr) {
		t.Fatalf("error is not a StatusError: %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", statusErr.StatusCode)
	}
	if len(statusErr.Body) == 0 {
		t.Error("Body not captured")
	}
}

func TestWithHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	client := New(srv.URL, nil, WithHeader("Authorization", "Bearer token"))
	if err := client.Get(context.Background(), "/", nil); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
}

func TestDelete(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	if err := client.Delete(context.Background(), "/users/42"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !called {
		t.Error("server not called")
	}
}
