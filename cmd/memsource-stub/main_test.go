package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHandler_ServesTargetFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "p1"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "p1", "j1"), []byte("<xliff/>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	srv := httptest.NewServer(newHandler(dir, "tok"))
	defer srv.Close()

	get := func(path, auth string) *http.Response {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+path, nil)
		if auth != "" {
			req.Header.Set("Authorization", "ApiToken "+auth)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		return resp
	}

	resp := get("/projects/p1/jobs/j1/targetFile", "tok")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "<xliff/>" {
		t.Fatalf("status=%d body=%q", resp.StatusCode, body)
	}

	for path, want := range map[string]int{
		"/projects/p1/jobs/missing/targetFile": http.StatusNotFound,
		"/projects/p1/jobs/j1":                 http.StatusNotFound,
	} {
		resp := get(path, "tok")
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Fatalf("%s: status=%d, want %d", path, resp.StatusCode, want)
		}
	}

	resp = get("/users", "wrong")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", resp.StatusCode)
	}
}
