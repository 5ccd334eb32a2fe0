package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// memsource-stub serves job target files from a directory laid out as
// DIR/<project>/<job>, enough for local runs and CI without the real API.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	dir := os.Getenv("DIR")
	if strings.TrimSpace(dir) == "" {
		dir = "testdata"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8082"
	}
	token := os.Getenv("TOKEN")

	log.Info().Str("addr", addr).Str("dir", dir).Bool("auth", token != "").Msg("memsource-stub listening")
	if err := http.ListenAndServe(addr, newHandler(dir, token)); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}

func newHandler(dir, token string) http.Handler {
	authorized := func(r *http.Request) bool {
		return token == "" || r.Header.Get("Authorization") == "ApiToken "+token
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"totalElements": 1,
			"content":       []map[string]any{{"userName": "stub"}},
		})
	})
	mux.HandleFunc("/projects/", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		// /projects/{project}/jobs/{job}/targetFile
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 5 || parts[2] != "jobs" || parts[4] != "targetFile" {
			http.NotFound(w, r)
			return
		}
		project, job := parts[1], parts[3]
		if !safeName(project) || !safeName(job) {
			http.NotFound(w, r)
			return
		}
		b, err := os.ReadFile(filepath.Join(dir, project, job))
		if err != nil {
			log.Debug().Err(err).Str("project", project).Str("job", job).Msg("job not found")
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(b)
	})
	return mux
}

func safeName(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}
