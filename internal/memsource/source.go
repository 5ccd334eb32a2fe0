package memsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Role identifies which version of a document is requested.
type Role string

const (
	RoleMT Role = "MT"
	RolePE Role = "PE"
)

// Source returns the raw bytes of the document playing the given role.
// Implementations return ErrNotFound when the document does not exist.
type Source interface {
	Fetch(ctx context.Context, role Role) ([]byte, error)
}

// JobSource downloads each role's target file from a Memsource project.
type JobSource struct {
	Client  *Client
	Project string
	Jobs    map[Role]string
}

func (s JobSource) Fetch(ctx context.Context, role Role) ([]byte, error) {
	if s.Client == nil {
		return nil, errors.New("memsource: client not configured")
	}
	job := strings.TrimSpace(s.Jobs[role])
	if job == "" {
		return nil, ErrNotFound
	}
	b, err := s.Client.DownloadTarget(ctx, s.Project, job)
	if err != nil {
		return nil, fmt.Errorf("download %s job %s: %w", role, job, err)
	}
	return b, nil
}

// FileSource reads each role's document from the local filesystem.
type FileSource struct {
	Paths map[Role]string
}

func (s FileSource) Fetch(_ context.Context, role Role) ([]byte, error) {
	p := strings.TrimSpace(s.Paths[role])
	if p == "" {
		return nil, ErrNotFound
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s document %s: %w", role, p, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s document: %w", role, err)
	}
	return b, nil
}
