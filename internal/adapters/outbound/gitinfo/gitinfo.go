package gitinfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNoCommits is returned for a repository whose HEAD is unborn.
var ErrNoCommits = errors.New("repository has no commits")

// Resolver implements domain.GitInfo with go-git. It walks up from the
// dataset to the enclosing work tree, so records may live anywhere below
// the repository root.
type Resolver struct{}

func New() *Resolver {
	return &Resolver{}
}

// CommitHash returns the full HEAD hash of the repository holding path.
func (r *Resolver) CommitHash(path string) (string, error) {
	start := path
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		start = filepath.Dir(path)
	}

	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening repository for %s: %w", path, err)
	}

	ref, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", ErrNoCommits
	}
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}
