package decksource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
)

// SyncResult reports what GitSync did.
type SyncResult int

const (
	SyncCloned SyncResult = iota
	SyncUpdated
	SyncUpToDate
)

func (r SyncResult) String() string {
	switch r {
	case SyncCloned:
		return "cloned"
	case SyncUpdated:
		return "updated"
	default:
		return "up to date"
	}
}

// GitSync clones the deck repository at url into localPath, or pulls the
// latest changes if it has been cloned before.
func GitSync(ctx context.Context, url, localPath string, logger *slog.Logger) (SyncResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	_, err := os.Stat(localPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Info("cloning deck repository", "url", url, "path", localPath)
		if _, err := git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{URL: url}); err != nil {
			return 0, fmt.Errorf("clone %s: %w", url, err)
		}
		return SyncCloned, nil

	case err != nil:
		return 0, fmt.Errorf("check %s: %w", localPath, err)
	}

	repo, err := git.PlainOpen(localPath)
	if err != nil {
		return 0, fmt.Errorf("open deck repository at %s: %w", localPath, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return 0, fmt.Errorf("worktree for %s: %w", localPath, err)
	}

	logger.Info("pulling deck repository", "path", localPath)
	err = worktree.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return SyncUpToDate, nil
	}
	if err != nil {
		return 0, fmt.Errorf("pull %s: %w", localPath, err)
	}
	return SyncUpdated, nil
}
