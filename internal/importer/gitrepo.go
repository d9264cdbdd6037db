package importer

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// SyncRepo clones the repository at url into localPath, or pulls the latest
// changes if a clone already exists there.
func SyncRepo(url, localPath string) error {
	_, err := os.Stat(localPath)
	switch {
	case os.IsNotExist(err):
		slog.Info("cloning card repository", "url", url, "path", localPath)
		if _, err := git.PlainClone(localPath, false, &git.CloneOptions{URL: url}); err != nil {
			return fmt.Errorf("failed to clone repo %s: %w", url, err)
		}
	case err == nil:
		slog.Info("pulling card repository", "path", localPath)
		repo, err := git.PlainOpen(localPath)
		if err != nil {
			return fmt.Errorf("failed to open existing repo at %s: %w", localPath, err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("failed to get worktree for repo at %s: %w", localPath, err)
		}
		if err := worktree.Pull(&git.PullOptions{RemoteName: "origin"}); err != nil && err != git.NoErrAlreadyUpToDate {
			return fmt.Errorf("failed to pull changes for repo at %s: %w", localPath, err)
		}
	default:
		return fmt.Errorf("error checking path %s: %w", localPath, err)
	}
	return nil
}

// RepoLocalPath maps a git URL onto a stable directory under baseDir, so
// repeated imports of the same repository reuse one clone. Handles https
// URLs and scp-style git@host:path remotes.
func RepoLocalPath(baseDir, repoURL string) (string, error) {
	parsed, err := url.Parse(repoURL)
	if err == nil && (parsed.Scheme == "https" || parsed.Scheme == "http") {
		return filepath.Join(baseDir, parsed.Host, strings.TrimSuffix(parsed.Path, ".git")), nil
	}

	if strings.Contains(repoURL, "@") {
		parts := strings.Split(repoURL, ":")
		if len(parts) == 2 {
			hostAndUser := strings.Split(parts[0], "@")
			if len(hostAndUser) == 2 {
				return filepath.Join(baseDir, hostAndUser[1], strings.TrimSuffix(parts[1], ".git")), nil
			}
		}
	}
	return "", fmt.Errorf("could not parse git URL: %s", repoURL)
}
