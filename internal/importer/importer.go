package importer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/studydash/internal/domain"
	"github.com/conorfennell/studydash/internal/storage"
)

// Result summarizes one import run.
type Result struct {
	Parsed   int
	Inserted int
	Skipped  int
	Errors   []error
}

// ImportDir walks dir for .md files, parses their cards and inserts the
// ones the subject does not already hold. Existing cards are matched by
// normalized content hash, so re-importing the same tree is a no-op.
func ImportDir(db *storage.DB, subjectID int64, dir string) (Result, error) {
	existing, err := db.GetFlashcards(subjectID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load existing flashcards: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, card := range existing {
		seen[Hash(card.Question, card.Answer)] = true
	}

	var res Result
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		drafts, parseErr := ParseFile(path)
		if parseErr != nil {
			res.Errors = append(res.Errors, fmt.Errorf("parsing %s: %w", path, parseErr))
			return nil
		}
		for _, draft := range drafts {
			res.Parsed++
			h := Hash(draft.Question, draft.Answer)
			if seen[h] {
				res.Skipped++
				continue
			}
			if _, err := db.CreateFlashcard(domain.FlashcardInput{
				SubjectID: subjectID,
				Question:  draft.Question,
				Answer:    draft.Answer,
			}); err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("inserting card from %s: %w", path, err))
				continue
			}
			seen[h] = true
			res.Inserted++
		}
		return nil
	})
	if walkErr != nil {
		return res, fmt.Errorf("failed to walk %s: %w", dir, walkErr)
	}

	slog.Info("import complete",
		"dir", dir,
		"parsed", res.Parsed,
		"inserted", res.Inserted,
		"skipped", res.Skipped,
		"errors", len(res.Errors),
	)
	return res, nil
}

// ImportGit clones or updates the repository at repoURL under reposDir and
// imports its markdown cards into the subject.
func ImportGit(db *storage.DB, subjectID int64, repoURL, reposDir string) (Result, error) {
	localPath, err := RepoLocalPath(reposDir, repoURL)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create repos directory: %w", err)
	}
	if err := SyncRepo(repoURL, localPath); err != nil {
		return Result{}, err
	}
	return ImportDir(db, subjectID, localPath)
}
