// Package importer bulk-loads flashcards into a subject from markdown
// files, either under a local directory or from a git repository cloned
// into a local cache. Cards are deduplicated by a normalized content hash,
// so re-running an import never creates copies.
package importer

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Draft is a flashcard parsed from markdown, before it gets a subject and
// a row in the store.
type Draft struct {
	Question string
	Answer   string
}

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
)

type parseState int

const (
	seeking parseState = iota
	readingQuestion
	readingAnswer
)

// ParseFile reads a markdown file and extracts all card drafts.
func ParseFile(path string) ([]Draft, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse extracts card drafts from a reader. A card is a "Q:" block followed
// by an "A:" block; either block may span multiple lines. "---" or a new
// "Q:" line ends the current card. Drafts without both a question and an
// answer are dropped.
func Parse(r io.Reader) ([]Draft, error) {
	scanner := bufio.NewScanner(r)
	var drafts []Draft
	var current Draft
	var block []string
	state := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch state {
		case readingQuestion:
			current.Question = content
		case readingAnswer:
			current.Answer = content
		}
		block = nil
	}

	finishCard := func() {
		flushBlock()
		if current.Question != "" && current.Answer != "" {
			drafts = append(drafts, current)
		}
		current = Draft{}
		state = seeking
	}

	stripPrefix := func(line, prefix string) string {
		content := line[len(prefix):]
		return strings.TrimPrefix(content, " ")
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "---":
			finishCard()
		case strings.HasPrefix(line, questionPrefix):
			if state != seeking {
				finishCard()
			}
			state = readingQuestion
			block = append(block, stripPrefix(line, questionPrefix))
		case strings.HasPrefix(line, answerPrefix):
			flushBlock()
			state = readingAnswer
			block = append(block, stripPrefix(line, answerPrefix))
		case state != seeking:
			block = append(block, line)
		}
	}
	finishCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return drafts, nil
}
