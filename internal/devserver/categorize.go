package devserver

import (
	"strings"

	"github.com/nibzard/taskboard/internal/task"
)

// Categorizer assigns a category to a new task from its text.
type Categorizer interface {
	Categorize(title, description string) task.Category
}

// Strategy names accepted by NewCategorizer.
const (
	StrategyKeyword = "keyword"
	StrategyPattern = "pattern"
)

// NewCategorizer returns the named strategy. Unknown names select the
// keyword strategy.
func NewCategorizer(name string) Categorizer {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyPattern:
		return PatternStrategy{}
	default:
		return KeywordStrategy{}
	}
}

var (
	urgentKeywords = wordSet("asap", "urgent", "emergency", "critical", "now", "immediately", "today", "deadline", "important")
	workKeywords   = wordSet("meeting", "email", "report", "deadline", "project", "presentation", "call", "conference", "client", "review", "document", "proposal")
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// KeywordStrategy matches whole words. Urgent keywords win over work
// keywords; anything else is personal.
type KeywordStrategy struct{}

// Categorize implements Categorizer.
func (KeywordStrategy) Categorize(title, description string) task.Category {
	words := strings.Fields(strings.ToLower(title + " " + description))
	work := false
	for _, w := range words {
		if _, ok := urgentKeywords[w]; ok {
			return task.CategoryUrgent
		}
		if _, ok := workKeywords[w]; ok {
			work = true
		}
	}
	if work {
		return task.CategoryWork
	}
	return task.CategoryPersonal
}

// PatternStrategy looks at punctuation and time-sensitive substrings
// before falling back to keywords.
type PatternStrategy struct{}

// Categorize implements Categorizer.
func (PatternStrategy) Categorize(title, description string) task.Category {
	text := strings.ToLower(title + " " + description)
	if strings.Contains(text, "!!") {
		return task.CategoryUrgent
	}
	for _, marker := range []string{"deadline", "due", "by"} {
		if strings.Contains(text, marker) {
			return task.CategoryWork
		}
	}
	return KeywordStrategy{}.Categorize(title, description)
}
