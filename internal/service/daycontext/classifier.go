package daycontext

import (
	"strings"
	"unicode"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

// Classifier infers the context type of free text.
type Classifier interface {
	Classify(text string) domain.ContextType
}

var _ Classifier = (*KeywordClassifier)(nil)

type keywordRule struct {
	context  domain.ContextType
	keywords []string
}

// defaultRules are checked in order; the first rule with a matching keyword wins.
var defaultRules = []keywordRule{
	{
		context:  domain.ContextCommunication,
		keywords: []string{"email", "e-mail", "slack", "message", "reply", "respond", "write to", "inbox"},
	},
	{
		context:  domain.ContextDeepWork,
		keywords: []string{"code", "coding", "develop", "program", "debug", "implement", "fix bug", "refactor"},
	},
	{
		context:  domain.ContextAdmin,
		keywords: []string{"admin", "invoice", "paperwork", "document", "form", "fill in", "expense"},
	},
	{
		context:  domain.ContextCreative,
		keywords: []string{"design", "creative", "brainstorm", "ideation", "concept", "sketch"},
	},
	{
		context:  domain.ContextOperations,
		keywords: []string{"meeting", "call", "presentation", "interview", "sync"},
	},
}

// KeywordClassifier matches keywords against the start of words, so "develop"
// matches "developer" but "form" does not match "performance".
type KeywordClassifier struct {
	rules []keywordRule
}

func NewKeywordClassifier() *KeywordClassifier {
	rules := make([]keywordRule, 0, len(defaultRules))
	for _, r := range defaultRules {
		keywords := make([]string, 0, len(r.keywords))
		for _, kw := range r.keywords {
			keywords = append(keywords, normalize(kw))
		}
		rules = append(rules, keywordRule{context: r.context, keywords: keywords})
	}
	return &KeywordClassifier{rules: rules}
}

func (c *KeywordClassifier) Classify(text string) domain.ContextType {
	padded := " " + normalize(text)
	if strings.TrimSpace(padded) == "" {
		return domain.ContextUnknown
	}

	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(padded, " "+kw) {
				return rule.context
			}
		}
	}

	return domain.ContextUnknown
}

// normalize lowercases text and collapses everything but letters and digits
// into single spaces.
func normalize(text string) string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}

// ContextOf prefers the task's explicit context type and falls back to the
// classifier.
func ContextOf(task *domain.Task, classifier Classifier) domain.ContextType {
	if task.ContextType.IsKnown() {
		return task.ContextType
	}
	if classifier == nil {
		return domain.ContextUnknown
	}
	return classifier.Classify(task.ClassifierText())
}
