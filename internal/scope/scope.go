// Package scope decides whether a chat message is about books.
//
// The gate uses an allow-list: a message is in scope only if it contains at
// least one book-related keyword as a case-insensitive substring. Anything
// else is refused without calling the model.
package scope

// DefaultKeywords is the production allow-list.
var DefaultKeywords = []string{
	"book", "textbook", "novel", "read", "author", "publish",
	"literature", "fiction", "non-fiction", "genre", "chapter",
	"reference", "academic", "study", "learn", "research",
	"story", "writer", "reading", "library", "publisher",
	"edition", "volume", "page", "bookshelf", "bookstore",
}

// Gate classifies messages against a keyword allow-list.
type Gate struct {
	m *matcher
}

// NewGate builds a gate for keywords. An empty list refuses everything.
func NewGate(keywords []string) *Gate {
	return &Gate{m: newMatcher(keywords)}
}

// NewDefaultGate builds a gate over DefaultKeywords.
func NewDefaultGate() *Gate {
	return NewGate(DefaultKeywords)
}

// MatchedKeyword returns the keyword that lets message through to the model.
// ok is false when message is out of scope.
func (g *Gate) MatchedKeyword(message string) (keyword string, ok bool) {
	return g.m.find(message)
}
