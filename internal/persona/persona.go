// Package persona holds the static context tables and the persona template
// that is prepended to every book-assistant conversation.
package persona

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout renders the current date inside the persona template.
const DateLayout = "Monday, January 02, 2006"

// RefusalText is the fixed answer for anything that is not about books.
const RefusalText = "I specialize exclusively in books and reading. Please ask about books."

const DefaultMood = "default"

// featuredBooks is indexed by weekday with Monday = 0.
var featuredBooks = [7]string{
	`• "*Clean Code*" by Robert Martin (2008)
  - Genre: Computer Science
  - Details: Essential programming practices
  - Publisher: Prentice Hall, 464 pages`,

	`• "*The Emperor of All Maladies*" by Siddhartha Mukherjee (2010)
  - Genre: Medicine
  - Details: Biography of cancer
  - Publisher: Scribner, 592 pages`,

	`• "*To Kill a Mockingbird*" by Harper Lee (1960)
  - Genre: Fiction
  - Themes: Racial injustice
  - Publisher: J.B. Lippincott, 336 pages`,

	`• "*The Lean Startup*" by Eric Ries (2011)
  - Genre: Business
  - Details: Modern methodology
  - Publisher: Crown Business, 336 pages`,

	`• "*Structure and Interpretation of Computer Programs*" by Abelson & Sussman (1996)
  - Genre: Computer Science
  - Level: Advanced
  - Publisher: MIT Press, 657 pages`,

	`• "*Beloved*" by Toni Morrison (1987)
  - Genre: Fiction
  - Awards: Pulitzer Prize
  - Publisher: Alfred A. Knopf, 324 pages`,

	`• "*The Right Stuff*" by Tom Wolfe (1979)
  - Genre: Non-fiction
  - Subject: Early astronauts
  - Publisher: Farrar, Straus and Giroux, 448 pages`,
}

var moodContexts = map[string]string{
	DefaultMood:   "general inquiry",
	"adventurous": "looking for challenging or expansive works",
	"romantic":    "interested in emotional or relationship-focused works",
	"mysterious":  "seeking complex or puzzle-like works",
	"thoughtful":  "wanting intellectually substantial material",
	"technical":   "seeking professional or academic material",
}

// FeaturedBookFor returns the featured book block for a Monday-based weekday
// index. Indices outside 0..6 get Monday's entry.
func FeaturedBookFor(weekday int) string {
	if weekday < 0 || weekday >= len(featuredBooks) {
		return featuredBooks[0]
	}
	return featuredBooks[weekday]
}

// MoodContextFor maps a mood key to its descriptive phrase, case-insensitively.
// Unknown keys get the default phrase.
func MoodContextFor(mood string) string {
	if phrase, ok := moodContexts[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return phrase
	}
	return moodContexts[DefaultMood]
}

// Weekday converts t to a Monday = 0 index.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Context is everything interpolated into the persona template.
type Context struct {
	Language     string
	Mood         string
	Date         string
	FeaturedBook string
}

// NewContext builds the template context for a request made at now.
func NewContext(now time.Time, mood, language string) Context {
	return Context{
		Language:     language,
		Mood:         MoodContextFor(mood),
		Date:         now.Format(DateLayout),
		FeaturedBook: FeaturedBookFor(Weekday(now)),
	}
}

// Render fills the persona template.
func Render(c Context) string {
	return fmt.Sprintf(systemPrompt, c.Language, c.Mood, c.Date, c.FeaturedBook, RefusalText)
}

const systemPrompt = `
You are BookBot, the ultimate book recommendation and information assistant. Your responses MUST follow these rules:

1. RESPONSE FORMAT:
- Always use bullet points
- Each book recommendation should have:
  • Title: "*Title*" by Author (Year)
  • Genre/Field:
  • Key Details:
  • Publisher/Pages:
  • Why Recommended:

2. DOMAIN EXPERTISE:
- Academic/Professional books
- Fiction (all genres)
- Non-fiction
- Specialized texts

3. REQUIRED DETAILS:
- For fiction: themes, content notes
- For academic: level, prerequisites
- Always include publication year
- Mention comparable titles when relevant

4. EXAMPLE FORMAT:
• "*Clean Code*" by Robert Martin (2008)
  - Genre: Computer Science
  - Details: Essential programming practices
  - Publisher: Prentice Hall, 464 pages
  - Why: Best for professional developers

• "*The Hobbit*" by J.R.R. Tolkien (1937)
  - Genre: Fantasy
  - Themes: Adventure, heroism
  - Publisher: Allen & Unwin, 310 pages
  - Similar to: Lord of the Rings series

Current Context:
- Language: %s
- Mood: %s
- Date: %s
- Featured: %s

IMPORTANT: If query is not book-related, respond ONLY with:
"%s"
`
