package drive

import (
	"fmt"
	"strings"
)

// Query builds Drive search predicates from typed terms. File and folder
// names reach the query through escapeValue, never by direct interpolation.
type Query struct {
	terms []string
}

// NewQuery returns an empty query.
func NewQuery() *Query { return &Query{} }

// InParent restricts results to children of the given folder.
func (q *Query) InParent(folderID string) *Query {
	q.terms = append(q.terms, fmt.Sprintf("'%s' in parents", escapeValue(folderID)))
	return q
}

// NotTrashed excludes trashed entries.
func (q *Query) NotTrashed() *Query {
	q.terms = append(q.terms, "trashed=false")
	return q
}

// NameEquals matches an exact, escaped name.
func (q *Query) NameEquals(name string) *Query {
	q.terms = append(q.terms, fmt.Sprintf("name='%s'", escapeValue(name)))
	return q
}

// IsFolder restricts results to folders.
func (q *Query) IsFolder() *Query {
	q.terms = append(q.terms, fmt.Sprintf("mimeType='%s'", MimeFolder))
	return q
}

// String renders the predicate with terms joined by "and".
func (q *Query) String() string {
	return strings.Join(q.terms, " and ")
}

// escapeValue escapes backslashes and single quotes per the Drive query
// grammar.
func escapeValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}
