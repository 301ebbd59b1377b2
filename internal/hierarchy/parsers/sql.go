package parsers

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

// An optionally quoted identifier with an optional schema qualifier; the
// table name is the captured group.
const sqlIdent = "(?:[`\"\\[]?\\w+[`\"\\]]?\\.)?[`\"\\[]?(\\w+)[`\"\\]]?"

var (
	sqlTableDecl = regexp.MustCompile(
		`(?i)\b(CREATE\s+TABLE(?:\s+IF\s+NOT\s+EXISTS)?|ALTER\s+TABLE(?:\s+ONLY)?)\s+` + sqlIdent + `\s*(\()?`)
	sqlForeignKey = regexp.MustCompile(
		`(?i)FOREIGN\s+KEY\s*\([^)]*\)\s*REFERENCES\s+` + sqlIdent + `\s*\(`)
)

// SQLSchemaExtractor finds tables and the tables their foreign keys reference.
type SQLSchemaExtractor struct{}

// NewSQLSchemaExtractor creates a SQL schema extractor.
func NewSQLSchemaExtractor() *SQLSchemaExtractor {
	return &SQLSchemaExtractor{}
}

func (e *SQLSchemaExtractor) Extensions() []string { return []string{".sql"} }

// Extract returns one entity per CREATE TABLE (and per ALTER TABLE, which
// can add constraints later). Every FOREIGN KEY ... REFERENCES t(...) between
// a declaration and the next one makes the declared table reference t.
func (e *SQLSchemaExtractor) Extract(source []byte) ([]extraction.Entity, error) {
	src := stripSQLComments(string(source))

	spans := splitDeclarations(src, sqlTableDecl, func(src string, m []int) (string, string) {
		verb := strings.ToUpper(group(src, m, 1))
		if strings.HasPrefix(verb, "CREATE") && group(src, m, 3) == "" {
			// CREATE TABLE x AS SELECT ... declares nothing we can read
			return "", ""
		}
		return group(src, m, 2), "table"
	})

	entities := make([]extraction.Entity, 0, len(spans))
	for _, s := range spans {
		var refs []string
		for _, m := range sqlForeignKey.FindAllStringSubmatch(s.body, -1) {
			refs = append(refs, m[1])
		}
		entities = append(entities, extraction.Entity{
			Name:       s.name,
			Kind:       s.kind,
			References: uniqueSorted(refs),
			Direction:  extraction.RefChild,
		})
	}
	return entities, nil
}

var sqlComment = regexp.MustCompile(`--[^\n]*|(?s)/\*.*?\*/`)

func stripSQLComments(src string) string {
	return sqlComment.ReplaceAllStringFunc(src, func(c string) string {
		return strings.Repeat("\n", strings.Count(c, "\n"))
	})
}
