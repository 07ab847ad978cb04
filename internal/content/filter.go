package content

import "github.com/angelmondragon/universe-backend/pkg/docstore"

// BuildFilter combines the optional list search terms. A nil term places no
// constraint. A present term, even "", must be a case-insensitive substring
// of its field; q is matched against title or description.
func BuildFilter(query, location, subject *string) docstore.Filter {
	var clauses docstore.And
	if query != nil {
		clauses = append(clauses, docstore.Or{
			docstore.Contains{Field: FieldTitle, Term: *query},
			docstore.Contains{Field: FieldDescription, Term: *query},
		})
	}
	if location != nil {
		clauses = append(clauses, docstore.Contains{Field: FieldLocation, Term: *location})
	}
	if subject != nil {
		clauses = append(clauses, docstore.Contains{Field: FieldSubject, Term: *subject})
	}

	switch len(clauses) {
	case 0:
		return docstore.All{}
	case 1:
		return clauses[0]
	}
	return clauses
}
