package docstore

import "testing"

func TestContainsIsCaseInsensitiveSubstring(t *testing.T) {
	doc := Document{"title": "Linear Algebra Study Group"}

	if !(Contains{Field: "title", Term: "algebra"}).Matches(doc) {
		t.Fatalf("expected lower-case term to match")
	}
	if !(Contains{Field: "title", Term: "STUDY"}).Matches(doc) {
		t.Fatalf("expected upper-case term to match")
	}
	if (Contains{Field: "title", Term: "calculus"}).Matches(doc) {
		t.Fatalf("unexpected match")
	}
}

func TestContainsTreatsTermLiterally(t *testing.T) {
	doc := Document{"title": "C++ tutoring"}
	if !(Contains{Field: "title", Term: "c++"}).Matches(doc) {
		t.Fatalf("expected literal match on regex metacharacters")
	}
	if (Contains{Field: "title", Term: "c.+"}).Matches(doc) {
		t.Fatalf("term must not be interpreted as a pattern")
	}
}

func TestContainsMissingOrNonStringField(t *testing.T) {
	if (Contains{Field: "location", Term: "library"}).Matches(Document{"title": "x"}) {
		t.Fatalf("absent field must not match a non-empty term")
	}
	if (Contains{Field: "price", Term: "1"}).Matches(Document{"price": 10.0}) {
		t.Fatalf("non-string field must not match")
	}
}

func TestContainsEmptyTermMatchesEverything(t *testing.T) {
	f := Contains{Field: "location", Term: ""}
	if !f.Matches(Document{"location": "Library"}) {
		t.Fatalf("empty term should match any value")
	}
	if !f.Matches(Document{"title": "no location"}) {
		t.Fatalf("empty term should match documents without the field")
	}
}

func TestEqByIDAndCombinators(t *testing.T) {
	id := NewID()
	doc := Document{IDField: id, "email": "a@uni.edu", "student_id": "S1"}

	if !ByID(id).Matches(doc) {
		t.Fatalf("expected id match")
	}
	if ByID(NewID()).Matches(doc) {
		t.Fatalf("unexpected id match")
	}

	either := Or{Eq{Field: "email", Value: "S1"}, Eq{Field: "student_id", Value: "S1"}}
	if !either.Matches(doc) {
		t.Fatalf("expected or to match on student_id")
	}
	if (Or{}).Matches(doc) {
		t.Fatalf("empty or must match nothing")
	}
	if !(And{}).Matches(doc) {
		t.Fatalf("empty and must match everything")
	}
	if (And{ByID(id), Eq{Field: "email", Value: "b@uni.edu"}}).Matches(doc) {
		t.Fatalf("and must require every clause")
	}
}

func TestParseID(t *testing.T) {
	id := NewID()
	parsed, err := ParseID(id.Hex())
	if err != nil || parsed != id {
		t.Fatalf("round trip failed: %v %v", parsed, err)
	}
	for _, raw := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", id.Hex() + "00"} {
		if _, err := ParseID(raw); err != ErrInvalidID {
			t.Fatalf("expected ErrInvalidID for %q, got %v", raw, err)
		}
	}
}
