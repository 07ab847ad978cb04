package content

import (
	"testing"

	"github.com/angelmondragon/universe-backend/pkg/docstore"
)

func strPtr(v string) *string { return &v }

func TestBuildFilterNoTermsMatchesEverything(t *testing.T) {
	f := BuildFilter(nil, nil, nil)
	if _, ok := f.(docstore.All); !ok {
		t.Fatalf("expected All, got %T", f)
	}
}

func TestBuildFilterSemantics(t *testing.T) {
	docs := map[string]docstore.Document{
		"calculus":   {FieldTitle: "Calculus help", FieldLocation: "Main Library", FieldSubject: "Math"},
		"desc":       {FieldTitle: "Evening session", FieldDescription: "covering CALCULUS limits", FieldLocation: "Dorm"},
		"noLocation": {FieldTitle: "Calculus online"},
		"other":      {FieldTitle: "Guitar", FieldLocation: "Library annex", FieldSubject: "Music"},
	}

	cases := []struct {
		name                     string
		query, location, subject *string
		want                     []string
	}{
		{name: "query in title or description", query: strPtr("calculus"), want: []string{"calculus", "desc", "noLocation"}},
		{name: "location", location: strPtr("library"), want: []string{"calculus", "other"}},
		{name: "empty location matches all", location: strPtr(""), want: []string{"calculus", "desc", "noLocation", "other"}},
		{name: "empty query matches all", query: strPtr(""), want: []string{"calculus", "desc", "noLocation", "other"}},
		{name: "subject", subject: strPtr("MATH"), want: []string{"calculus"}},
		{name: "combined", query: strPtr("calc"), location: strPtr("lib"), want: []string{"calculus"}},
		{name: "no match", query: strPtr("chemistry"), want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := BuildFilter(tc.query, tc.location, tc.subject)
			got := map[string]bool{}
			for name, doc := range docs {
				if f.Matches(doc) {
					got[name] = true
				}
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for _, name := range tc.want {
				if !got[name] {
					t.Fatalf("expected %s to match, got %v", name, got)
				}
			}
		})
	}
}
