package validators

import "net/http"

// OptionalQuery returns nil when key is absent from the query string and a
// pointer to its first value otherwise, so "?location=" is distinguishable
// from no location at all.
func OptionalQuery(r *http.Request, key string) *string {
	values, ok := r.URL.Query()[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}
