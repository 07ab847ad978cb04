// Package metrics exposes the Prometheus collectors recorded by the API.
// Every constructor accepts a nil registerer and then returns a no-op value,
// and every method is safe on a nil receiver.
package metrics

const namespace = "universe"

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeSuccess
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
