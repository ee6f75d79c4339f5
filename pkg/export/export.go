package export

// Dataset defines tabular export content. Rows are keyed by header name so
// exporters can lay columns out in header order.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}
