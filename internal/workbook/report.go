package workbook

import "fmt"

// ItemError records why one file or sheet of a batch was not processed.
type ItemError struct {
	Item string
	Err  error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Item, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }

// BatchReport summarizes a multi-item transcoding operation. Total counts
// every item attempted; Success counts the ones that produced output.
type BatchReport struct {
	Success  int
	Total    int
	Failures []ItemError
}

// OK reports whether at least one item succeeded. Partial failure is
// still success.
func (r BatchReport) OK() bool { return r.Success > 0 }

func (r *BatchReport) fail(item string, err error) {
	r.Failures = append(r.Failures, ItemError{Item: item, Err: err})
}
