package storage

import "fmt"

// DataSourceError wraps any failure of a query issued during a refresh cycle.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source: %s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func dataSourceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DataSourceError{Op: op, Err: err}
}
