package dto

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams bounds and orders a list query. SortBy is interpolated into SQL
// so it must only ever carry a column name chosen by the caller's code.
type QueryParams struct {
	Page    int
	Limit   int
	SortBy  string
	SortDir string
}
