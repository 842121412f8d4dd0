package mission

// Status is the runner's published progress record. Every publish
// replaces the whole record under the runner's lock; readers always
// see a complete snapshot, never a half-written one.
type Status struct {
	Running  bool   `json:"running"`
	Message  string `json:"message"`
	RowsDone int    `json:"rows_done"`
}
