package netviz

import "fmt"

// The engine reports validation failures through typed errors so embedders
// can distinguish error kinds with errors.As. All of them are raised
// synchronously from the ingestion or mutation call that failed; rows
// applied earlier in the same batch stay applied.

// MissingColumnError indicates an ingested table lacks a required column.
type MissingColumnError struct {
	Kind   string // "nodes", "links" or "packages"
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s table is missing required column %q", e.Kind, e.Column)
}

// NotFoundError indicates an update or delete addressed an id that does not
// exist, or a link/package referenced a node absent from the node set.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %q not found", e.Kind, e.ID)
}

// InvalidActionError indicates a row carried an unrecognized action value.
type InvalidActionError struct {
	Action string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q (want create, update or delete)", e.Action)
}

// InvalidArgumentError indicates a malformed argument to the public query
// surface or configuration, such as an out-of-range selection index.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}
