package models

// MaxPostBodyLength is the inclusive upper bound on post body size.
const MaxPostBodyLength = 512

// Post is a row in the posts table. ID is assigned by the store and is
// never reused, even after deletion.
type Post struct {
	ID     int64
	Author string
	Body   string
}
