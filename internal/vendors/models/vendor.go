package models

// Vendor is a registered supplier. The id is caller-supplied and immutable;
// vendors are append-only (no update or delete in this system), which is what
// makes downstream caching and replication safe.
type Vendor struct {
	ID             string   `json:"id"`
	Certifications []string `json:"certifications"`
	Rating         float64  `json:"rating"`
}
