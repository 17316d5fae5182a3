package models

// VendorReplica is the procurement domain's copy of a vendor's core
// attributes, kept in sync by the registry's replication call. Only the three
// fields procurement filters need are replicated.
type VendorReplica struct {
	ID             string   `json:"id"`
	Certifications []string `json:"certifications"`
	Rating         float64  `json:"rating"`
}
