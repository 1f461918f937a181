package model

// Currency represents a tracked currency in the catalog. Currencies are
// reference data: the rate pipeline looks them up but never creates or
// deletes them.
type Currency struct {
	ID       string `json:"id"`
	Code     string `json:"code"` // canonical short code, e.g. "USD", "UF"
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}
