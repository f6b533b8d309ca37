package models

// ListingKind discriminates the Listing variants.
type ListingKind string

const (
	ListingOpportunity ListingKind = "opportunity"
	ListingCompany     ListingKind = "company"
)

// Opportunity is a verified internship, job or promotion.
type Opportunity struct {
	Company    string `json:"company"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	VerifiedOn string `json:"verifiedOn"`
	TrustScore int    `json:"trustScore"`
	ApplyLink  string `json:"applyLink"`
	LogoURL    string `json:"logoUrl"`
}

// Company is a trusted organisation.
type Company struct {
	Name     string `json:"name"`
	LogoURL  string `json:"logoUrl"`
	Industry string `json:"industry"`
}

// Listing is either an Opportunity or a Company; exactly one of the two
// pointers is set, matching Kind.
type Listing struct {
	ID          string       `json:"id"`
	Kind        ListingKind  `json:"kind"`
	Opportunity *Opportunity `json:"opportunity,omitempty"`
	Company     *Company     `json:"company,omitempty"`
}

// NewOpportunityListing builds an opportunity variant.
func NewOpportunityListing(id string, o Opportunity) Listing {
	return Listing{ID: id, Kind: ListingOpportunity, Opportunity: &o}
}

// NewCompanyListing builds a company variant.
func NewCompanyListing(id string, c Company) Listing {
	return Listing{ID: id, Kind: ListingCompany, Company: &c}
}
