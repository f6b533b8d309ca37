// Package directory serves the curated list of verified opportunities and
// trusted companies shown next to the dashboard.
package directory

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

var ErrUnknownKind = errors.New("unknown listing kind")

var listings = []models.Listing{
	models.NewOpportunityListing("opp-1", models.Opportunity{
		Company:    "Google",
		Title:      "Software Engineering Intern",
		Category:   "INTERNSHIP",
		VerifiedOn: "2025-02-14",
		TrustScore: 98,
		ApplyLink:  "https://careers.google.com/students/",
		LogoURL:    "https://logo.clearbit.com/google.com",
	}),
	models.NewOpportunityListing("opp-2", models.Opportunity{
		Company:    "Microsoft",
		Title:      "Explore Program Intern",
		Category:   "INTERNSHIP",
		VerifiedOn: "2025-02-10",
		TrustScore: 96,
		ApplyLink:  "https://careers.microsoft.com/students/",
		LogoURL:    "https://logo.clearbit.com/microsoft.com",
	}),
	models.NewOpportunityListing("opp-3", models.Opportunity{
		Company:    "Accenture",
		Title:      "Graduate Analyst",
		Category:   "JOB",
		VerifiedOn: "2025-01-28",
		TrustScore: 91,
		ApplyLink:  "https://www.accenture.com/careers",
		LogoURL:    "https://logo.clearbit.com/accenture.com",
	}),
	models.NewOpportunityListing("opp-4", models.Opportunity{
		Company:    "GitHub",
		Title:      "Student Developer Pack",
		Category:   "PROMOTION",
		VerifiedOn: "2025-01-15",
		TrustScore: 88,
		ApplyLink:  "https://education.github.com/pack",
		LogoURL:    "https://logo.clearbit.com/github.com",
	}),
	models.NewCompanyListing("co-1", models.Company{
		Name:     "Infosys",
		LogoURL:  "https://logo.clearbit.com/infosys.com",
		Industry: "IT Services",
	}),
	models.NewCompanyListing("co-2", models.Company{
		Name:     "Deloitte",
		LogoURL:  "https://logo.clearbit.com/deloitte.com",
		Industry: "Consulting",
	}),
	models.NewCompanyListing("co-3", models.Company{
		Name:     "Amazon",
		LogoURL:  "https://logo.clearbit.com/amazon.com",
		Industry: "E-commerce",
	}),
}

// List returns the listings of kind, or every listing when kind is empty.
func List(kind string) ([]models.Listing, error) {
	k := models.ListingKind(strings.ToLower(strings.TrimSpace(kind)))
	switch k {
	case "":
		return append([]models.Listing(nil), listings...), nil
	case models.ListingOpportunity, models.ListingCompany:
	default:
		return nil, ErrUnknownKind
	}

	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Kind == k {
			out = append(out, l)
		}
	}
	return out, nil
}
