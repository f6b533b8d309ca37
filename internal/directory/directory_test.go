package directory

import (
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

func TestList(t *testing.T) {
	all, err := List("")
	if err != nil {
		t.Fatal(err)
	}
	opps, _ := List("opportunity")
	companies, _ := List(" Company ")
	if len(opps)+len(companies) != len(all) {
		t.Errorf("kinds do not partition listings: %d + %d != %d", len(opps), len(companies), len(all))
	}
	for _, l := range opps {
		if l.Kind != models.ListingOpportunity || l.Opportunity == nil || l.Company != nil {
			t.Errorf("malformed opportunity listing %+v", l)
		}
	}
	for _, l := range companies {
		if l.Kind != models.ListingCompany || l.Company == nil || l.Opportunity != nil {
			t.Errorf("malformed company listing %+v", l)
		}
	}
	if _, err := List("event"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}
