package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ncissues/civic-api/internal/core/ports"
)

func TestListBillsQuery_SortsByIntroducedDate(t *testing.T) {
	_, opts := listBillsQuery(ports.ListBillsFilter{Offset: 5, Limit: 20})

	sort, ok := opts.Sort.(bson.D)
	if !ok || len(sort) != 1 {
		t.Fatalf("unexpected sort: %#v", opts.Sort)
	}
	if sort[0].Key != "introduced_date" || sort[0].Value != -1 {
		t.Fatalf("public list must order by introduced_date desc, got %#v", sort[0])
	}
	if *opts.Skip != 5 || *opts.Limit != 20 {
		t.Fatalf("paging not applied: skip=%v limit=%v", *opts.Skip, *opts.Limit)
	}
}

func TestListBillsQuery_Filters(t *testing.T) {
	query, _ := listBillsQuery(ports.ListBillsFilter{
		Chamber: "house",
		Status:  "Filed",
		Search:  "school",
	})

	if query["chamber"] != "house" || query["status"] != "Filed" {
		t.Fatalf("equality filters missing: %#v", query)
	}
	or, ok := query["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("search must match title or bill_number: %#v", query["$or"])
	}
}
