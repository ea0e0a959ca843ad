package docs

import (
	"strings"
	"testing"
)

func TestSwaggerInfoRegistered(t *testing.T) {
	if SwaggerInfo == nil {
		t.Fatal("swagger info not initialized")
	}
	if SwaggerInfo.Title != "BirdAI API" {
		t.Fatalf("unexpected title %q", SwaggerInfo.Title)
	}
}

func TestSwaggerTemplateCoversAPISurface(t *testing.T) {
	for _, path := range []string{
		"/api/market-data",
		"/api/collect-email",
		"/api/admin/emails",
		"/api/ledger/mint",
	} {
		if !strings.Contains(SwaggerInfo.SwaggerTemplate, `"`+path+`"`) {
			t.Fatalf("swagger template missing %s", path)
		}
	}
}
