package normalize

import (
	"testing"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

func TestFieldNameSynonyms(t *testing.T) {
	cases := map[string]string{
		"ClientID":    "clientId",
		"client_id":   "clientId",
		"Client ID":   "clientId",
		"CustomerID":  "clientId",
		"WorkerID":    "workerId",
		"employee_id": "workerId",
		"Skills":      "skills",
		"technologies": "skills",
		"Due Date":    "deadline",
		"HourlyRate":  "rate",
		"priority":    "priority",
	}
	for header, want := range cases {
		if got := FieldName(header); got != want {
			t.Fatalf("FieldName(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestFieldNameTrimsNoise(t *testing.T) {
	if got := FieldName("  ClientID \r\n"); got != "clientId" {
		t.Fatalf("expected trimmed header to resolve, got %q", got)
	}
}

func TestFieldNameFallbackCamelCase(t *testing.T) {
	cases := map[string]string{
		"contract_value": "contractValue",
		"contract-value": "contractValue",
		"Contract Value": "contractValue",
		"notes2":         "notes2",
	}
	for header, want := range cases {
		if got := FieldName(header); got != want {
			t.Fatalf("FieldName(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestFieldNameSymbolsOnlyDegrades(t *testing.T) {
	if got := FieldName("###"); got != "###" {
		t.Fatalf("expected symbols-only header to pass through, got %q", got)
	}
	if got := FieldName("123"); got != "123" {
		t.Fatalf("expected numeric header to pass through, got %q", got)
	}
}

func TestFieldNameIdempotent(t *testing.T) {
	headers := []string{"ClientID", "contract_value", "Skill Set", "priority", "someOddField"}
	for _, header := range headers {
		once := FieldName(header)
		if twice := FieldName(once); twice != once {
			t.Fatalf("FieldName not idempotent for %q: %q != %q", header, once, twice)
		}
	}
}

func TestRowLastWriteWins(t *testing.T) {
	row := Row(domain.Row{"Name ": "kept"})
	if _, ok := row["name"]; !ok {
		t.Fatalf("expected normalized key, got %v", row)
	}
}

func TestHeadersPreserveOrder(t *testing.T) {
	got := Headers([]string{"ClientID", "Client Name", "Priority"})
	want := []string{"clientId", "clientName", "priority"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Headers[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
