package catalog

import (
	"testing"

	"scoutai/models"
)

func TestParsePreservesDeclaredOrder(t *testing.T) {
	data := []byte(`{
		"destinations": {
			"zeta": {
				"policy_summary": "p",
				"food_summary": "f",
				"modules": {
					"module_c": {"name": "C", "type": "Combo", "price": 3, "capacity": 3},
					"module_a": {"name": "A", "type": "Camping", "price": 1, "capacity": 1}
				}
			},
			"alpha": {
				"policy_summary": "p",
				"food_summary": "f",
				"modules": {
					"module_b": {"name": "B", "type": "Glamping", "price": 2, "capacity": 2}
				}
			}
		}
	}`)

	store, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	keys := store.Keys()
	if len(keys) != 2 || keys[0] != "zeta" || keys[1] != "alpha" {
		t.Fatalf("location order %v, want [zeta alpha]", keys)
	}

	loc, err := store.Location("zeta")
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	pkgs := loc.Packages()
	if len(pkgs) != 2 || pkgs[0].Key != "module_c" || pkgs[1].Key != "module_a" {
		t.Fatalf("package order %v, want [module_c module_a]", []string{pkgs[0].Key, pkgs[1].Key})
	}
}

func TestParseRejectsEmptyCatalog(t *testing.T) {
	if _, err := Parse([]byte(`{"destinations": {}}`)); err == nil {
		t.Fatal("expected error for empty catalog")
	}
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed catalog")
	}
}

func TestMatchLocation(t *testing.T) {
	store := Default()

	cases := []struct {
		input string
		want  string
	}{
		{"I want to camp in Coorg next weekend", "coorg"},
		{"wayanad", "wayanad"},
		{"Kodaikanal please", "kodaikanal"},
		{"somewhere in the alps", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := store.MatchLocation(tc.input); got != tc.want {
			t.Errorf("MatchLocation(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestMatchPackageComboHintsWin(t *testing.T) {
	store := Default()

	// "plan" is a combo hint even when glamping is also mentioned.
	if got := store.MatchPackage("coorg", "the full plan with glamping"); got != "module_combo" {
		t.Errorf("combo hint: got %q, want module_combo", got)
	}
	if got := store.MatchPackage("coorg", "book the 3-day trip"); got != "module_combo" {
		t.Errorf("3-day hint: got %q, want module_combo", got)
	}
}

func TestMatchPackageByNameAndType(t *testing.T) {
	store := Default()

	if got := store.MatchPackage("wayanad", "module_b looks good"); got != "module_b" {
		t.Errorf("explicit key: got %q, want module_b", got)
	}
	if got := store.MatchPackage("kodaikanal", "I want to go glamping"); got != "module_b" {
		t.Errorf("type keyword: got %q, want module_b", got)
	}
	if got := store.MatchPackage("coorg", "just a tent somewhere"); got != "" {
		t.Errorf("no signal: got %q, want empty", got)
	}
	if got := store.MatchPackage("atlantis", "glamping"); got != "" {
		t.Errorf("unknown location: got %q, want empty", got)
	}
}

func TestScanHistoryMostRecentFirst(t *testing.T) {
	store := Default()

	transcript := []models.Message{
		{Role: models.RoleUser, Content: "Tell me about coorg"},
		{Role: models.RoleAssistant, Content: "Coorg has riverside camping."},
		{Role: models.RoleUser, Content: "What about wayanad?"},
	}

	found := store.ScanHistory(transcript)
	if found.Location != "wayanad" {
		t.Errorf("got location %q, want wayanad", found.Location)
	}
}

func TestScanHistoryMatchesPackageName(t *testing.T) {
	store := Default()

	transcript := []models.Message{
		{Role: models.RoleAssistant, Content: "Module B: Cloud Farm Glamping is popular."},
	}

	found := store.ScanHistory(transcript)
	if found.Location != "kodaikanal" {
		t.Errorf("got location %q, want kodaikanal", found.Location)
	}
	if found.ServiceType != "Module B: Cloud Farm Glamping" {
		t.Errorf("got service type %q", found.ServiceType)
	}
}

func TestScanHistoryEmpty(t *testing.T) {
	store := Default()
	if found := store.ScanHistory(nil); found.Location != "" {
		t.Errorf("empty transcript matched %q", found.Location)
	}
}
