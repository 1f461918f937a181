package provider

import "testing"

// TestLookupCurrencyName tests the free-text description resolution used
// by the scraping adapters.
func TestLookupCurrencyName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"US Dollar", "USD"},
		{"Euro", "EUR"},
		// Alias spellings of the same code.
		{"Bahrani Dinar", "BHD"},
		{"Bahraini Dinar", "BHD"},
		{"GB Pound", "GBP"},
		{"Pound Sterling", "GBP"},
		// Arabic descriptions map onto the same code set.
		{"دولار امريكي", "USD"},
		{"درهم مغربي", "MAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := LookupCurrencyName(tt.name)
			if !ok {
				t.Fatalf("Expected %q to resolve", tt.name)
			}
			if code != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, code)
			}
		})
	}

	t.Run("unknown descriptions do not resolve", func(t *testing.T) {
		if code, ok := LookupCurrencyName("Galactic Standard Credit"); ok {
			t.Errorf("Expected no match, got %s", code)
		}
	})
}
