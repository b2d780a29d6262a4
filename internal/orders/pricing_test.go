package orders

import (
	"testing"

	"property-storefront/internal/models"
)

func TestCommission(t *testing.T) {
	cases := []struct {
		price int64
		want  int64
	}{
		{price: 850000, want: 15191},   // 13591.5 rounds up
		{price: 4500000, want: 73554},  // 71955 exactly
		{price: 1000, want: 1615},      // 15.99
		{price: 6500000, want: 105534}, // 103935 exactly
		{price: 100, want: 1601},       // 1.599
	}
	for _, tc := range cases {
		if got := Commission(tc.price); got != tc.want {
			t.Fatalf("price %d: expected commission %d, got %d", tc.price, tc.want, got)
		}
	}
}

func TestQuote(t *testing.T) {
	amount, commission := Quote(models.Property{Type: models.ListingTypeBuy, Price: 850000})
	if commission != 15191 || amount != 865191 {
		t.Fatalf("expected 865191 incl. 15191, got %d incl. %d", amount, commission)
	}

	amount, commission = Quote(models.Property{Type: models.ListingTypeRent, Price: 35000})
	if commission != 0 || amount != 35000 {
		t.Fatalf("expected rent at face value, got %d incl. %d", amount, commission)
	}
}
