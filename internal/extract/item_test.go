package extract

import "testing"

func TestParseItem(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantName  string
		wantQty   int
		wantUnit  float64 // 0 means unit price absent
		wantTotal float64
		ok        bool
	}{
		{"plain item", "Bread $3.20", "Bread", 1, 0, 3.20, true},
		{"inline quantity", "Milk 2 x $2.50 $5.00", "Milk", 2, 2.50, 5.00, true},
		{"leading quantity", "2 x Eggs $4.40", "Eggs", 2, 2.20, 4.40, true},
		{"leading quantity no x", "3 Apples $1.50", "Apples", 3, 0.50, 1.50, true},
		{"no amount", "THANK YOU FOR SHOPPING", "", 0, 0, 0, false},
		{"header keyword", "CHANGE $1.30", "", 0, 0, 0, false},
		{"amount only", "$5.00", "", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseItem(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseItem(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Name != tt.wantName {
				t.Fatalf("name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Quantity != tt.wantQty {
				t.Fatalf("quantity = %d, want %d", got.Quantity, tt.wantQty)
			}
			if got.TotalPrice != tt.wantTotal {
				t.Fatalf("total = %v, want %v", got.TotalPrice, tt.wantTotal)
			}
			if tt.wantUnit == 0 {
				if got.UnitPrice != nil {
					t.Fatalf("unit price = %v, want absent", *got.UnitPrice)
				}
			} else {
				if got.UnitPrice == nil || *got.UnitPrice != tt.wantUnit {
					t.Fatalf("unit price = %v, want %v", got.UnitPrice, tt.wantUnit)
				}
			}
		})
	}
}

func TestParseItemUnitPriceInvariant(t *testing.T) {
	item, ok := ParseItem("4 x Yogurt $6.00")
	if !ok {
		t.Fatal("expected item")
	}
	if item.UnitPrice == nil {
		t.Fatal("expected derived unit price")
	}
	if got := *item.UnitPrice * float64(item.Quantity); got != item.TotalPrice {
		t.Fatalf("unitPrice*quantity = %v, want %v", got, item.TotalPrice)
	}
}
