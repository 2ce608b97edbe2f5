package entity

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"Family", CategoryFamily, true},
		{"Work", CategoryWork, true},
		{"Religious", CategoryReligious, true},
		{"Other", CategoryOther, true},
		{"All", "", false}, // filter sentinel, not an entry category
		{"family", "", false},
		{"", "", false},
		{"Hobby", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCategoriesExcludesAll(t *testing.T) {
	for _, c := range Categories() {
		if c == CategoryAll {
			t.Fatal("Categories() must not include the All sentinel")
		}
	}
	if len(Categories()) != 4 {
		t.Fatalf("Categories() length = %d, want 4", len(Categories()))
	}
}
