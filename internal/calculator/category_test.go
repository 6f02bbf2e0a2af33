package calculator

import "testing"

func TestSummarizeByCategory(t *testing.T) {
	summary := SummarizeByCategory([]ExpenseForCategory{
		{Amount: dec("1200"), Category: "Rent"},
		{Amount: dec("45.50"), Category: "Food"},
		{Amount: dec("30"), Category: "Food"},
		{Amount: dec("20"), Category: "Custom", CustomCategory: "Gym"},
		{Amount: dec("5"), Category: "Custom"},
		{Amount: dec("20"), Category: "Misc"},
	})

	want := []struct {
		label  string
		amount string
	}{
		{"Rent", "1200"},
		{"Food", "75.5"},
		{"Gym", "20"},
		{"Misc", "20"},
		{"Custom", "5"},
	}

	if len(summary) != len(want) {
		t.Fatalf("got %d categories %v, want %d", len(summary), summary, len(want))
	}
	for i, w := range want {
		if summary[i].Label != w.label || !summary[i].Amount.Equal(dec(w.amount)) {
			t.Errorf("summary[%d] = %s %s, want %s %s", i, summary[i].Label, summary[i].Amount, w.label, w.amount)
		}
	}
}

func TestSummarizeByCategory_Empty(t *testing.T) {
	if got := SummarizeByCategory(nil); len(got) != 0 {
		t.Errorf("SummarizeByCategory(nil) = %v, want empty", got)
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		category, custom, want string
	}{
		{"Food", "", "Food"},
		{"Food", "ignored", "Food"},
		{"Custom", "Gym", "Gym"},
		{"Custom", "", "Custom"},
	}
	for _, tt := range tests {
		if got := CategoryLabel(tt.category, tt.custom); got != tt.want {
			t.Errorf("CategoryLabel(%q, %q) = %q, want %q", tt.category, tt.custom, got, tt.want)
		}
	}
}
