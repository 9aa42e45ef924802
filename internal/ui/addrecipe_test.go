package ui

import "testing"

func TestParseIngredient(t *testing.T) {
	ing, ok := parseIngredient("Tomates, 3, pièces")
	if !ok {
		t.Fatal("full line rejected")
	}
	if ing.Name != "Tomates" || ing.Quantity != 3 || ing.Unit != "pièces" {
		t.Fatalf("parsed = %#v", ing)
	}

	ing, ok = parseIngredient("Basilic")
	if !ok || ing.Name != "Basilic" || ing.Quantity != 0 || ing.Unit != "" {
		t.Fatalf("name only = %#v ok=%v", ing, ok)
	}

	ing, ok = parseIngredient("Huile d'olive, beaucoup")
	if !ok || ing.Name != "Huile d'olive" || ing.Quantity != 0 {
		t.Fatalf("bad quantity = %#v ok=%v", ing, ok)
	}

	if _, ok := parseIngredient("  ,1,kg"); ok {
		t.Fatal("blank name accepted")
	}
}
