package session

import "testing"

func TestApply_ToggleParity(t *testing.T) {
	// Membership after n toggles of the same value equals the parity of n.
	s := Session{Token: "t1"}
	m := Mutation{Kind: ToggleRegime, Regime: RegimeVegan}

	for i := 1; i <= 6; i++ {
		next, _, changed := Apply(s, m)
		if !changed {
			t.Fatalf("toggle %d reported no change", i)
		}
		s = next

		wantPresent := i%2 == 1
		if s.HasRegime(RegimeVegan) != wantPresent {
			t.Fatalf("after %d toggles, HasRegime = %v, want %v", i, s.HasRegime(RegimeVegan), wantPresent)
		}
	}
}

func TestApply_ToggleRegimeRoundTrip(t *testing.T) {
	s := Session{Token: "t1", Regimes: []string{RegimeVegan}}

	next, _, _ := Apply(s, Mutation{Kind: ToggleRegime, Regime: RegimeVegan})
	if len(next.Regimes) != 0 {
		t.Fatalf("Regimes = %v, want empty", next.Regimes)
	}

	next, _, _ = Apply(next, Mutation{Kind: ToggleRegime, Regime: RegimeVegan})
	if len(next.Regimes) != 1 || next.Regimes[0] != RegimeVegan {
		t.Fatalf("Regimes = %v, want [%s]", next.Regimes, RegimeVegan)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s := Session{Token: "t1", Regimes: []string{RegimeOrganic}}

	next, _, _ := Apply(s, Mutation{Kind: ToggleRegime, Regime: RegimeVegan})
	if len(s.Regimes) != 1 {
		t.Fatalf("input session mutated: Regimes = %v", s.Regimes)
	}
	if len(next.Regimes) != 2 {
		t.Fatalf("result Regimes = %v, want 2 entries", next.Regimes)
	}
}

func TestApply_ToggleShopKeyedBySiret(t *testing.T) {
	shop := Shop{Siret: "123", Name: "Biocoop"}
	s := Session{Token: "t1"}

	next, _, changed := Apply(s, Mutation{Kind: ToggleFavoriteShop, Shop: shop})
	if !changed || !next.HasFavoriteShop("123") {
		t.Fatalf("shop not added: %#v", next.FavoriteShops)
	}

	// Toggling a shop with the same SIRET but different display fields
	// still removes the stored record.
	next, _, changed = Apply(next, Mutation{Kind: ToggleFavoriteShop, Shop: Shop{Siret: "123", Name: "renamed"}})
	if !changed || next.HasFavoriteShop("123") {
		t.Fatalf("shop not removed: %#v", next.FavoriteShops)
	}
}

func TestApply_AppendIngredientRejectsDuplicates(t *testing.T) {
	ing := Ingredient{ID: "01.13.1", Title: "Tomates"}
	s := Session{Token: "t1"}

	next, inverse, changed := Apply(s, Mutation{Kind: AppendIngredient, Ingredient: ing})
	if !changed {
		t.Fatal("first append reported no change")
	}
	if inverse.Kind != RemoveIngredient {
		t.Fatalf("inverse kind = %v, want RemoveIngredient", inverse.Kind)
	}

	again, _, changed := Apply(next, Mutation{Kind: AppendIngredient, Ingredient: ing})
	if changed {
		t.Fatal("duplicate append reported a change")
	}
	if len(again.Ingredients) != 1 {
		t.Fatalf("Ingredients = %v, want 1 entry", again.Ingredients)
	}
}

func TestApply_RemoveAbsentIngredientIsNoop(t *testing.T) {
	s := Session{Token: "t1"}
	_, _, changed := Apply(s, Mutation{Kind: RemoveIngredient, Ingredient: Ingredient{ID: "x"}})
	if changed {
		t.Fatal("removing an absent ingredient reported a change")
	}
}

func TestApply_IngredientOrderIsInsertionOrder(t *testing.T) {
	s := Session{Token: "t1"}
	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		s, _, _ = Apply(s, Mutation{Kind: AppendIngredient, Ingredient: Ingredient{ID: id, Title: id}})
	}
	for i, id := range ids {
		if s.Ingredients[i].ID != id {
			t.Fatalf("Ingredients[%d] = %q, want %q", i, s.Ingredients[i].ID, id)
		}
	}

	// Removing the middle entry keeps the rest in order.
	s, _, _ = Apply(s, Mutation{Kind: RemoveIngredient, Ingredient: Ingredient{ID: "a"}})
	if len(s.Ingredients) != 2 || s.Ingredients[0].ID != "c" || s.Ingredients[1].ID != "b" {
		t.Fatalf("Ingredients = %v, want [c b]", s.Ingredients)
	}
}

func TestApply_InverseRestoresOriginal(t *testing.T) {
	cases := []Mutation{
		{Kind: ToggleRegime, Regime: RegimeGlutenFree},
		{Kind: ToggleFavoriteRecipe, RecipeID: "r1"},
		{Kind: ToggleFavoriteShop, Shop: Shop{Siret: "42"}},
		{Kind: AppendIngredient, Ingredient: Ingredient{ID: "i1"}},
	}

	for _, m := range cases {
		s := Session{Token: "t1", Regimes: []string{RegimeVegan}}
		next, inverse, changed := Apply(s, m)
		if !changed {
			t.Fatalf("%v: no change", m.Kind)
		}
		restored, _, changed := Apply(next, inverse)
		if !changed {
			t.Fatalf("%v: inverse was a no-op", m.Kind)
		}
		if len(restored.Regimes) != 1 || restored.Regimes[0] != RegimeVegan {
			t.Fatalf("%v: Regimes = %v, want [%s]", m.Kind, restored.Regimes, RegimeVegan)
		}
		if len(restored.FavoriteRecipes) != 0 || len(restored.FavoriteShops) != 0 || len(restored.Ingredients) != 0 {
			t.Fatalf("%v: inverse did not restore original: %#v", m.Kind, restored)
		}
	}
}

func TestAdded_ReflectsDirection(t *testing.T) {
	s := Session{Token: "t1", Regimes: []string{RegimeVegan}}

	if Added(s, Mutation{Kind: ToggleRegime, Regime: RegimeVegan}) {
		t.Fatal("toggling a present regime reported as add")
	}
	if !Added(s, Mutation{Kind: ToggleRegime, Regime: RegimeOrganic}) {
		t.Fatal("toggling an absent regime reported as remove")
	}
	if !Added(s, Mutation{Kind: ToggleFavoriteRecipe, RecipeID: "r9"}) {
		t.Fatal("new recipe bookmark reported as remove")
	}
}

func TestMutation_KeySeparatesSlots(t *testing.T) {
	a := Mutation{Kind: ToggleRegime, Regime: RegimeVegan}
	b := Mutation{Kind: ToggleRegime, Regime: RegimeOrganic}
	c := Mutation{Kind: ToggleFavoriteRecipe, RecipeID: RegimeVegan}

	if a.Key() == b.Key() {
		t.Fatalf("distinct regimes share key %q", a.Key())
	}
	if a.Key() == c.Key() {
		t.Fatalf("regime and recipe share key %q", a.Key())
	}
	if a.Key() != (Mutation{Kind: ToggleRegime, Regime: RegimeVegan}).Key() {
		t.Fatal("same slot produced different keys")
	}

	// Append and remove of the same ingredient target the same slot.
	ing := Ingredient{ID: "i1"}
	if (Mutation{Kind: AppendIngredient, Ingredient: ing}).Key() != (Mutation{Kind: RemoveIngredient, Ingredient: ing}).Key() {
		t.Fatal("append/remove of one ingredient produced different keys")
	}
}
