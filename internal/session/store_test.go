package session

import "testing"

func TestStore_SetThenRead(t *testing.T) {
	st := NewStore(Session{})

	st.Set(Session{
		Token:           "t1",
		Username:        "marcel",
		FavoriteRecipes: []string{},
		FavoriteShops:   []Shop{},
		Regimes:         []string{},
	})

	got := st.Session()
	if got.Token != "t1" {
		t.Fatalf("Token = %q, want %q", got.Token, "t1")
	}
	if got.Username != "marcel" {
		t.Fatalf("Username = %q, want %q", got.Username, "marcel")
	}
	if !st.Authenticated() {
		t.Fatal("Authenticated() = false, want true")
	}
}

func TestStore_SetIsIdempotent(t *testing.T) {
	st := NewStore(Session{})
	payload := Session{Token: "t1", Username: "marcel", Regimes: []string{RegimeVegan}}

	st.Set(payload)
	first := st.Session()
	st.Set(payload)
	second := st.Session()

	if first.Token != second.Token || first.Username != second.Username {
		t.Fatalf("identity differs after repeat Set: %#v vs %#v", first, second)
	}
	if len(first.Regimes) != len(second.Regimes) || first.Regimes[0] != second.Regimes[0] {
		t.Fatalf("regimes differ after repeat Set: %v vs %v", first.Regimes, second.Regimes)
	}
}

func TestStore_ClearResetsEverything(t *testing.T) {
	st := NewStore(Session{
		Token:           "t1",
		Email:           "m@example.com",
		Username:        "marcel",
		FavoriteRecipes: []string{"r1"},
		FavoriteShops:   []Shop{{Siret: "1"}},
		Regimes:         []string{RegimeVegan},
		Ingredients:     []Ingredient{{ID: "i1"}},
	})

	st.Clear()
	got := st.Session()
	if got.Token != "" || got.Email != "" || got.Username != "" {
		t.Fatalf("identity not cleared: %#v", got)
	}
	if len(got.FavoriteRecipes) != 0 || len(got.FavoriteShops) != 0 || len(got.Regimes) != 0 || len(got.Ingredients) != 0 {
		t.Fatalf("collections not cleared: %#v", got)
	}
	if st.Authenticated() {
		t.Fatal("Authenticated() = true after Clear")
	}

	// Idempotent.
	st.Clear()
	if st.Session().Token != "" {
		t.Fatal("second Clear changed the result")
	}
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	st := NewStore(Session{Token: "t1", Regimes: []string{RegimeVegan}})

	snap := st.Session()
	snap.Regimes[0] = "tampered"

	if got := st.Session(); got.Regimes[0] != RegimeVegan {
		t.Fatalf("stored session affected by snapshot write: %v", got.Regimes)
	}
}

func TestStore_ApplyReportsDirectionAndInverse(t *testing.T) {
	st := NewStore(Session{Token: "t1"})

	res := st.Apply(Mutation{Kind: ToggleFavoriteRecipe, RecipeID: "r1"})
	if !res.Changed || !res.Added {
		t.Fatalf("first toggle: %+v, want changed add", res)
	}
	if !st.Session().HasFavoriteRecipe("r1") {
		t.Fatal("recipe not present after toggle")
	}

	// Applying the returned inverse restores the pre-mutation state.
	inv := st.Apply(res.Inverse)
	if !inv.Changed || inv.Added {
		t.Fatalf("inverse apply: %+v, want changed remove", inv)
	}
	if st.Session().HasFavoriteRecipe("r1") {
		t.Fatal("recipe still present after inverse")
	}
}

func TestStore_ApplyNoopDuplicateAppend(t *testing.T) {
	st := NewStore(Session{Token: "t1", Ingredients: []Ingredient{{ID: "i1"}}})

	res := st.Apply(Mutation{Kind: AppendIngredient, Ingredient: Ingredient{ID: "i1"}})
	if res.Changed {
		t.Fatalf("duplicate append changed the store: %+v", res)
	}
	if got := st.Session(); len(got.Ingredients) != 1 {
		t.Fatalf("Ingredients = %v, want 1 entry", got.Ingredients)
	}
}

func TestStore_ApplyRefusesTokenlessSession(t *testing.T) {
	st := NewStore(Session{})

	res := st.Apply(Mutation{Kind: ToggleRegime, Regime: RegimeVegan})
	if res.Changed {
		t.Fatalf("tokenless apply reported a change: %+v", res)
	}
	got := st.Session()
	if got.Token != "" || len(got.Regimes) != 0 {
		t.Fatalf("tokenless session gained state: %#v", got)
	}

	// The same holds for a store cleared after holding state.
	st.Set(Session{Token: "t1", Regimes: []string{RegimeVegan}})
	st.Clear()
	if res := st.Apply(Mutation{Kind: ToggleRegime, Regime: RegimeVegan}); res.Changed {
		t.Fatalf("apply after Clear reported a change: %+v", res)
	}
	if got := st.Session(); len(got.Regimes) != 0 {
		t.Fatalf("cleared session gained state: %#v", got)
	}
}

func TestStore_RevertRestoresMembership(t *testing.T) {
	st := NewStore(Session{Token: "t1"})
	m := Mutation{Kind: ToggleRegime, Regime: RegimeVegan}

	res := st.Apply(m)
	if !res.Added {
		t.Fatalf("apply = %+v, want add", res)
	}
	if !st.Revert(m, res.Added) {
		t.Fatal("revert reported no change")
	}
	if st.Session().HasRegime(RegimeVegan) {
		t.Fatal("regime still present after revert of an add")
	}

	// The other direction: revert of a removal re-adds.
	st.Set(Session{Token: "t1", Regimes: []string{RegimeVegan}})
	res = st.Apply(m)
	if res.Added {
		t.Fatalf("apply = %+v, want remove", res)
	}
	st.Revert(m, res.Added)
	if !st.Session().HasRegime(RegimeVegan) {
		t.Fatal("regime missing after revert of a removal")
	}
}

func TestStore_RevertSkipsWhenMembershipMoved(t *testing.T) {
	st := NewStore(Session{Token: "t1"})
	m := Mutation{Kind: ToggleRegime, Regime: RegimeVegan}

	res := st.Apply(m) // add
	st.Apply(m)        // a later toggle removes it again

	// Reverting the first apply would re-remove what is already gone;
	// the membership moved, so nothing happens.
	if st.Revert(m, res.Added) {
		t.Fatal("revert changed the store despite moved membership")
	}
	if st.Session().HasRegime(RegimeVegan) {
		t.Fatalf("Regimes = %v, want empty", st.Session().Regimes)
	}
}

func TestStore_RevertSkipsTokenlessSession(t *testing.T) {
	st := NewStore(Session{Token: "t1", Regimes: []string{RegimeVegan}})
	m := Mutation{Kind: ToggleRegime, Regime: RegimeVegan}

	res := st.Apply(m) // remove
	st.Clear()

	if st.Revert(m, res.Added) {
		t.Fatal("revert mutated a cleared store")
	}
	if got := st.Session(); len(got.Regimes) != 0 {
		t.Fatalf("cleared session gained state: %#v", got)
	}
}

func TestStore_MergeLeavesAbsentFields(t *testing.T) {
	st := NewStore(Session{Token: "t1", Username: "marcel", Regimes: []string{RegimeVegan}})

	email := "m@example.com"
	st.Merge(Partial{Email: &email, Regimes: []string{RegimeOrganic}})

	got := st.Session()
	if got.Token != "t1" || got.Username != "marcel" {
		t.Fatalf("untouched fields changed: %#v", got)
	}
	if got.Email != email {
		t.Fatalf("Email = %q, want %q", got.Email, email)
	}
	if len(got.Regimes) != 1 || got.Regimes[0] != RegimeOrganic {
		t.Fatalf("Regimes = %v, want [%s]", got.Regimes, RegimeOrganic)
	}
}
