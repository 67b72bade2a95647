package domain

import "testing"

func TestDreamByID(t *testing.T) {
	d, ok := DreamByID("fitness")
	if !ok {
		t.Fatal("fitness should exist in the catalog")
	}
	if d.Title != "Health & Vitality" {
		t.Fatalf("unexpected title: %s", d.Title)
	}
	if _, ok := DreamByID("nonsense"); ok {
		t.Fatal("unknown id should not resolve")
	}
}

func TestDreamFragmentsPreservesOrder(t *testing.T) {
	fragments := DreamFragments([]string{"career", "fitness", "bogus"})
	if len(fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(fragments))
	}
	career, _ := DreamByID("career")
	fitness, _ := DreamByID("fitness")
	if fragments[0] != career.Prompt || fragments[1] != fitness.Prompt {
		t.Fatalf("fragments out of order: %v", fragments)
	}
}

func TestRandomAffirmationDrawsFromPool(t *testing.T) {
	for i := 0; i < 50; i++ {
		if !IsAffirmation(RandomAffirmation()) {
			t.Fatal("affirmation not drawn from the fixed pool")
		}
	}
}
