package classify

import (
	"testing"
)

func TestClassifyKeywords(t *testing.T) {
	cases := []struct {
		path string
		want Category
	}{
		{"asset_packs/extracted/Tilesets/TilesetHouse.png", Terrain}, // "tile" outranks "house"
		{"assets/nature/big_tree_03.png", Vegetation},
		{"assets/Structures/barn.png", Buildings},
		{"sprites/characters/villager_idle.png", NPCs},
		{"packs/props/barrel.png", Decorations},
		{"assets/buildings/house.png", Buildings},
	}
	for _, c := range cases {
		if got := Classify(c.path, ""); got != c.want {
			t.Errorf("Classify(%q) = %q; want %q", c.path, got, c.want)
		}
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	if got := Classify("Assets/GROUND/Cliff.PNG", ""); got != Terrain {
		t.Errorf("got %q; want %q", got, Terrain)
	}
}

func TestClassifyFallback(t *testing.T) {
	if got := Classify("misc/unsorted/blob.png", Decorations); got != Decorations {
		t.Errorf("got %q; want fallback %q", got, Decorations)
	}
	if got := Classify("misc/unsorted/blob.png", ""); got != Terrain {
		t.Errorf("got %q; want default %q", got, Terrain)
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// The path matches both the vegetation and the npcs group; the
	// vegetation rule is tested first.
	if got := Classify("npc_sprites/tree_spirit.png", ""); got != Vegetation {
		t.Errorf("got %q; want %q", got, Vegetation)
	}
}

func TestCategoriesOrder(t *testing.T) {
	want := []Category{Terrain, Vegetation, Buildings, NPCs, Decorations}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("got %d categories; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}
