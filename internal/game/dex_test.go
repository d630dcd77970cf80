package game_test

import (
	"reflect"
	"testing"

	"github.com/ab1manyu/PokedexChallenge/internal/game"
	"github.com/ab1manyu/PokedexChallenge/internal/model"
	"github.com/ab1manyu/PokedexChallenge/internal/pokeapi"
)

func testIndex() []model.IndexEntry {
	return []model.IndexEntry{
		{ID: 1, Name: "bulbasaur"},
		{ID: 4, Name: "charmander"},
		{ID: 7, Name: "squirtle"},
		{ID: 25, Name: "pikachu"},
		{ID: 150, Name: "mewtwo"},
		{ID: 152, Name: "chikorita"},
	}
}

func testCollection() model.Collection {
	return model.Collection{
		1: {ID: 1, Name: "bulbasaur", Sprite: "sprites/1.png", CaughtOn: 300},
		4: {ID: 4, Name: "charmander", Sprite: "sprites/4.png", CaughtOn: 100},
		7: {ID: 7, Name: "squirtle", Sprite: "sprites/7.png", CaughtOn: 200},
	}
}

func TestDeriveListIsPureAndIdempotent(t *testing.T) {
	t.Parallel()

	index := testIndex()
	caught := testCollection()
	indexBefore := append([]model.IndexEntry(nil), index...)

	first := game.DeriveList(index, caught, "1", game.SortNameAsc)
	second := game.DeriveList(index, caught, "1", game.SortNameAsc)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("DeriveList is not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
	if !reflect.DeepEqual(index, indexBefore) {
		t.Fatalf("DeriveList mutated its index input")
	}
	if len(caught) != 3 {
		t.Fatalf("DeriveList mutated its collection input")
	}
}

func TestDeriveListIDAscFollowsCatalogOrder(t *testing.T) {
	t.Parallel()

	items := game.DeriveList(testIndex(), testCollection(), game.GenAll, game.SortIDAsc)
	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].ID <= items[i-1].ID {
			t.Fatalf("ids not strictly increasing at %d: %d then %d", i, items[i-1].ID, items[i].ID)
		}
	}
}

func TestDeriveListGenerationFilterAndCaptureStatus(t *testing.T) {
	t.Parallel()

	items := game.DeriveList(testIndex(), testCollection(), "1", game.SortNameAsc)

	caughtIDs := map[int]bool{}
	for _, item := range items {
		if item.ID > 151 {
			t.Fatalf("generation-1 filter leaked id %d", item.ID)
		}
		if item.Caught {
			caughtIDs[item.ID] = true
			if item.Sprite == pokeapi.SilhouetteSprite(item.ID) {
				t.Fatalf("caught item %d should use its real sprite", item.ID)
			}
		} else {
			if item.Sprite != pokeapi.SilhouetteSprite(item.ID) {
				t.Fatalf("uncaught item %d should use the silhouette sprite", item.ID)
			}
			if item.CaughtOn != 0 {
				t.Fatalf("uncaught item %d has a capture timestamp", item.ID)
			}
		}
	}
	if !reflect.DeepEqual(caughtIDs, map[int]bool{1: true, 4: true, 7: true}) {
		t.Fatalf("expected exactly ids 1,4,7 caught, got %v", caughtIDs)
	}

	// nameAscending over the caught subset: bulbasaur, charmander, squirtle
	var caughtNames []string
	for _, item := range items {
		if item.Caught {
			caughtNames = append(caughtNames, item.Name)
		}
	}
	want := []string{"bulbasaur", "charmander", "squirtle"}
	if !reflect.DeepEqual(caughtNames, want) {
		t.Fatalf("caught names = %v, want %v", caughtNames, want)
	}
}

func TestDeriveListNameSort(t *testing.T) {
	t.Parallel()

	items := game.DeriveList(testIndex(), nil, game.GenAll, game.SortNameAsc)
	want := []string{"bulbasaur", "charmander", "chikorita", "mewtwo", "pikachu", "squirtle"}
	var got []string
	for _, item := range items {
		got = append(got, item.Name)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("nameAscending order = %v, want %v", got, want)
	}

	items = game.DeriveList(testIndex(), nil, game.GenAll, game.SortNameDesc)
	got = got[:0]
	for _, item := range items {
		got = append(got, item.Name)
	}
	for i := range want {
		if got[i] != want[len(want)-1-i] {
			t.Fatalf("nameDescending order = %v", got)
		}
	}
}

func TestDeriveListCaughtOnSort(t *testing.T) {
	t.Parallel()

	items := game.DeriveList(testIndex(), testCollection(), game.GenAll, game.SortCaughtOn)

	// timestamped first, most recent first: 1 (300), 7 (200), 4 (100)
	wantHead := []int{1, 7, 4}
	for i, id := range wantHead {
		if items[i].ID != id {
			t.Fatalf("position %d = id %d, want %d", i, items[i].ID, id)
		}
	}
	// untimestamped keep their original relative order
	wantTail := []int{25, 150, 152}
	for i, id := range wantTail {
		if items[3+i].ID != id {
			t.Fatalf("uncaught position %d = id %d, want %d", i, items[3+i].ID, id)
		}
	}
}

func TestOwnedListSortedByID(t *testing.T) {
	t.Parallel()

	items := game.OwnedList(testCollection())
	if len(items) != 3 {
		t.Fatalf("expected 3 owned items, got %d", len(items))
	}
	for i, id := range []int{1, 4, 7} {
		if items[i].ID != id || !items[i].Caught {
			t.Fatalf("owned item %d = %+v, want id %d caught", i, items[i], id)
		}
	}
}

func TestPaginateClamps(t *testing.T) {
	t.Parallel()

	items := make([]model.DerivedListItem, 65)
	for i := range items {
		items[i].ID = i + 1
	}

	page, n, total := game.Paginate(items, 2, 30)
	if n != 2 || total != 3 || len(page) != 30 || page[0].ID != 31 {
		t.Fatalf("page 2: n=%d total=%d len=%d first=%d", n, total, len(page), page[0].ID)
	}

	page, n, _ = game.Paginate(items, 0, 30)
	if n != 1 || page[0].ID != 1 {
		t.Fatalf("page below range should clamp to 1, got %d", n)
	}

	page, n, _ = game.Paginate(items, 9, 30)
	if n != 3 || len(page) != 5 || page[0].ID != 61 {
		t.Fatalf("page above range should clamp to last, got n=%d len=%d", n, len(page))
	}

	page, n, total = game.Paginate(nil, 5, 30)
	if n != 1 || total != 1 || len(page) != 0 {
		t.Fatalf("empty list: n=%d total=%d len=%d", n, total, len(page))
	}
}
