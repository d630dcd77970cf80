package game

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ab1manyu/PokedexChallenge/internal/model"
	"github.com/ab1manyu/PokedexChallenge/internal/pokeapi"
)

// SortOrder selects how a derived pokédex list is ordered.
type SortOrder string

const (
	SortIDAsc    SortOrder = "dex_asc"
	SortIDDesc   SortOrder = "dex_desc"
	SortNameAsc  SortOrder = "name_asc"
	SortNameDesc SortOrder = "name_desc"
	SortCaughtOn SortOrder = "caught_on"
)

// Generation filters the list to one generation's id range. GenAll
// keeps everything.
type Generation string

const GenAll Generation = "all"

// Inclusive national dex id ranges per generation.
var GenRanges = map[Generation][2]int{
	"1": {1, 151},
	"2": {152, 251},
	"3": {252, 386},
	"4": {387, 493},
	"5": {494, 649},
	"6": {650, 721},
	"7": {722, 809},
	"8": {810, 905},
	"9": {906, 1025},
}

// PageSize is the fixed page size of the pokédex grid.
const PageSize = 30

// DeriveList merges the catalog index with the collection's capture
// status, then filters and sorts. It is a pure function of its inputs:
// no argument is mutated and calling it twice yields identical output.
func DeriveList(index []model.IndexEntry, caught model.Collection, gen Generation, order SortOrder) []model.DerivedListItem {
	items := make([]model.DerivedListItem, 0, len(index))
	for _, ie := range index {
		item := model.DerivedListItem{
			ID:     ie.ID,
			Name:   ie.Name,
			Sprite: pokeapi.SilhouetteSprite(ie.ID),
		}
		if entry, ok := caught[ie.ID]; ok {
			item.Caught = true
			item.CaughtOn = entry.CaughtOn
			item.Ball = entry.Ball
			item.Stats = entry.Stats
			if entry.Sprite != "" {
				item.Sprite = entry.Sprite
			}
		}
		items = append(items, item)
	}

	if bounds, ok := GenRanges[gen]; ok {
		filtered := items[:0]
		for _, item := range items {
			if item.ID >= bounds[0] && item.ID <= bounds[1] {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	switch order {
	case SortIDDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	case SortNameAsc:
		c := newNameCollator()
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Name, items[j].Name) < 0
		})
	case SortNameDesc:
		c := newNameCollator()
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Name, items[j].Name) > 0
		})
	case SortCaughtOn:
		// Most recently caught first, uncaught at the end in their
		// original relative order.
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].CaughtOn, items[j].CaughtOn
			if a > 0 && b > 0 {
				return a > b
			}
			return a > 0 && b == 0
		})
	default:
		// SortIDAsc: the index is already in national dex order.
	}

	return items
}

func newNameCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// OwnedList is the "owned" tab: caught entries only, ordered by id.
func OwnedList(caught model.Collection) []model.DerivedListItem {
	items := make([]model.DerivedListItem, 0, len(caught))
	for _, entry := range caught {
		items = append(items, model.DerivedListItem{
			ID:       entry.ID,
			Name:     entry.Name,
			Caught:   true,
			Sprite:   entry.Sprite,
			CaughtOn: entry.CaughtOn,
			Ball:     entry.Ball,
			Stats:    entry.Stats,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// Paginate clamps page to [1, ceil(len/pageSize)] and returns that
// page's slice along with the clamped page number and page count.
func Paginate(items []model.DerivedListItem, page, pageSize int) ([]model.DerivedListItem, int, int) {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page, totalPages
}
