// Package service owns the collection semantics: captures, releases,
// the companion slot, starter assignment and resets. Every mutation is
// written through to the store before returning.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/ab1manyu/PokedexChallenge/internal/game"
	"github.com/ab1manyu/PokedexChallenge/internal/model"
	"github.com/ab1manyu/PokedexChallenge/internal/pokeapi"
	"github.com/ab1manyu/PokedexChallenge/internal/store"
)

var (
	ErrAlreadyCaught = errors.New("pokemon already caught")
	ErrNotCaught     = errors.New("pokemon is not in the collection")
	// ErrStarterAssign marks a release whose deletion committed but whose
	// follow-up starter assignment failed. The collection is already empty
	// when this is returned.
	ErrStarterAssign = errors.New("starter assignment failed")
)

const starterMaxID = 151 // starters come from generation 1

type Service struct {
	store    store.Store
	catalog  *pokeapi.Client
	resolver *game.Resolver

	rngMu sync.Mutex
	rng   *rand.Rand
}

func New(st store.Store, catalog *pokeapi.Client, resolver *game.Resolver, src rand.Source) *Service {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Service{
		store:    st,
		catalog:  catalog,
		resolver: resolver,
		rng:      rand.New(src),
	}
}

// State is the loaded persistent state handed to the UI at startup.
type State struct {
	Caught    model.Collection
	Companion *model.CompanionRef
	Theme     string
}

// Load reads the persisted state. Storage failures degrade to an empty
// collection rather than failing startup. A companion that no longer
// resolves in the collection (the two records are persisted
// independently) is dropped here.
func (s *Service) Load() State {
	caught, err := s.store.Collection()
	if err != nil {
		log.Printf("load collection failed, starting empty: %v", err)
		caught = make(model.Collection)
	}
	companion, err := s.store.Companion()
	if err != nil {
		log.Printf("load companion failed: %v", err)
		companion = nil
	}
	if companion != nil {
		if _, ok := caught[companion.ID]; !ok {
			log.Printf("companion %d missing from collection, clearing", companion.ID)
			companion = nil
			if err := s.store.SaveCompanion(nil); err != nil {
				log.Printf("clear dangling companion failed: %v", err)
			}
		}
	}
	theme, err := s.store.Theme()
	if err != nil {
		log.Printf("load theme failed: %v", err)
		theme = ""
	}
	return State{Caught: caught, Companion: companion, Theme: theme}
}

// CatalogIndex returns the national index, from the store cache when
// present, fetching and caching it otherwise. The index is treated as
// static reference data.
func (s *Service) CatalogIndex(ctx context.Context) ([]model.IndexEntry, error) {
	if cached, err := s.store.CatalogIndex(); err == nil && len(cached) > 0 {
		return cached, nil
	}
	entries, err := s.catalog.Index(ctx, pokeapi.NationalDexCount)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveCatalogIndex(entries); err != nil {
		log.Printf("cache catalog index failed: %v", err)
	}
	return entries, nil
}

// Search looks up a catalog entry by name or id.
func (s *Service) Search(ctx context.Context, query string) (model.CatalogEntry, error) {
	return s.catalog.Entry(ctx, query)
}

// AttemptCapture rolls one capture attempt against the active catalog
// entry. On success the caught entry is created and persisted before
// returning; on failure nothing is mutated and the caller may retry.
func (s *Service) AttemptCapture(entry model.CatalogEntry) (game.Outcome, *model.CaughtEntry, error) {
	caught, err := s.store.Collection()
	if err != nil {
		return game.Outcome{}, nil, err
	}
	if _, ok := caught[entry.ID]; ok {
		return game.Outcome{}, nil, ErrAlreadyCaught
	}

	outcome := s.resolver.Attempt(entry.CaptureRate)
	if !outcome.Success {
		return outcome, nil, nil
	}

	newEntry := model.CaughtEntry{
		ID:       entry.ID,
		Name:     entry.Name,
		Sprite:   entry.Sprite,
		CaughtOn: time.Now().UnixMilli(),
		Ball:     outcome.Ball.Tier,
		Stats:    entry.Stats,
	}
	caught[newEntry.ID] = newEntry
	if err := s.store.SaveCollection(caught); err != nil {
		return outcome, nil, err
	}
	return outcome, &newEntry, nil
}

// Release removes a caught entry. When the companion pointed at the
// released entry it is cleared in the same call, so the caller observes
// both changes together. When the collection becomes empty the
// first-run starter flow runs again; the assigned starter is returned.
// A failed starter assignment is reported as ErrStarterAssign so
// callers can tell it apart from a failed release.
func (s *Service) Release(ctx context.Context, id int) (*model.CaughtEntry, error) {
	caught, err := s.store.Collection()
	if err != nil {
		return nil, err
	}
	if _, ok := caught[id]; !ok {
		return nil, ErrNotCaught
	}

	delete(caught, id)
	if err := s.store.SaveCollection(caught); err != nil {
		return nil, err
	}

	companion, err := s.store.Companion()
	if err == nil && companion != nil && companion.ID == id {
		if err := s.store.SaveCompanion(nil); err != nil {
			return nil, err
		}
	}

	if len(caught) == 0 {
		starter, err := s.AssignStarter(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStarterAssign, err)
		}
		return &starter, nil
	}
	return nil, nil
}

// SetCompanion designates a caught entry as the active buddy.
func (s *Service) SetCompanion(id int) (*model.CompanionRef, error) {
	caught, err := s.store.Collection()
	if err != nil {
		return nil, err
	}
	entry, ok := caught[id]
	if !ok {
		return nil, ErrNotCaught
	}
	ref := &model.CompanionRef{ID: entry.ID, Name: entry.Name}
	if err := s.store.SaveCompanion(ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// AssignStarter captures a random generation-1 pokémon and makes it the
// companion. Runs on first start, after a reset, and when the last
// entry is released.
func (s *Service) AssignStarter(ctx context.Context) (model.CaughtEntry, error) {
	s.rngMu.Lock()
	id := s.rng.Intn(starterMaxID) + 1
	s.rngMu.Unlock()

	entry, err := s.catalog.Entry(ctx, strconv.Itoa(id))
	if err != nil {
		return model.CaughtEntry{}, err
	}

	starter := model.CaughtEntry{
		ID:       entry.ID,
		Name:     entry.Name,
		Sprite:   entry.Sprite,
		CaughtOn: time.Now().UnixMilli(),
		Stats:    entry.Stats,
	}

	caught, err := s.store.Collection()
	if err != nil {
		caught = make(model.Collection)
	}
	caught[starter.ID] = starter
	if err := s.store.SaveCollection(caught); err != nil {
		return model.CaughtEntry{}, err
	}
	if err := s.store.SaveCompanion(&model.CompanionRef{ID: starter.ID, Name: starter.Name}); err != nil {
		return model.CaughtEntry{}, err
	}
	return starter, nil
}

// ResetAll clears the persisted collection and companion and reruns the
// first-run starter flow.
func (s *Service) ResetAll(ctx context.Context) (model.CaughtEntry, error) {
	if err := s.store.Reset(); err != nil {
		return model.CaughtEntry{}, err
	}
	return s.AssignStarter(ctx)
}

// SaveTheme persists the UI theme id.
func (s *Service) SaveTheme(theme string) {
	if err := s.store.SaveTheme(theme); err != nil {
		log.Printf("save theme failed: %v", err)
	}
}

// Collection reads the current collection from the store.
func (s *Service) Collection() (model.Collection, error) {
	return s.store.Collection()
}

// Companion reads the current companion from the store.
func (s *Service) Companion() (*model.CompanionRef, error) {
	return s.store.Companion()
}
