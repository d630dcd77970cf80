package pokeapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ab1manyu/PokedexChallenge/internal/pokeapi"
)

const pikachuJSON = `{
	"id": 25,
	"name": "pikachu",
	"sprites": {
		"front_default": "https://img.example/25-front.png",
		"back_default": "https://img.example/25-back.png",
		"other": {"official-artwork": {"front_default": "https://img.example/25-art.png"}}
	},
	"stats": [
		{"base_stat": 35, "stat": {"name": "hp"}},
		{"base_stat": 90, "stat": {"name": "speed"}}
	],
	"species": {"url": "%s/pokemon-species/25"}
}`

const pikachuSpeciesJSON = `{
	"capture_rate": 190,
	"flavor_text_entries": [
		{"flavor_text": "Texto en español.", "language": {"name": "es"}},
		{"flavor_text": "When several of\nthese POKéMON\fgather, their\nelectricity could build.", "language": {"name": "en"}}
	]
}`

func newTestServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/pokemon/pikachu", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		fmt.Fprintf(w, pikachuJSON, srv.URL)
	})
	mux.HandleFunc("/pokemon/25", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		fmt.Fprintf(w, pikachuJSON, srv.URL)
	})
	mux.HandleFunc("/pokemon-species/25", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pikachuSpeciesJSON)
	})
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [
			{"name": "bulbasaur", "url": "u/1/"},
			{"name": "ivysaur", "url": "u/2/"},
			{"name": "venusaur", "url": "u/3/"}
		]}`)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestEntryTwoStepLookup(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	client := pokeapi.NewClient(pokeapi.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})

	entry, err := client.Entry(context.Background(), "Pikachu")
	if err != nil {
		t.Fatalf("Entry() error = %v", err)
	}
	if entry.ID != 25 || entry.Name != "pikachu" {
		t.Fatalf("Entry() identity = %d %q", entry.ID, entry.Name)
	}
	if entry.Sprite != "https://img.example/25-front.png" {
		t.Errorf("Entry() sprite = %q", entry.Sprite)
	}
	if entry.CaptureRate != 190 {
		t.Errorf("Entry() capture rate = %d, want 190", entry.CaptureRate)
	}
	want := "When several of these POKéMON gather, their electricity could build."
	if entry.Description != want {
		t.Errorf("Entry() description = %q, want %q", entry.Description, want)
	}
	if len(entry.Stats) != 2 || entry.Stats[1].Name != "speed" || entry.Stats[1].Value != 90 {
		t.Errorf("Entry() stats = %+v", entry.Stats)
	}
}

func TestEntryCachesByID(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	client := pokeapi.NewClient(pokeapi.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})

	if _, err := client.Entry(context.Background(), "pikachu"); err != nil {
		t.Fatalf("Entry() error = %v", err)
	}
	if _, err := client.Entry(context.Background(), "25"); err != nil {
		t.Fatalf("Entry() by id error = %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("pokemon endpoint hit %d times, want 1 (second lookup should be a cache hit)", got)
	}
}

func TestEntryNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	client := pokeapi.NewClient(pokeapi.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})

	if _, err := client.Entry(context.Background(), "missingno"); !errors.Is(err, pokeapi.ErrNotFound) {
		t.Fatalf("Entry(missingno) error = %v, want ErrNotFound", err)
	}
	if _, err := client.Entry(context.Background(), "   "); !errors.Is(err, pokeapi.ErrNotFound) {
		t.Fatalf("Entry(blank) error = %v, want ErrNotFound", err)
	}
}

func TestIndexAssignsPositionalIDs(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	client := pokeapi.NewClient(pokeapi.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})

	entries, err := client.Index(context.Background(), 3)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Index() returned %d entries, want 3", len(entries))
	}
	for i, want := range []string{"bulbasaur", "ivysaur", "venusaur"} {
		if entries[i].ID != i+1 || entries[i].Name != want {
			t.Errorf("Index()[%d] = %+v, want {%d %s}", i, entries[i], i+1, want)
		}
	}
}

func TestSilhouetteSprite(t *testing.T) {
	t.Parallel()

	got := pokeapi.SilhouetteSprite(25)
	want := "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/25.png"
	if got != want {
		t.Fatalf("SilhouetteSprite(25) = %q, want %q", got, want)
	}
}
