// Package pokeapi is the catalog provider boundary: it talks to the
// public PokéAPI and normalizes its responses into model types once,
// here, so nothing downstream touches raw provider field shapes.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ab1manyu/PokedexChallenge/internal/model"
)

const (
	defaultBaseURL = "https://pokeapi.co/api/v2"
	spriteBaseURL  = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/"

	// NationalDexCount is the size of the national catalog index.
	NationalDexCount = 1025

	fallbackDescription = "No description available."
)

var ErrNotFound = errors.New("pokemon not found")

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	cacheMu sync.RWMutex
	cache   map[int]model.CatalogEntry
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      make(map[int]model.CatalogEntry),
	}
}

// wire shapes, decoded once at this boundary

type pokemonPayload struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		BackDefault  string `json:"back_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Species struct {
		URL string `json:"url"`
	} `json:"species"`
}

type speciesPayload struct {
	CaptureRate       int `json:"capture_rate"`
	FlavorTextEntries []struct {
		FlavorText string `json:"flavor_text"`
		Language   struct {
			Name string `json:"name"`
		} `json:"language"`
	} `json:"flavor_text_entries"`
}

type indexPayload struct {
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

// Pokemon looks up one catalog entry by name or numeric id. The result
// carries identity, sprites and base stats; capture rate and
// description require the Species follow-up.
func (c *Client) Pokemon(ctx context.Context, key string) (model.CatalogEntry, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return model.CatalogEntry{}, ErrNotFound
	}

	var payload pokemonPayload
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+key, &payload); err != nil {
		return model.CatalogEntry{}, err
	}

	entry := model.CatalogEntry{
		ID:          payload.ID,
		Name:        payload.Name,
		Sprite:      payload.Sprites.FrontDefault,
		BackSprite:  payload.Sprites.BackDefault,
		SpeciesURL:  payload.Species.URL,
		CaptureRate: -1,
	}
	if entry.Sprite == "" {
		entry.Sprite = payload.Sprites.Other.OfficialArtwork.FrontDefault
	}
	if entry.BackSprite == "" {
		entry.BackSprite = spriteBaseURL + "back/" + strconv.Itoa(entry.ID) + ".png"
	}
	for _, s := range payload.Stats {
		entry.Stats = append(entry.Stats, model.Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	return entry, nil
}

// Species fills in the capture rate and English description for an
// entry returned by Pokemon. Line and page break characters inside the
// flavor text are collapsed to spaces.
func (c *Client) Species(ctx context.Context, entry model.CatalogEntry) (model.CatalogEntry, error) {
	url := strings.TrimSpace(entry.SpeciesURL)
	if url == "" {
		url = c.baseURL + "/pokemon-species/" + strconv.Itoa(entry.ID)
	}

	var payload speciesPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return entry, err
	}

	entry.CaptureRate = payload.CaptureRate
	entry.Description = fallbackDescription
	for _, fte := range payload.FlavorTextEntries {
		if fte.Language.Name == "en" {
			entry.Description = collapseBreaks(fte.FlavorText)
			break
		}
	}
	return entry, nil
}

// Entry runs the two-step lookup pipeline (pokemon, then species) and
// caches the merged result by id for the rest of the session. The
// species step is skipped when the first step fails.
func (c *Client) Entry(ctx context.Context, key string) (model.CatalogEntry, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(key)); err == nil {
		if entry, ok := c.cached(id); ok {
			return entry, nil
		}
	}

	entry, err := c.Pokemon(ctx, key)
	if err != nil {
		return model.CatalogEntry{}, err
	}
	if cached, ok := c.cached(entry.ID); ok {
		return cached, nil
	}

	entry, err = c.Species(ctx, entry)
	if err != nil {
		return model.CatalogEntry{}, err
	}

	c.cacheMu.Lock()
	c.cache[entry.ID] = entry
	c.cacheMu.Unlock()
	return entry, nil
}

// Index fetches the ordered national catalog. Ids are positional: the
// provider returns the list in national dex order.
func (c *Client) Index(ctx context.Context, limit int) ([]model.IndexEntry, error) {
	if limit <= 0 {
		limit = NationalDexCount
	}

	var payload indexPayload
	url := fmt.Sprintf("%s/pokemon?limit=%d", c.baseURL, limit)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	entries := make([]model.IndexEntry, 0, len(payload.Results))
	for i, r := range payload.Results {
		entries = append(entries, model.IndexEntry{ID: i + 1, Name: r.Name})
	}
	return entries, nil
}

// SilhouetteSprite is the placeholder image reference shown for
// uncaught entries.
func SilhouetteSprite(id int) string {
	return spriteBaseURL + strconv.Itoa(id) + ".png"
}

func (c *Client) cached(id int) (model.CatalogEntry, bool) {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	entry, ok := c.cache[id]
	return entry, ok
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pokeapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pokeapi returned status %d for %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode pokeapi response: %w", err)
	}
	return nil
}

var breakReplacer = strings.NewReplacer("\n", " ", "\f", " ")

func collapseBreaks(s string) string {
	return strings.Join(strings.Fields(breakReplacer.Replace(s)), " ")
}
