package model

// Stat is a single base stat as reported by the catalog.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// BallTier identifies the kind of ball a capture was attempted with.
type BallTier string

const (
	BallBasic BallTier = "pokeball"
	BallGreat BallTier = "greatball"
	BallUltra BallTier = "ultraball"
)

// CaughtEntry is one captured pokémon in the player's collection.
// Entries are created on a successful capture and never mutated
// afterwards; release deletes them.
type CaughtEntry struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Sprite   string   `json:"sprite"`
	CaughtOn int64    `json:"caught_on"` // epoch millis
	Ball     BallTier `json:"ball,omitempty"`
	Stats    []Stat   `json:"stats,omitempty"`
}

// CompanionRef points at the caught entry designated as the active buddy.
type CompanionRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Collection is the locally persisted set of caught entries, keyed by
// national dex id.
type Collection map[int]CaughtEntry

// CatalogEntry is the static reference data for one species, as served
// by the catalog provider. Immutable once fetched.
type CatalogEntry struct {
	ID          int
	Name        string
	Sprite      string
	BackSprite  string
	Stats       []Stat
	SpeciesURL  string
	CaptureRate int // 0..255
	Description string
}

// IndexEntry is one row of the national catalog index.
type IndexEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DerivedListItem is one row of the rendered pokédex list: the catalog
// index merged with capture status. Recomputed on demand, never
// persisted.
type DerivedListItem struct {
	ID       int
	Name     string
	Caught   bool
	Sprite   string // real sprite when caught, silhouette placeholder otherwise
	CaughtOn int64  // epoch millis, zero when uncaught
	Ball     BallTier
	Stats    []Stat
}
