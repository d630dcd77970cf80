package store

import "github.com/ab1manyu/PokedexChallenge/internal/model"

// Store persists the player's local state. The four records are
// independent: a crash between two Save calls can leave them out of
// sync, so loaders must not assume the companion still resolves in the
// collection.
type Store interface {
	Collection() (model.Collection, error)
	SaveCollection(c model.Collection) error

	Companion() (*model.CompanionRef, error)
	SaveCompanion(ref *model.CompanionRef) error

	Theme() (string, error)
	SaveTheme(theme string) error

	CatalogIndex() ([]model.IndexEntry, error)
	SaveCatalogIndex(entries []model.IndexEntry) error

	// Reset clears the collection and companion records. Theme and the
	// cached catalog index survive a reset.
	Reset() error
}
