package memory

import (
	"io"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Seed is the catalog and patron data a memory store starts with.
type Seed struct {
	Items   []model.CatalogItem `json:"items"`
	Patrons []model.Patron      `json:"patrons"`
}

// LoadSeed reads a JSON Seed document and stores its items and patrons.
// Items without a status start available, patrons without one start active.
func (s *Store) LoadSeed(r io.Reader) (Seed, error) {
	var seed Seed
	if err := jsoniter.NewDecoder(r).Decode(&seed); err != nil {
		return Seed{}, errors.Wrap(err, "decode seed")
	}
	for i := range seed.Items {
		if seed.Items[i].Status == "" {
			seed.Items[i].Status = model.ItemAvailable
		}
		s.PutCatalogItem(seed.Items[i])
	}
	for i := range seed.Patrons {
		if seed.Patrons[i].Status == "" {
			seed.Patrons[i].Status = model.PatronActive
		}
		s.PutPatron(seed.Patrons[i])
	}
	return seed, nil
}
