package api

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/gemchat/internal/models"
)

//go:embed countries.yaml
var countriesYAML []byte

var (
	countriesOnce sync.Once
	countriesList []models.Country
	countriesErr  error
)

// Countries returns the dialing-code reference list. The data is static and
// embedded; only the simulated latency makes this look like a network call.
func (s *Service) Countries(ctx context.Context) ([]models.Country, error) {
	if err := s.wait(ctx, countriesLatency); err != nil {
		return nil, err
	}

	countriesOnce.Do(func() {
		countriesErr = yaml.Unmarshal(countriesYAML, &countriesList)
	})
	if countriesErr != nil {
		return nil, fmt.Errorf("decode country list: %w", countriesErr)
	}

	out := make([]models.Country, len(countriesList))
	copy(out, countriesList)
	return out, nil
}
