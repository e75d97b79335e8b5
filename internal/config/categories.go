package config

import (
	"fmt"

	"github.com/Veraticus/feedback-topics/internal/classification"
	"github.com/spf13/viper"
)

// CategoriesKey is the config section holding category overrides.
const CategoriesKey = "categories"

// LoadRegistry builds the category registry: the built-in tables, with any
// language configured under "categories" replacing its built-in table.
//
//	categories:
//	  es:
//	    servicio:
//	      keywords: [servicio, atención]
//	      phrases: [mal servicio]
func LoadRegistry(v *viper.Viper) (*classification.Registry, error) {
	tables := classification.DefaultTables()

	if v.IsSet(CategoriesKey) {
		var cfg classification.TablesConfig
		if err := v.UnmarshalKey(CategoriesKey, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s config: %w", CategoriesKey, err)
		}

		overrides, err := classification.TablesFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		tables = classification.MergeTables(tables, overrides)
	}

	registry, err := classification.NewRegistry(tables...)
	if err != nil {
		return nil, fmt.Errorf("invalid category configuration: %w", err)
	}
	return registry, nil
}
