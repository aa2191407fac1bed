package main

import (
	"testing"

	"github.com/JonMunkholm/coursecatalog/internal/config"
	"github.com/JonMunkholm/coursecatalog/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestMappingFrom(t *testing.T) {
	t.Run("defaults to positions", func(t *testing.T) {
		assert.Equal(t, core.DefaultMapping(), mappingFrom(config.CatalogConfig{}))
	})

	t.Run("named columns", func(t *testing.T) {
		m := mappingFrom(config.CatalogConfig{
			IDColumn:     "code",
			TitleColumn:  "name",
			AmountColumn: "fee",
		})
		assert.Equal(t, core.ByName("code"), m.ID)
		assert.Equal(t, core.ByName("name"), m.Title)
		assert.Equal(t, core.DefaultMapping().Prerequisites, m.Prerequisites)
		assert.Equal(t, core.ByName("fee"), m.Amount)
	})
}
