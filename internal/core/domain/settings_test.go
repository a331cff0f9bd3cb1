package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, DefaultConcurrency, s.Concurrency)
	assert.Equal(t, DefaultNotionRate, s.NotionRate)
	assert.Equal(t, DefaultListenAddr, s.ListenAddr)
}

func TestSettings_ValidateNotion(t *testing.T) {
	valid := DefaultSettings()
	valid.NotionToken = "secret"
	valid.NotionDatabaseID = "db"

	t.Run("complete", func(t *testing.T) {
		assert.NoError(t, valid.ValidateNotion())
	})

	t.Run("missing both", func(t *testing.T) {
		err := DefaultSettings().ValidateNotion()

		assert.True(t, errors.Is(err, ErrConfigMissing))
		assert.Contains(t, err.Error(), "notion token")
		assert.Contains(t, err.Error(), "notion database id")
	})

	for _, r := range []float64{0, -2} {
		t.Run(fmt.Sprintf("rate %g", r), func(t *testing.T) {
			s := valid
			s.NotionRate = r

			err := s.ValidateNotion()

			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), "notion rate")
		})
	}
}

func TestSettings_ValidateReconcile(t *testing.T) {
	valid := DefaultSettings()
	valid.NotionToken = "secret"
	valid.NotionDatabaseID = "db"
	valid.GitHubToken = "ghp"
	valid.Repository = RepoRef{Owner: "octo", Name: "hello"}

	t.Run("complete", func(t *testing.T) {
		assert.NoError(t, valid.ValidateReconcile())
	})

	t.Run("missing github token and repository", func(t *testing.T) {
		s := valid
		s.GitHubToken = ""
		s.Repository = RepoRef{}

		err := s.ValidateReconcile()

		assert.True(t, errors.Is(err, ErrConfigMissing))
		assert.Contains(t, err.Error(), "github token")
		assert.Contains(t, err.Error(), "repository")
	})

	t.Run("zero concurrency", func(t *testing.T) {
		s := valid
		s.Concurrency = 0

		assert.True(t, errors.Is(s.ValidateReconcile(), ErrInvalidInput))
	})
}
