package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apsidal/burnbar/internal/cli"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version)
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version)
		assert.NotNil(t, root)
		assert.Equal(t, "burnbar", root.Use)
	})
}
