package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion_default(t *testing.T) {
	assert.Equal(t, "dev", getVersion())
}

func TestGetVersion_ldflags(t *testing.T) {
	version = "v1.2.3"
	defer func() { version = "" }()

	assert.Equal(t, "v1.2.3", getVersion())
}
