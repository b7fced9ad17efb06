package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortCommit(t *testing.T) {
	assert.Equal(t, "0123abcd", ShortCommit("0123abcdef456789"))
	assert.Equal(t, "abc", ShortCommit("abc"))
	assert.Equal(t, "", ShortCommit("unknown"))
	assert.Equal(t, "", ShortCommit(""))
}

func TestGetModuleBuildInfoLdflags(t *testing.T) {
	oldVersion, oldCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldVersion, oldCommit })

	Version, GitCommit = "v1.2.0", "deadbeefcafe"

	version, commit, ok := GetModuleBuildInfo()
	assert.True(t, ok)
	assert.Equal(t, "v1.2.0", version)
	assert.Equal(t, "deadbeefcafe", commit)
}
