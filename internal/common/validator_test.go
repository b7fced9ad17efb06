package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"http://192.168.1.20:8000/", true},
		{"https://assets.example.com/gvrf/", true},
		{"http://localhost:8000", true},
		{"ftp://host/file", false},
		{"/relative/path", false},
		{"192.168.1.20:8000", false},
		{"", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, IsValidURL(test.input), "IsValidURL(%q)", test.input)
	}
}

func TestIsValidHost(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"192.168.1.20", true},
		{"::1", true},
		{"[fe80::1]", true},
		{"localhost", true},
		{"phone-01.lan", true},
		{"", false},
		{"-phone", false},
		{"phone_01", false},
		{"host name", false},
		{"http://phone", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, IsValidHost(test.input), "IsValidHost(%q)", test.input)
	}
}

func TestIsValidPort(t *testing.T) {
	assert.True(t, IsValidPort(1645))
	assert.True(t, IsValidPort(65535))
	assert.False(t, IsValidPort(0))
	assert.False(t, IsValidPort(-1))
	assert.False(t, IsValidPort(70000))
}
