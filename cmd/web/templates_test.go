package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_newTemplateCache(t *testing.T) {
	cache, err := newTemplateCache("../../ui/templates")
	require.NoError(t, err)

	for _, page := range []string{
		"home", "interview", "results", "history", "historydetail", "login", "signup",
	} {
		pageTemplate, ok := cache[page]
		require.True(t, ok, "page %q missing from cache", page)
		assert.NotNil(t, pageTemplate.Lookup("base"), "page %q lacks the base wrapper", page)
		assert.NotNil(t, pageTemplate.Lookup("page"), "page %q lacks a page template", page)
	}

	assert.NotNil(t, cache["interview"].Lookup("panel"), "interview page lacks the htmx fragment")
}
