package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/sgrep/internal/lang"
	"github.com/oxhq/sgrep/internal/search"
)

func TestKindSelection(t *testing.T) {
	kinds, err := kindSelection("identifier")
	require.NoError(t, err)
	assert.Equal(t, search.Kinds{Identifier: true}, kinds)

	kinds, err = kindSelection("comment, string ,identifier")
	require.NoError(t, err)
	assert.Equal(t, search.Kinds{Comment: true, String: true, Identifier: true}, kinds)

	_, err = kindSelection("comment,function")
	require.Error(t, err)

	_, err = kindSelection("")
	require.Error(t, err)
}

func TestCaptureFilters(t *testing.T) {
	filters, err := captureFilters(nil)
	require.NoError(t, err)
	assert.Nil(t, filters)

	filters, err = captureFilters([]string{"id=main", "@name=x=y"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "main", "name": "x=y"}, filters)

	_, err = captureFilters([]string{"novalue"})
	require.Error(t, err)
	_, err = captureFilters([]string{"=v"})
	require.Error(t, err)
}

func TestCasePolicy(t *testing.T) {
	policy, err := casePolicy(&options{})
	require.NoError(t, err)
	assert.Equal(t, search.CaseSmart, policy)

	policy, err = casePolicy(&options{sensitive: true})
	require.NoError(t, err)
	assert.Equal(t, search.CaseSensitive, policy)

	policy, err = casePolicy(&options{insens: true})
	require.NoError(t, err)
	assert.Equal(t, search.CaseInsensitive, policy)

	_, err = casePolicy(&options{sensitive: true, insens: true})
	require.Error(t, err)
}

func TestSplitArgs(t *testing.T) {
	pattern, path, err := splitArgs(&options{}, []string{"needle"})
	require.NoError(t, err)
	assert.Equal(t, "needle", pattern)
	assert.Equal(t, ".", path)

	pattern, path, err = splitArgs(&options{}, []string{"needle", "src"})
	require.NoError(t, err)
	assert.Equal(t, "needle", pattern)
	assert.Equal(t, "src", path)

	_, _, err = splitArgs(&options{}, nil)
	require.Error(t, err)
	_, _, err = splitArgs(&options{}, []string{""})
	require.Error(t, err)

	pattern, path, err = splitArgs(&options{query: "(x) @n"}, []string{"src"})
	require.NoError(t, err)
	assert.Empty(t, pattern)
	assert.Equal(t, "src", path)

	_, _, err = splitArgs(&options{query: "(x) @n"}, []string{"a", "b"})
	require.Error(t, err)
}

func TestSelectLanguage(t *testing.T) {
	registry := lang.NewRegistry()

	l, err := selectLanguage(&options{language: "go"}, registry)
	require.NoError(t, err)
	assert.Equal(t, "go", l.Name)

	_, err = selectLanguage(&options{language: "cobol"}, registry)
	require.ErrorIs(t, err, lang.ErrUnknownLanguage)

	_, err = selectLanguage(&options{}, registry)
	require.Error(t, err)
}

func TestBuildModePattern(t *testing.T) {
	registry := lang.NewRegistry()
	goLang, err := registry.Lookup("go")
	require.NoError(t, err)

	mode, err := buildMode(&options{}, goLang, "Needle")
	require.NoError(t, err)
	require.NotNil(t, mode.pattern)
	assert.True(t, mode.pattern.CaseSensitive)
	assert.Equal(t, "Needle", mode.pattern.Text)

	// Pattern-mode capture filters are a user error.
	_, err = buildMode(&options{captures: []string{"id=x"}}, goLang, "n")
	require.Error(t, err)
}

func TestBuildModeQuery(t *testing.T) {
	registry := lang.NewRegistry()
	goLang, err := registry.Lookup("go")
	require.NoError(t, err)

	mode, err := buildMode(&options{query: "(function_declaration name: (identifier) @id)"}, goLang, "")
	require.NoError(t, err)
	require.NotNil(t, mode.query)
	assert.Equal(t, []string{"id"}, mode.query.CaptureNames())

	// A query without captures gets a whole-node capture appended.
	mode, err = buildMode(&options{query: "(function_declaration)"}, goLang, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"node"}, mode.query.CaptureNames())

	// Broken query syntax aborts before anything is searched.
	_, err = buildMode(&options{query: "(function_declaration"}, goLang, "")
	require.Error(t, err)
}
