package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// run executes the CLI against a file store in dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	root, a := newRootCmd()
	var out bytes.Buffer
	a.out = &out

	base := []string{
		"--quiet",
		"--log-file", "stderr",
		"--store", "file",
		"--store-path", filepath.Join(dir, "store"),
		"--media-dir", filepath.Join(dir, "media"),
	}
	root.SetArgs(append(base, args...))
	err := root.Execute()
	require.NoError(t, a.teardown())
	return out.String(), err
}

func TestAddThenListAndShow(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "add",
		"--name", "Clam Chowder",
		"--instructions", "Simmer gently.",
		"--area", "American",
		"--ingredient", "Clams=1kg",
		"--ingredient", "2 cups milk",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Success")
	assert.Contains(t, out, "Your recipe has been added successfully!")

	var id string
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "id: "); ok {
			id = rest
		}
	}
	require.NotEmpty(t, id)

	out, err = run(t, dir, "list", "--json")
	require.NoError(t, err)
	var listed []summaryJSON
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.NotEmpty(t, listed)
	last := listed[len(listed)-1]
	assert.Equal(t, id, last.ID)
	assert.Equal(t, "Seafood", last.Category)
	assert.True(t, last.IsCustom)

	out, err = run(t, dir, "show", id, "--json")
	require.NoError(t, err)
	var got domain.Recipe
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []domain.Ingredient{
		{Name: "Clams", Measure: "1kg"},
		{Name: "milk", Measure: "2 cups"},
	}, got.Ingredients)

	out, err = run(t, dir, "list", "chowder")
	require.NoError(t, err)
	assert.Contains(t, out, "Clam Chowder")
	assert.Contains(t, out, "1 mine")
}

func TestAddValidationFailureIsReported(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "add", "--instructions", "Stir.", "--ingredient", "Rice")
	require.Error(t, err)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Please enter a name for the recipe")

	out, err = run(t, dir, "list", "--json")
	require.NoError(t, err)
	var listed []summaryJSON
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	for _, r := range listed {
		assert.False(t, r.IsCustom)
	}
}

func TestAddWithImage(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "chowder.png")
	f, err := os.Create(photo)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 1200, 600))))
	require.NoError(t, f.Close())

	out, err := run(t, dir, "add",
		"--name", "Chowder",
		"--instructions", "Simmer.",
		"--ingredient", "Clams",
		"--image", photo,
	)
	require.NoError(t, err)

	id := strings.TrimSpace(out[strings.LastIndex(out, "id: ")+len("id: "):])
	out, err = run(t, dir, "show", id, "--json")
	require.NoError(t, err)
	var got domain.Recipe
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, strings.HasPrefix(got.ImageURI, "file://"), got.ImageURI)
	assert.Contains(t, got.ImageURI, filepath.ToSlash(filepath.Join(dir, "media")))
	assert.True(t, strings.HasSuffix(got.ImageURI, "-800x400.jpg"), got.ImageURI)
}

func TestShowUnknownRecipe(t *testing.T) {
	_, err := run(t, t.TempDir(), "show", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no recipe with id "nope"`)
	assert.NotErrorIs(t, err, errReported)
}

func TestListSeedRecipes(t *testing.T) {
	out, err := run(t, t.TempDir(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Garlic Shrimp")
	assert.Contains(t, out, "(0 mine)")
}
