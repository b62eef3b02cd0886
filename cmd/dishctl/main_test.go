package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrecipe/internal/dish"
)

func runDishctl(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "doMain must call exitFn")
			var ok bool
			code, ok = r.(int)
			require.True(t, ok, "unexpected panic: %v", r)
		}()
		doMain(context.Background(), &out, &errOut, args, func(c int) { panic(c) })
	}()
	return code, out.String(), errOut.String()
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
	return path
}

func TestDoMain_Catalog(t *testing.T) {
	code, out, _ := runDishctl(t, "catalog")
	require.Equal(t, 0, code)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, dish.Default().Names(), names)
}

func TestDoMain_Inspect(t *testing.T) {
	path := writePNG(t, t.TempDir(), "ten.png", 10, 10)

	code, out, _ := runDishctl(t, "inspect", path)
	require.Equal(t, 0, code)

	var got inspectResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, path, got.Path)
	assert.Equal(t, 10, got.Width)
	assert.Equal(t, 10, got.Height)
	assert.Equal(t, "PNG", got.Format)
	assert.Equal(t, int64(23), got.Seed)
	assert.Len(t, got.SHA256, 64)
}

func TestDoMain_InspectMissing(t *testing.T) {
	code, out, _ := runDishctl(t, "inspect", "nope.png")
	assert.Equal(t, 1, code)
	assert.Equal(t, `{"error": "Image not found at nope.png"}`+"\n", out)
}

func TestDoMain_RecognizeBatch(t *testing.T) {
	dir := t.TempDir()
	ten := writePNG(t, dir, "ten.png", 10, 10)
	other := writePNG(t, dir, "other.png", 12, 8)
	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("chai"), 0o644))
	missing := filepath.Join(dir, "missing.png")

	for _, workers := range []string{"1", "3"} {
		t.Run("workers="+workers, func(t *testing.T) {
			code, out, _ := runDishctl(t, "recognize", "--workers", workers, ten, text, missing, other)
			assert.Equal(t, 1, code)

			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, 4)

			results := make([]batchResult, len(lines))
			for i, line := range lines {
				require.NoError(t, json.Unmarshal([]byte(line), &results[i]))
			}

			assert.Equal(t, ten, results[0].Path)
			assert.Equal(t, []string{"dosa", "chicken tikka masala", "chole bhature", "aloo gobi", "gulab jamun", "dal makhani", "masala chai"}, results[0].Dishes)
			assert.Empty(t, results[0].Error)

			assert.Equal(t, text, results[1].Path)
			assert.Equal(t, "cannot identify image file '"+text+"'", results[1].Error)

			assert.Equal(t, "Image not found at "+missing, results[2].Error)

			// 12+8 and 10+10 give the same seed.
			assert.Equal(t, results[0].Dishes, results[3].Dishes)
		})
	}
}

func TestDoMain_RecognizeAllOK(t *testing.T) {
	path := writePNG(t, t.TempDir(), "ten.png", 10, 10)

	code, out, _ := runDishctl(t, "recognize", path)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"dishes":["dosa",`)
}

func TestDoMain_RecognizeInvalidWorkers(t *testing.T) {
	code, _, stderr := runDishctl(t, "recognize", "--workers", "0", "a.png")
	assert.NotEqual(t, 0, code)
	assert.Contains(t, stderr, "workers must be at least 1")
}

func TestDoMain_Match(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "ten.png", 10, 10)
	recipesPath := filepath.Join(dir, "recipes.json")
	require.NoError(t, os.WriteFile(recipesPath, []byte(`{"recipes": [
		{"name": "Masala Dosa", "cuisine": "South Indian"},
		{"name": "Aloo Gobi Sabzi"},
		{"name": "Margherita Pizza"}
	]}`), 0o644))

	code, out, _ := runDishctl(t, "match", "--recipes", recipesPath, path)
	require.Equal(t, 0, code)

	var got struct {
		Dishes  []string `json:"dishes"`
		Recipes []struct {
			Name    string `json:"name"`
			Cuisine string `json:"cuisine"`
		} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Dishes, 7)
	require.Len(t, got.Recipes, 2)
	assert.Equal(t, "Masala Dosa", got.Recipes[0].Name)
	assert.Equal(t, "south indian", got.Recipes[0].Cuisine)
	assert.Equal(t, "Aloo Gobi Sabzi", got.Recipes[1].Name)
}

func TestDoMain_MatchMissingRecipes(t *testing.T) {
	path := writePNG(t, t.TempDir(), "ten.png", 10, 10)

	code, out, _ := runDishctl(t, "match", "--recipes", filepath.Join(t.TempDir(), "none.json"), path)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, `{"error": "failed to read recipes file`)
}

func TestDoMain_Help(t *testing.T) {
	code, out, _ := runDishctl(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage: dishctl <command>")
	assert.Contains(t, out, "recognize <path>")
}
