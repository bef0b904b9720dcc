package content

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tagShape = regexp.MustCompile(`^#\w+$`)

type stubModel struct {
	text       string
	err        error
	configured bool
	prompts    []string
}

func (s *stubModel) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubModel) Configured() bool { return s.configured }

func ringInput() Input {
	return Input{
		Name:     "Handmade Silver Ring",
		Category: market.CategoryJewelry,
		Material: "sterling silver",
	}
}

func assertContentShape(t *testing.T, got market.GeneratedContent) {
	t.Helper()
	assert.NotEmpty(t, got.Body)
	require.GreaterOrEqual(t, len(got.Hashtags), 10)
	require.LessOrEqual(t, len(got.Hashtags), 20)
	seen := make(map[string]bool)
	for _, tag := range got.Hashtags {
		assert.Regexp(t, tagShape, tag)
		key := strings.ToLower(tag)
		assert.False(t, seen[key], "duplicate hashtag %s", tag)
		seen[key] = true
	}
}

func TestGenerateWithoutModelUsesFallback(t *testing.T) {
	g := NewGenerator(nil)
	got := g.Generate(context.Background(), ringInput())

	assertContentShape(t, got)
	assert.Contains(t, got.Body, "handmade silver ring")
	assert.Contains(t, got.Body, "sterling silver")
	assert.Equal(t, "#HandmadeWithLove", got.Hashtags[0])
}

func TestGenerateModelErrorFallsBack(t *testing.T) {
	model := &stubModel{configured: true, err: errors.New("quota exceeded")}
	g := NewGenerator(model)

	got := g.Generate(context.Background(), ringInput())
	assertContentShape(t, got)
	assert.Contains(t, got.Body, "craftsmanship")
}

func TestGenerateUnconfiguredModelSkipsNetwork(t *testing.T) {
	model := &stubModel{configured: false}
	g := NewGenerator(model)

	got := g.Generate(context.Background(), ringInput())
	assertContentShape(t, got)
	assert.Empty(t, model.prompts, "unconfigured model must not be called")
}

func TestGenerateNormalizesModelOutput(t *testing.T) {
	model := &stubModel{
		configured: true,
		text: `A ring shaped by patient hands, bright as morning light.

#HandmadeWithLove #handmadewithlove #SilverCraft`,
	}
	g := NewGenerator(model)

	got := g.Generate(context.Background(), ringInput())
	assertContentShape(t, got)
	assert.Contains(t, got.Body, "patient hands")
	assert.NotContains(t, got.Body, "#")
}

func TestGenerateWithMusic(t *testing.T) {
	g := NewGenerator(nil)
	got := g.Generate(context.Background(), Input{Name: "Vase", Category: market.CategoryPottery, WithMusic: true})
	assert.NotEmpty(t, got.MusicSuggestions)

	without := g.Generate(context.Background(), Input{Name: "Vase", Category: market.CategoryPottery})
	assert.Empty(t, without.MusicSuggestions)
}

func TestGenerateIsDeterministicInFallback(t *testing.T) {
	g := NewGenerator(nil)
	first := g.Generate(context.Background(), ringInput())
	second := g.Generate(context.Background(), ringInput())
	assert.Equal(t, first, second)
}

func TestDeriveTag(t *testing.T) {
	cases := map[string]string{
		"home decor":      "#HomeDecor",
		"Sterling Silver": "#SterlingSilver",
		"jewelry":         "#Jewelry",
		"hand-made!":      "#HandMade",
		"":                "",
		"  ":              "",
	}
	for input, want := range cases {
		assert.Equal(t, want, DeriveTag(input), "input %q", input)
	}
}

func TestTagsIncludeDerived(t *testing.T) {
	tags := Tags("jewelry", "sterling silver")
	assert.Contains(t, tags, "#Jewelry")
	assert.Contains(t, tags, "#SterlingSilver")
	assert.GreaterOrEqual(t, len(tags), 10)
	assert.LessOrEqual(t, len(tags), 20)
}
