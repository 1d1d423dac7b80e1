package composer

import (
	stderrors "errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/wordbank"
	"github.com/dpshade/wordsmith/internal/wordbank/wordbanktest"
)

func testLists() map[wordbank.Category][]string {
	return map[wordbank.Category][]string{
		wordbank.Adjective: {"Old"},
		wordbank.Noun:      {"Mill"},
		wordbank.Place:     {"the Lake"},
		wordbank.Title:     {"the Wise"},
		wordbank.Suffix:    {"Ages"},
	}
}

func TestGenerateBranchGolden(t *testing.T) {
	c := New(wordbank.New(testLists(), wordbanktest.Zeros{}), DefaultPolicy())

	tests := []struct {
		branch Branch
		want   string
	}{
		{BranchOfTheNoun, "Old Mill, the Wise of the Mill"},
		{BranchOfPlace, "Old Mill, the Wise of the Lake"},
		{BranchOfSuffix, "Old Mill, the Wise of Ages"},
		{BranchEpithet, `Old Mill, "The Mill"`},
	}
	for _, tt := range tests {
		t.Run(tt.branch.String(), func(t *testing.T) {
			got, err := c.GenerateBranch(tt.branch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateDrawsBranchUniformlyFromFour(t *testing.T) {
	// branch draw, then adjective, noun and epithet noun
	src := &wordbanktest.Script{Ints: []int{3, 0, 0, 0}}
	c := New(wordbank.New(testLists(), src), DefaultPolicy())

	got, err := c.Generate()
	require.NoError(t, err)
	assert.Equal(t, `Old Mill, "The Mill"`, got)
	assert.Equal(t, []int{4, 1, 1, 1}, src.IntCalls())
}

func TestEpithetShape(t *testing.T) {
	lists := map[wordbank.Category][]string{
		wordbank.Adjective: {"Old", "Grim", "Pale"},
		wordbank.Noun:      {"Mill", "Gate", "Crown", "Hollow"},
		wordbank.Place:     {"the Lake"},
		wordbank.Title:     {"the Wise"},
		wordbank.Suffix:    {"Ages"},
	}
	c := New(wordbank.New(lists, wordbank.NewSource(99)), Policy{
		Prefix: Never(),
		Noun:   Always(),
		Title:  Always(),
		Suffix: Always(),
	})
	shape := regexp.MustCompile(`^(Mill|Gate|Crown|Hollow), "The (Mill|Gate|Crown|Hollow)"$`)

	for i := 0; i < 50; i++ {
		got, err := c.GenerateBranch(BranchEpithet)
		require.NoError(t, err)
		assert.Regexp(t, shape, got)
		assert.NotContains(t, got, "the Wise")
		assert.NotContains(t, got, " of ")
	}
}

func TestOfBranchesContainExactlyOneConnector(t *testing.T) {
	c := New(wordbank.New(testLists(), wordbank.NewSource(3)), DefaultPolicy())

	for i := 0; i < 100; i++ {
		got, err := c.Generate()
		require.NoError(t, err)
		if strings.HasSuffix(got, `"`) {
			assert.Equal(t, 0, strings.Count(got, " of "), got)
			continue
		}
		assert.Equal(t, 1, strings.Count(got, " of "), got)
	}
}

func TestNeverPolicySkipsSampling(t *testing.T) {
	// only the noun is sampled; an extra IntN call would panic the script
	src := &wordbanktest.Script{Ints: []int{0}}
	c := New(wordbank.New(testLists(), src), Policy{
		Prefix: Never(),
		Noun:   Always(),
		Title:  Never(),
		Suffix: Never(),
	})

	got, err := c.GenerateBranch(BranchOfPlace)
	require.NoError(t, err)
	assert.Equal(t, "Mill", got)
}

func TestChancePolicy(t *testing.T) {
	policy := Policy{
		Prefix: Chance(0.5),
		Noun:   Always(),
		Title:  Chance(0.25),
		Suffix: Always(),
	}

	t.Run("included below threshold", func(t *testing.T) {
		src := &wordbanktest.Script{Ints: []int{0, 0, 0, 0}, Floats: []float64{0.49, 0.1}}
		c := New(wordbank.New(testLists(), src), policy)

		got, err := c.GenerateBranch(BranchOfSuffix)
		require.NoError(t, err)
		assert.Equal(t, "Old Mill, the Wise of Ages", got)
		assert.Equal(t, 2, src.FloatCalls())
	})

	t.Run("excluded at or above threshold", func(t *testing.T) {
		src := &wordbanktest.Script{Ints: []int{0, 0}, Floats: []float64{0.5, 0.25}}
		c := New(wordbank.New(testLists(), src), policy)

		got, err := c.GenerateBranch(BranchOfSuffix)
		require.NoError(t, err)
		assert.Equal(t, "Mill of Ages", got)
	})
}

func TestStaticChoice(t *testing.T) {
	c := New(wordbank.New(testLists(), wordbanktest.Zeros{}), Policy{
		Prefix: Static("Sir "),
		Noun:   Always(),
		Title:  Static(", the Unnamed"),
		Suffix: Always(),
	})

	got, err := c.GenerateBranch(BranchOfPlace)
	require.NoError(t, err)
	assert.Equal(t, "Sir Mill, the Unnamed of the Lake", got)
}

func TestEmptyCategoryFailsGeneration(t *testing.T) {
	lists := testLists()
	lists[wordbank.Suffix] = nil
	c := New(wordbank.New(lists, wordbanktest.Zeros{}), DefaultPolicy())

	_, err := c.GenerateBranch(BranchOfSuffix)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyCategory))

	// branches that never touch suffixes still work
	got, err := c.GenerateBranch(BranchOfPlace)
	require.NoError(t, err)
	assert.Equal(t, "Old Mill, the Wise of the Lake", got)
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in      string
		want    Choice
		wantErr bool
	}{
		{"always", Always(), false},
		{"", Always(), false},
		{" NEVER ", Never(), false},
		{"0.35", Chance(0.35), false},
		{"1", Chance(1), false},
		{"static:of Old", Static("of Old"), false},
		{"1.5", Choice{}, true},
		{"-0.1", Choice{}, true},
		{"sometimes", Choice{}, true},
	}
	for _, tt := range tests {
		got, err := ParseChoice(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidInput), tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, mustParse(t, got.String()), "round trip of %q", tt.in)
	}
}

func mustParse(t *testing.T, s string) Choice {
	t.Helper()
	c, err := ParseChoice(s)
	require.NoError(t, err)
	return c
}

func TestUnknownBranchIsInternalError(t *testing.T) {
	c := New(wordbank.New(testLists(), wordbanktest.Zeros{}), DefaultPolicy())

	_, err := c.GenerateBranch(Branch(7))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternalError, errors.GetAppError(err).Code)
}
