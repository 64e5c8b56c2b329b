package content_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jrsteele09/portfolio-lab/content"
	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
	"github.com/stretchr/testify/require"
)

func titles(posts []content.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestTopics(t *testing.T) {
	lib := content.NewLibrary()
	require.Len(t, lib.Topics(), 5)

	topic, err := lib.Topic(2)
	require.NoError(t, err)
	require.Equal(t, "Selenium", topic.Name)

	_, err = lib.Topic(99)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPosts(t *testing.T) {
	lib := content.NewLibrary()

	t.Run("newest first within topic", func(t *testing.T) {
		page := lib.Posts(content.Query{TopicID: 2})
		want := []string{"Selenium Grid for Parallel Testing", "Advanced Selenium Techniques", "Getting Started with Selenium WebDriver"}
		if diff := cmp.Diff(want, titles(page.Posts)); diff != "" {
			t.Fatalf("posts mismatch (-want +got):\n%s", diff)
		}
		require.Equal(t, 1, page.TotalPages)
	})

	t.Run("oldest", func(t *testing.T) {
		page := lib.Posts(content.Query{TopicID: 4, Sort: content.SortOldest})
		require.Equal(t, []string{"My Trip to Japan", "Exploring Europe", "My Adventure in South America"}, titles(page.Posts))
	})

	t.Run("alphabetical", func(t *testing.T) {
		page := lib.Posts(content.Query{TopicID: 5, Sort: content.SortZA})
		require.Equal(t, []string{"Transitioning from Manual to Automation Testing", "From Tester to Test Lead"}, titles(page.Posts))
	})

	t.Run("search matches title or snippet", func(t *testing.T) {
		page := lib.Posts(content.Query{TopicID: 3, Search: "FRAMEWORK"})
		require.Equal(t, []string{"Python Design Patterns for Test Automation", "Test Automation Frameworks"}, titles(page.Posts))
	})

	t.Run("pagination", func(t *testing.T) {
		first := lib.Posts(content.Query{TopicID: 3, Page: 1})
		require.Equal(t, 2, first.TotalPages)
		require.Equal(t, 4, first.Total)
		require.Len(t, first.Posts, 3)

		second := lib.Posts(content.Query{TopicID: 3, Page: 2})
		require.Equal(t, []string{"Python for Test Automation"}, titles(second.Posts))

		clamped := lib.Posts(content.Query{TopicID: 3, Page: 40})
		require.Equal(t, 2, clamped.Page)
	})

	t.Run("no matches", func(t *testing.T) {
		page := lib.Posts(content.Query{TopicID: 1, Search: "kubernetes"})
		require.Empty(t, page.Posts)
		require.Equal(t, 1, page.TotalPages)
	})
}

func TestPostAndRender(t *testing.T) {
	lib := content.NewLibrary()

	post, err := lib.Post(2, 1)
	require.NoError(t, err)
	html, err := lib.Render(post)
	require.NoError(t, err)
	require.Contains(t, string(html), "<h2>Setup</h2>")
	require.Contains(t, string(html), "<ol>")

	_, err = lib.Post(1, 1)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	snippetOnly, err := lib.Post(4, 4)
	require.NoError(t, err)
	html, err = lib.Render(snippetOnly)
	require.NoError(t, err)
	require.Contains(t, string(html), "Japan")

	html, err = lib.Render(content.Post{Body: "<script>alert(1)</script>"})
	require.NoError(t, err)
	require.NotContains(t, string(html), "<script>")
}

func TestEditing(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lib := content.NewLibrary(content.WithNowTime(func() time.Time { return now }))

	post, err := lib.CreatePost(content.PostInput{
		TopicID: 3,
		Title:   "  Flaky Test Triage ",
		Body:    "## Why\n\nQuarantine **flaky** tests first, then fix them.\n",
	})
	require.NoError(t, err)
	require.Equal(t, 16, post.ID)
	require.Equal(t, "Flaky Test Triage", post.Title)
	require.Equal(t, "Quarantine flaky tests first, then fix them.", post.Snippet)
	require.Equal(t, now, post.Published)
	require.Equal(t, 5, lib.Posts(content.Query{TopicID: 3}).Total)
	require.Equal(t, "Flaky Test Triage", lib.AllPosts()[0].Title)

	got, err := lib.Post(3, 16)
	require.NoError(t, err)
	html, err := lib.Render(got)
	require.NoError(t, err)
	require.Contains(t, string(html), "<strong>flaky</strong>")

	t.Run("rejected posts", func(t *testing.T) {
		_, err := lib.CreatePost(content.PostInput{TopicID: 3, Title: " "})
		require.ErrorIs(t, err, content.ErrTitleRequired)
		_, err = lib.CreatePost(content.PostInput{TopicID: 99, Title: "x"})
		require.ErrorIs(t, err, content.ErrUnknownTopic)
		_, err = lib.UpdatePost(999, content.PostInput{TopicID: 1, Title: "x"})
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("update keeps the publish date", func(t *testing.T) {
		updated, err := lib.UpdatePost(16, content.PostInput{TopicID: 1, Title: "Triage", Body: "Short."})
		require.NoError(t, err)
		require.Equal(t, now, updated.Published)
		require.Equal(t, "Short.", updated.Snippet)
		_, err = lib.Post(1, 16)
		require.NoError(t, err)
	})

	t.Run("topics", func(t *testing.T) {
		require.ErrorIs(t, lib.DeleteTopic(3), content.ErrTopicInUse)

		topic, err := lib.CreateTopic(content.TopicInput{Name: "Go"})
		require.NoError(t, err)
		require.Equal(t, 6, topic.ID)

		topic, err = lib.UpdateTopic(6, content.TopicInput{Name: "Golang", Description: " Gophers "})
		require.NoError(t, err)
		require.Equal(t, content.Topic{ID: 6, Name: "Golang", Description: "Gophers"}, topic)

		require.NoError(t, lib.DeleteTopic(6))
		_, err = lib.Topic(6)
		require.ErrorIs(t, err, apperrors.ErrNotFound)

		_, err = lib.CreateTopic(content.TopicInput{Name: " "})
		require.ErrorIs(t, err, content.ErrNameRequired)
		_, err = lib.UpdateTopic(42, content.TopicInput{Name: "x"})
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, lib.DeletePost(16))
		require.ErrorIs(t, lib.DeletePost(16), apperrors.ErrNotFound)
		_, err := lib.PostByID(16)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	require.Equal(t, 15, content.NewLibrary().Posts(content.Query{}).Total, "libraries do not share posts")
}

func TestSnippetIsCut(t *testing.T) {
	lib := content.NewLibrary()
	post, err := lib.CreatePost(content.PostInput{
		TopicID: 1,
		Title:   "Long",
		Body:    "```\ncode first\n```\n" + strings.Repeat("a", 200),
	})
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("a", 120)+"...", post.Snippet)
}
