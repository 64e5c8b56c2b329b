// Package content serves the mock reading list: topics, posts and their
// rendered markdown.
package content

import (
	"bytes"
	"cmp"
	"fmt"
	"html/template"
	"slices"
	"strings"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// PostsPerPage is the reading list page size.
const PostsPerPage = 3

type Topic struct {
	ID          int
	Name        string
	Description string
}

type Post struct {
	ID        int
	TopicID   int
	Title     string
	Snippet   string
	Body      string // markdown; empty means the snippet is the whole post
	Published time.Time
}

type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortAZ     Sort = "a-z"
	SortZA     Sort = "z-a"
)

// ParseSort falls back to newest for unknown values.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortOldest, SortAZ, SortZA:
		return Sort(s)
	default:
		return SortNewest
	}
}

// Query selects a page of posts within one topic.
type Query struct {
	TopicID int
	Search  string
	Sort    Sort
	Page    int
}

type Page struct {
	Posts      []Post
	Page       int
	TotalPages int
	Total      int
}

// Library holds the topics and posts. Reads and admin edits may run
// concurrently.
type Library struct {
	md      goldmark.Markdown
	nowTime func() time.Time

	lock   sync.RWMutex
	topics []Topic
	posts  []Post
}

type LibraryOption func(*Library)

// WithNowTime sets the clock that stamps new posts.
func WithNowTime(nowFunc func() time.Time) LibraryOption {
	return func(l *Library) {
		l.nowTime = nowFunc
	}
}

// NewLibrary returns a library seeded with the built in reading list.
func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{
		topics:  slices.Clone(defaultTopics),
		posts:   slices.Clone(defaultPosts),
		md:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
		nowTime: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) Topics() []Topic {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return slices.Clone(l.topics)
}

func (l *Library) Topic(id int) (Topic, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()
	for _, t := range l.topics {
		if t.ID == id {
			return t, nil
		}
	}
	return Topic{}, apperrors.Wrapf(apperrors.ErrNotFound, "[Library Topic] topic %d", id)
}

// Posts filters by topic and search term, sorts, then paginates. Pages are
// 1-based; out of range pages are clamped.
func (l *Library) Posts(q Query) Page {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	l.lock.RLock()
	var matched []Post
	for _, p := range l.posts {
		if q.TopicID != 0 && p.TopicID != q.TopicID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Snippet), search) {
			continue
		}
		matched = append(matched, p)
	}
	l.lock.RUnlock()

	switch ParseSort(string(q.Sort)) {
	case SortOldest:
		slices.SortStableFunc(matched, func(a, b Post) int { return a.Published.Compare(b.Published) })
	case SortAZ:
		slices.SortStableFunc(matched, func(a, b Post) int { return cmp.Compare(a.Title, b.Title) })
	case SortZA:
		slices.SortStableFunc(matched, func(a, b Post) int { return cmp.Compare(b.Title, a.Title) })
	default:
		slices.SortStableFunc(matched, func(a, b Post) int { return b.Published.Compare(a.Published) })
	}

	totalPages := max(1, (len(matched)+PostsPerPage-1)/PostsPerPage)
	page := min(max(q.Page, 1), totalPages)
	start := min((page-1)*PostsPerPage, len(matched))
	end := min(start+PostsPerPage, len(matched))

	return Page{
		Posts:      slices.Clone(matched[start:end]),
		Page:       page,
		TotalPages: totalPages,
		Total:      len(matched),
	}
}

// Post returns the post with postID inside topicID.
func (l *Library) Post(topicID, postID int) (Post, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()
	for _, p := range l.posts {
		if p.ID == postID && p.TopicID == topicID {
			return p, nil
		}
	}
	return Post{}, apperrors.Wrapf(apperrors.ErrNotFound, "[Library Post] post %d in topic %d", postID, topicID)
}

// Render converts the post body to HTML. Raw HTML in the markdown is
// omitted by the renderer.
func (l *Library) Render(p Post) (template.HTML, error) {
	src := p.Body
	if src == "" {
		src = p.Snippet
	}
	var buf bytes.Buffer
	if err := l.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("[Library Render] post %d: %w", p.ID, err)
	}
	return template.HTML(buf.String()), nil
}
