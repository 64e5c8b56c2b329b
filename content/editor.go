package content

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
)

// snippetLength is the most runes of a post body used as its snippet.
const snippetLength = 120

var (
	ErrTitleRequired = errors.New("title is required")
	ErrNameRequired  = errors.New("topic name is required")
	ErrUnknownTopic  = errors.New("unknown topic")
	ErrTopicInUse    = errors.New("topic still has posts")
)

// PostInput is an editor's submission for a post. Body is markdown.
type PostInput struct {
	TopicID int
	Title   string
	Body    string
}

// TopicInput is an editor's submission for a topic.
type TopicInput struct {
	Name        string
	Description string
}

// CreatePost adds a post stamped with the current time.
func (l *Library) CreatePost(in PostInput) (Post, error) {
	in.Title = strings.TrimSpace(in.Title)

	l.lock.Lock()
	defer l.lock.Unlock()

	if err := l.checkPost(in); err != nil {
		return Post{}, apperrors.Wrapf(err, "[Library CreatePost]")
	}
	p := Post{
		ID:        nextID(l.posts, func(p Post) int { return p.ID }),
		TopicID:   in.TopicID,
		Title:     in.Title,
		Snippet:   snippet(in.Body),
		Body:      in.Body,
		Published: l.nowTime(),
	}
	l.posts = append(l.posts, p)
	return p, nil
}

// UpdatePost replaces the title, topic and body of a post. The publish date
// is kept.
func (l *Library) UpdatePost(id int, in PostInput) (Post, error) {
	in.Title = strings.TrimSpace(in.Title)

	l.lock.Lock()
	defer l.lock.Unlock()

	i := slices.IndexFunc(l.posts, func(p Post) bool { return p.ID == id })
	if i < 0 {
		return Post{}, apperrors.Wrapf(apperrors.ErrNotFound, "[Library UpdatePost] post %d", id)
	}
	if err := l.checkPost(in); err != nil {
		return Post{}, apperrors.Wrapf(err, "[Library UpdatePost] post %d", id)
	}
	p := &l.posts[i]
	p.TopicID = in.TopicID
	p.Title = in.Title
	p.Body = in.Body
	p.Snippet = snippet(in.Body)
	return *p, nil
}

func (l *Library) DeletePost(id int) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	i := slices.IndexFunc(l.posts, func(p Post) bool { return p.ID == id })
	if i < 0 {
		return apperrors.Wrapf(apperrors.ErrNotFound, "[Library DeletePost] post %d", id)
	}
	l.posts = slices.Delete(l.posts, i, i+1)
	return nil
}

// AllPosts lists every post, newest first.
func (l *Library) AllPosts() []Post {
	l.lock.RLock()
	out := slices.Clone(l.posts)
	l.lock.RUnlock()
	slices.SortStableFunc(out, func(a, b Post) int { return b.Published.Compare(a.Published) })
	return out
}

// PostByID finds a post without knowing its topic.
func (l *Library) PostByID(id int) (Post, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	i := slices.IndexFunc(l.posts, func(p Post) bool { return p.ID == id })
	if i < 0 {
		return Post{}, apperrors.Wrapf(apperrors.ErrNotFound, "[Library PostByID] post %d", id)
	}
	return l.posts[i], nil
}

func (l *Library) CreateTopic(in TopicInput) (Topic, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Topic{}, apperrors.Wrapf(ErrNameRequired, "[Library CreateTopic]")
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	t := Topic{
		ID:          nextID(l.topics, func(t Topic) int { return t.ID }),
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
	}
	l.topics = append(l.topics, t)
	return t, nil
}

func (l *Library) UpdateTopic(id int, in TopicInput) (Topic, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Topic{}, apperrors.Wrapf(ErrNameRequired, "[Library UpdateTopic] topic %d", id)
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	i := slices.IndexFunc(l.topics, func(t Topic) bool { return t.ID == id })
	if i < 0 {
		return Topic{}, apperrors.Wrapf(apperrors.ErrNotFound, "[Library UpdateTopic] topic %d", id)
	}
	l.topics[i].Name = in.Name
	l.topics[i].Description = strings.TrimSpace(in.Description)
	return l.topics[i], nil
}

// DeleteTopic removes an empty topic. Topics that still hold posts are kept.
func (l *Library) DeleteTopic(id int) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	i := slices.IndexFunc(l.topics, func(t Topic) bool { return t.ID == id })
	if i < 0 {
		return apperrors.Wrapf(apperrors.ErrNotFound, "[Library DeleteTopic] topic %d", id)
	}
	if slices.ContainsFunc(l.posts, func(p Post) bool { return p.TopicID == id }) {
		return apperrors.Wrapf(ErrTopicInUse, "[Library DeleteTopic] topic %d", id)
	}
	l.topics = slices.Delete(l.topics, i, i+1)
	return nil
}

// checkPost must be called with the lock held.
func (l *Library) checkPost(in PostInput) error {
	if in.Title == "" {
		return ErrTitleRequired
	}
	if !slices.ContainsFunc(l.topics, func(t Topic) bool { return t.ID == in.TopicID }) {
		return ErrUnknownTopic
	}
	return nil
}

func nextID[T any](items []T, id func(T) int) int {
	highest := 0
	for _, it := range items {
		highest = max(highest, id(it))
	}
	return highest + 1
}

// snippet is the first prose line of a markdown body, skipping headings and
// code, stripped of markup and cut to snippetLength runes.
func snippet(body string) string {
	inFence := false
	for line := range strings.Lines(body) {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if inFence || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimLeft(line, ">-*+ ")
		line = strings.NewReplacer("**", "", "__", "", "`", "", "*", "", "_", "").Replace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) <= snippetLength {
			return line
		}
		return string([]rune(line)[:snippetLength]) + "..."
	}
	return ""
}
