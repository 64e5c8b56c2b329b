package server

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/jrsteele09/portfolio-lab/content"
	"github.com/rs/zerolog"
)

// ReadingPageData is the model for the reading list
type ReadingPageData struct {
	Topics []content.Topic
	Topic  content.Topic
	Search string
	Sort   content.Sort
	Sorts  []content.Sort
	Page   content.Page
}

// BlogPostPageData is the model for a single post
type BlogPostPageData struct {
	Topic content.Topic
	Post  content.Post
	Body  template.HTML
}

// ReadingHandler lists the posts of one topic with search, sort and paging
// taken from the query string.
func (s *Server) ReadingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		topics := s.library.Topics()

		topicID, _ := strconv.Atoi(q.Get("topic"))
		topic, err := s.library.Topic(topicID)
		if err != nil && len(topics) > 0 {
			topic = topics[0]
		}
		page, _ := strconv.Atoi(q.Get("page"))
		sort := content.ParseSort(q.Get("sort"))

		data := ReadingPageData{
			Topics: topics,
			Topic:  topic,
			Search: q.Get("search"),
			Sort:   sort,
			Sorts:  []content.Sort{content.SortNewest, content.SortOldest, content.SortAZ, content.SortZA},
			Page: s.library.Posts(content.Query{
				TopicID: topic.ID,
				Search:  q.Get("search"),
				Sort:    sort,
				Page:    page,
			}),
		}
		s.renderPage(w, r, http.StatusOK, "reading.html", "Reading", data)
	}
}

// BlogPostHandler renders one post
func (s *Server) BlogPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topicID, errTopic := strconv.Atoi(r.PathValue("topic"))
		postID, errPost := strconv.Atoi(r.PathValue("post"))
		if errTopic != nil || errPost != nil {
			s.NotFoundHandler()(w, r)
			return
		}

		post, err := s.library.Post(topicID, postID)
		if err != nil {
			s.NotFoundHandler()(w, r)
			return
		}
		topic, _ := s.library.Topic(topicID)

		body, err := s.library.Render(post)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("[BlogPost] rendering markdown")
			http.Error(w, "Failed to render post", http.StatusInternalServerError)
			return
		}
		s.renderPage(w, r, http.StatusOK, "post.html", pageTitle(post.Title, "Reading"), BlogPostPageData{
			Topic: topic,
			Post:  post,
			Body:  body,
		})
	}
}
