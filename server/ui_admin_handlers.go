package server

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/jrsteele09/portfolio-lab/auth"
	"github.com/jrsteele09/portfolio-lab/content"
	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
	"github.com/jrsteele09/portfolio-lab/sessions"
	"github.com/rs/zerolog"
)

// Admin dashboard sections
const (
	AdminSectionPosts  = "posts"
	AdminSectionTopics = "topics"
	AdminSectionUsers  = "users"
	AdminSectionStats  = "stats"
)

var adminSections = []string{AdminSectionPosts, AdminSectionTopics, AdminSectionUsers, AdminSectionStats}

// AdminPageData is the model for the admin dashboard
type AdminPageData struct {
	Section  string
	Sections []string
	Notice   string
	Error    string
	Topics   []content.Topic
	Posts    []content.Post
	Editing  *content.Post // post loaded into the editor, nil when creating
	Accounts []auth.Account
	Roles    []sessions.Role
	Stats    AdminStats
}

type AdminStats struct {
	Topics   int
	Posts    int
	Users    int
	Products int
	Orders   int
}

// AdminDashboardHandler renders /admin and /admin/{section}
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := r.PathValue("section")
		if section == "" {
			section = AdminSectionPosts
		}
		if !slices.Contains(adminSections, section) {
			s.NotFoundHandler()(w, r)
			return
		}

		q := r.URL.Query()
		data := AdminPageData{
			Section:  section,
			Sections: adminSections,
			Notice:   q.Get("notice"),
			Error:    q.Get("error"),
		}
		switch section {
		case AdminSectionPosts:
			data.Topics = s.library.Topics()
			data.Posts = s.library.AllPosts()
			if id, err := strconv.Atoi(q.Get("edit")); err == nil {
				if p, err := s.library.PostByID(id); err == nil {
					data.Editing = &p
				}
			}
		case AdminSectionTopics:
			data.Topics = s.library.Topics()
		case AdminSectionUsers:
			data.Accounts = s.accounts.Accounts()
			data.Roles = []sessions.Role{sessions.RolePractice, sessions.RoleAdmin}
		case AdminSectionStats:
			data.Stats = AdminStats{
				Topics:   len(s.library.Topics()),
				Posts:    s.library.Posts(content.Query{}).Total,
				Users:    len(s.accounts.Accounts()),
				Products: len(s.catalog.Products()),
				Orders:   s.orders.Count(),
			}
		}
		s.renderPage(w, r, http.StatusOK, "admin.html", "Admin Dashboard", data)
	}
}

// AdminCreatePostHandler adds a post (POST /admin/posts)
func (s *Server) AdminCreatePostHandler() http.HandlerFunc {
	return s.adminAction(AdminSectionPosts, func(r *http.Request) (string, error) {
		in, err := postInput(r)
		if err != nil {
			return "", err
		}
		p, err := s.library.CreatePost(in)
		if err != nil {
			return "", err
		}
		zerolog.Ctx(r.Context()).Info().Int("post", p.ID).Msg("[Admin] post created")
		return "Post created", nil
	})
}

// AdminUpdatePostHandler edits a post (POST /admin/posts/{id})
func (s *Server) AdminUpdatePostHandler() http.HandlerFunc {
	return s.adminAction(AdminSectionPosts, func(r *http.Request) (string, error) {
		id, err := pathID(r)
		if err != nil {
			return "", err
		}
		in, err := postInput(r)
		if err != nil {
			return "", err
		}
		if _, err := s.library.UpdatePost(id, in); err != nil {
			return "", err
		}
		zerolog.Ctx(r.Context()).Info().Int("post", id).Msg("[Admin] post updated")
		return "Post updated", nil
	})
}

// AdminDeletePostHandler removes a post (POST /admin/posts/{id}/delete)
func (s *Server) AdminDeletePostHandler() http.HandlerFunc {
	return s.adminAction(AdminSectionPosts, func(r *http.Request) (string, error) {
		id, err := pathID(r)
		if err != nil {
			return "", err
		}
		if err := s.library.DeletePost(id); err != nil {
			return "", err
		}
		zerolog.Ctx(r.Context()).Info().Int("post", id).Msg("[Admin] post deleted")
		return "Post deleted", nil
	})
}

func (s *Server) AdminCreateTopicHandler() http.HandlerFunc {
	return s.adminAction(AdminSectionTopics, func(r *http.Request) (string, error) {
		if _, err := s.library.CreateTopic(topicInput(r)); err != nil {
			return "", err
		}
		return "Topic created", nil
	})
}

func (s *Server) AdminUpdateTopicHandler() http.HandlerFunc {
	return s.adminAction(AdminSectionTopics, func(r *http.Request) (string, error) {
		id, err := pathID(r)
		if err != nil {
			return "", err
		}
		if _, err := s.library.UpdateTopic(id, topicInput(r)); err != nil {
			return "", err
		}
		return "Topic updated", nil
	})
}

func (s *Server) AdminDeleteTopicHandler() http.HandlerFunc {
	return s.adminAction(AdminSectionTopics, func(r *http.Request) (string, error) {
		id, err := pathID(r)
		if err != nil {
			return "", err
		}
		if err := s.library.DeleteTopic(id); err != nil {
			return "", err
		}
		return "Topic deleted", nil
	})
}

// AdminCreateUserHandler registers a login account (POST /admin/users)
func (s *Server) AdminCreateUserHandler() http.HandlerFunc {
	return s.adminAction(AdminSectionUsers, func(r *http.Request) (string, error) {
		role, err := formRole(r)
		if err != nil {
			return "", err
		}
		a, err := s.accounts.Add(auth.Account{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
			Role:     role,
		})
		if err != nil {
			return "", err
		}
		zerolog.Ctx(r.Context()).Info().Str("email", a.Email).Str("role", a.Role.String()).Msg("[Admin] account created")
		return "User created", nil
	})
}

// AdminUpdateUserHandler changes an account's role and optionally its password
func (s *Server) AdminUpdateUserHandler() http.HandlerFunc {
	return s.adminAction(AdminSectionUsers, func(r *http.Request) (string, error) {
		role, err := formRole(r)
		if err != nil {
			return "", err
		}
		if _, err := s.accounts.Update(r.PathValue("email"), r.PostFormValue("password"), role); err != nil {
			return "", err
		}
		return "User updated", nil
	})
}

func (s *Server) AdminDeleteUserHandler() http.HandlerFunc {
	return s.adminAction(AdminSectionUsers, func(r *http.Request) (string, error) {
		email := r.PathValue("email")
		if err := s.accounts.Remove(email); err != nil {
			return "", err
		}
		zerolog.Ctx(r.Context()).Info().Str("email", email).Msg("[Admin] account removed")
		return "User deleted", nil
	})
}

// adminAction parses the form, runs apply and returns to the section with
// either a notice or an error message.
func (s *Server) adminAction(section string, apply func(r *http.Request) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		back := RouteAdmin + "/" + section
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		notice, err := apply(r)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("section", section).Msg("[Admin] change rejected")
			redirectWithError(w, r, back, adminMessage(err), nil)
			return
		}
		redirectSuccess(w, r, back+"?"+url.Values{"notice": {notice}}.Encode())
	}
}

// adminMessage turns a rejected change into text for the dashboard.
func adminMessage(err error) string {
	switch {
	case errors.Is(err, content.ErrTitleRequired):
		return "Title is required"
	case errors.Is(err, content.ErrNameRequired):
		return "Topic name is required"
	case errors.Is(err, content.ErrUnknownTopic):
		return "Select an existing topic"
	case errors.Is(err, content.ErrTopicInUse):
		return "Move or delete the topic's posts first"
	case errors.Is(err, auth.ErrAccountExists):
		return "Email already registered"
	case errors.Is(err, auth.ErrLastAdmin):
		return "The last admin account cannot be removed or demoted"
	case errors.Is(err, apperrors.ErrNotFound):
		return "Item not found"
	case errors.Is(err, apperrors.ErrInvalidRequest):
		return "Please fill in all required fields"
	default:
		return "Could not save changes"
	}
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, apperrors.Wrapf(apperrors.ErrNotFound, "[Admin] id %q", r.PathValue("id"))
	}
	return id, nil
}

func postInput(r *http.Request) (content.PostInput, error) {
	topicID, err := strconv.Atoi(r.PostFormValue("topic_id"))
	if err != nil {
		return content.PostInput{}, content.ErrUnknownTopic
	}
	return content.PostInput{
		TopicID: topicID,
		Title:   r.PostFormValue("title"),
		Body:    r.PostFormValue("content"),
	}, nil
}

func topicInput(r *http.Request) content.TopicInput {
	return content.TopicInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
	}
}

// formRole reads the role field; a missing role means practice.
func formRole(r *http.Request) (sessions.Role, error) {
	raw := r.PostFormValue("role")
	if raw == "" {
		return sessions.RolePractice, nil
	}
	role, ok := sessions.ParseRole(raw)
	if !ok {
		return "", apperrors.Wrapf(apperrors.ErrInvalidRequest, "[Admin] unknown role %q", raw)
	}
	return role, nil
}
