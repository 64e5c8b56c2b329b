package server

import (
	"net/http"

	"github.com/jrsteele09/portfolio-lab/lab"
)

// LabProjectPageData is the model for the mini e-commerce playground
type LabProjectPageData struct {
	Products []lab.Product
	Orders   []lab.Order
}

// LabHomeHandler renders the Automation Lab landing page
func (s *Server) LabHomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, http.StatusOK, "lab.html", "Automation Lab", nil)
	}
}

// LabPlaygroundHandler renders one of the static playground pages
func (s *Server) LabPlaygroundHandler(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, http.StatusOK, page, pageTitle(title, "Automation Lab"), nil)
	}
}

// LabProjectHandler renders the product list and the client's orders
func (s *Server) LabProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := LabProjectPageData{
			Products: s.catalog.Products(),
			Orders:   s.orders.Orders(orderOwner(r)),
		}
		s.renderPage(w, r, http.StatusOK, "lab_project.html", pageTitle("Project Playground", "Automation Lab"), data)
	}
}

// orderOwner keys lab orders by the signed in role so they survive a
// fresh login.
func orderOwner(r *http.Request) string {
	if c, ok := clientFromContext(r.Context()); ok {
		return c.auth.Role().String()
	}
	return ""
}
