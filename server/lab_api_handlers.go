package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
	"github.com/jrsteele09/portfolio-lab/lab"
	"github.com/rs/zerolog"
)

const maxJSONBody = 1 << 20

type productResponse struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Category    string      `json:"category"`
	InStock     bool        `json:"in_stock"`
}

func toProductResponse(p lab.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       json.Number(p.Price.StringFixed(2)),
		Category:    p.Category,
		InStock:     p.InStock,
	}
}

type createOrderRequest struct {
	Items []lab.OrderItem `json:"items"`
}

type orderResponse struct {
	ID          int             `json:"id"`
	Items       []lab.OrderItem `json:"items"`
	TotalAmount json.Number     `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toOrderResponse(o lab.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		Items:       o.Items,
		TotalAmount: json.Number(o.TotalAmount.StringFixed(2)),
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
	}
}

// ProductsHandler lists the catalog, optionally narrowed to one category.
func (s *Server) ProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.PathValue("category")
		if category == "" {
			category = r.URL.Query().Get("category")
		}
		out := []productResponse{}
		for _, p := range s.catalog.Products() {
			if category != "" && !strings.EqualFold(p.Category, category) {
				continue
			}
			out = append(out, toProductResponse(p))
		}
		writeJSON(w, r, http.StatusOK, out)
	}
}

func (s *Server) ProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			writeDetail(w, http.StatusNotFound, "Product not found")
			return
		}
		p, err := s.catalog.Product(id)
		if err != nil {
			writeDetail(w, http.StatusNotFound, "Product not found")
			return
		}
		writeJSON(w, r, http.StatusOK, toProductResponse(p))
	}
}

func (s *Server) ListOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := []orderResponse{}
		for _, o := range s.orders.Orders(orderOwner(r)) {
			out = append(out, toOrderResponse(o))
		}
		writeJSON(w, r, http.StatusOK, out)
	}
}

// CreateOrderHandler prices and records an order from a JSON body of
// {"items": [{"product_id": 1, "quantity": 2}]}.
func (s *Server) CreateOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid order body")
			return
		}
		order, err := s.orders.Create(orderOwner(r), req.Items)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrInvalidRequest) {
				writeDetail(w, http.StatusBadRequest, "Order must contain items with non-negative quantities")
				return
			}
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("[CreateOrder] failed")
			writeDetail(w, http.StatusInternalServerError, "Failed to create order")
			return
		}
		zerolog.Ctx(r.Context()).Info().Stringer("order", order).Msg("[CreateOrder] created")
		writeJSON(w, r, http.StatusCreated, toOrderResponse(order))
	}
}

func (s *Server) LabUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, lab.Users())
	}
}

func (s *Server) LabUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		u, err := lab.User(id)
		if err != nil {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		writeJSON(w, r, http.StatusOK, u)
	}
}

// SlowHandler answers after the configured delay, or not at all if the
// client gives up first.
func (s *Server) SlowHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := lab.Delay(r.Context(), s.slowDelay); err != nil {
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("[Slow] client went away")
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{
			"message": "This response was delayed by " + s.slowDelay.String(),
		})
	}
}

func (s *Server) ErrorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusInternalServerError, map[string]string{
			"error":   "Internal Server Error",
			"message": "This is a simulated server error",
		})
	}
}

func (s *Server) SpecialNotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, map[string]string{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	}
}

// SecureHandler requires the playground API key in X-API-Key.
func (s *Server) SecureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != lab.SecureAPIKey {
			writeJSON(w, r, http.StatusUnauthorized, map[string]string{
				"error":   "Unauthorized",
				"message": "Invalid or missing API key",
			})
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{
			"message":   "You have accessed a secure endpoint",
			"timestamp": s.nowTime().UTC().Format(time.RFC3339),
		})
	}
}

// PreflightHandler is reached only by OPTIONS requests the CORS middleware
// did not answer itself.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

type dbQueryRequest struct {
	Schema string `json:"schema"`
	Query  string `json:"query"`
}

// DBQueryHandler answers the database playground. Only SELECT statements
// are accepted.
func (s *Server) DBQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dbQueryRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid query body")
			return
		}
		result, err := lab.RunQuery(req.Schema, req.Query)
		if errors.Is(err, lab.ErrNotSelect) {
			writeDetail(w, http.StatusBadRequest, lab.MsgSelectOnly)
			return
		}
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "Query failed")
			return
		}
		writeJSON(w, r, http.StatusOK, result)
	}
}
