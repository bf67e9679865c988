package handler

import (
	"net/http"
	"time"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubscriberHandler handles subscriber management.
type SubscriberHandler struct {
	pool        *pgxpool.Pool
	subscribers repository.SubscriberRepository
}

// NewSubscriberHandler creates a new SubscriberHandler.
func NewSubscriberHandler(pool *pgxpool.Pool, subscribers repository.SubscriberRepository) *SubscriberHandler {
	return &SubscriberHandler{pool: pool, subscribers: subscribers}
}

// List handles GET /api/subscribers?status=&subscription_type=.
func (h *SubscriberHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	subType := r.URL.Query().Get("subscription_type")
	if subType != "" {
		if err := domain.ValidateSubscriptionType(subType); err != nil {
			RespondError(w, r, domain.ErrValidation(err.Error()))
			return
		}
	}

	subs, err := h.subscribers.List(r.Context(), h.pool, status, subType)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("list subscribers", err))
		return
	}
	Respond(w, http.StatusOK, subs)
}

// Get handles GET /api/subscribers/{id}.
func (h *SubscriberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	sub, err := h.subscribers.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find subscriber", err))
		return
	}
	if sub == nil {
		RespondError(w, r, domain.ErrNotFound("Subscriber", id))
		return
	}
	Respond(w, http.StatusOK, sub)
}

// Stats handles GET /api/subscribers/stats: live counts plus the daily
// monthly/yearly history.
func (h *SubscriberHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var total, active, monthly, yearly int
	err := h.pool.QueryRow(r.Context(), `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active'),
		       COUNT(*) FILTER (WHERE status = 'active' AND subscription_type = 'monthly'),
		       COUNT(*) FILTER (WHERE status = 'active' AND subscription_type = 'yearly')
		FROM subscribers`).Scan(&total, &active, &monthly, &yearly)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("subscriber stats", err))
		return
	}

	days := QueryInt(r, "days", 30)
	rows, err := h.pool.Query(r.Context(), `
		SELECT id, date, monthly, yearly FROM subscriber_stats
		WHERE date > $1 ORDER BY date`, time.Now().AddDate(0, 0, -days))
	if err != nil {
		RespondError(w, r, domain.ErrInternal("subscriber stats", err))
		return
	}
	defer rows.Close()

	var history []domain.SubscriberStats
	for rows.Next() {
		s := domain.SubscriberStats{}
		if err := rows.Scan(&s.ID, &s.Date, &s.Monthly, &s.Yearly); err != nil {
			RespondError(w, r, domain.ErrInternal("scan stats", err))
			return
		}
		history = append(history, s)
	}
	if err := rows.Err(); err != nil {
		RespondError(w, r, domain.ErrInternal("subscriber stats", err))
		return
	}

	Respond(w, http.StatusOK, map[string]interface{}{
		"total":   total,
		"active":  active,
		"monthly": monthly,
		"yearly":  yearly,
		"history": history,
	})
}

type subscriberInput struct {
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	SubscriptionType string     `json:"subscription_type"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	Status           string     `json:"status"`
}

// Create handles POST /api/subscribers.
func (h *SubscriberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input subscriberInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		RespondError(w, r, domain.ErrValidation(err.Error()))
		return
	}
	if err := domain.ValidateSubscriptionType(input.SubscriptionType); err != nil {
		RespondError(w, r, domain.ErrValidation(err.Error()))
		return
	}

	if existing, err := h.subscribers.FindByEmail(r.Context(), h.pool, input.Email); err != nil {
		RespondError(w, r, domain.ErrInternal("find subscriber", err))
		return
	} else if existing != nil {
		RespondError(w, r, domain.ErrDuplicate("Subscriber with this email already exists"))
		return
	}

	start := time.Now()
	if input.StartDate != nil {
		start = *input.StartDate
	}
	end := start.AddDate(0, 1, 0)
	if input.SubscriptionType == domain.SubscriptionYearly {
		end = start.AddDate(1, 0, 0)
	}
	if input.EndDate != nil {
		end = *input.EndDate
	}
	if input.Status == "" {
		input.Status = domain.SubscriberStatusActive
	}

	sub := &domain.Subscriber{
		Email:            input.Email,
		Name:             input.Name,
		SubscriptionType: input.SubscriptionType,
		StartDate:        start,
		EndDate:          end,
		Status:           input.Status,
	}
	if err := h.subscribers.Create(r.Context(), h.pool, sub); err != nil {
		RespondError(w, r, domain.ErrInternal("create subscriber", err))
		return
	}
	Respond(w, http.StatusCreated, sub)
}

// Update handles PUT /api/subscribers/{id}.
func (h *SubscriberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	sub, err := h.subscribers.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find subscriber", err))
		return
	}
	if sub == nil {
		RespondError(w, r, domain.ErrNotFound("Subscriber", id))
		return
	}

	var input subscriberInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if input.Email != "" && input.Email != sub.Email {
		if err := domain.ValidateEmail(input.Email); err != nil {
			RespondError(w, r, domain.ErrValidation(err.Error()))
			return
		}
		if existing, err := h.subscribers.FindByEmail(r.Context(), h.pool, input.Email); err != nil {
			RespondError(w, r, domain.ErrInternal("find subscriber", err))
			return
		} else if existing != nil {
			RespondError(w, r, domain.ErrDuplicate("Subscriber with this email already exists"))
			return
		}
		sub.Email = input.Email
	}
	if input.Name != "" {
		sub.Name = input.Name
	}
	if input.SubscriptionType != "" {
		if err := domain.ValidateSubscriptionType(input.SubscriptionType); err != nil {
			RespondError(w, r, domain.ErrValidation(err.Error()))
			return
		}
		sub.SubscriptionType = input.SubscriptionType
	}
	if input.StartDate != nil {
		sub.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		sub.EndDate = *input.EndDate
	}
	if input.Status != "" {
		sub.Status = input.Status
	}

	if err := h.subscribers.Update(r.Context(), h.pool, sub); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, sub)
}

// Delete handles DELETE /api/subscribers/{id}.
func (h *SubscriberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.subscribers.Delete(r.Context(), h.pool, id); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"message": "Subscriber deleted successfully"})
}
