package handler

import (
	"net/http"
	"strconv"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/gambit/admin-api/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationHandler handles notification management.
type NotificationHandler struct {
	pool          *pgxpool.Pool
	notifications repository.NotificationRepository
	users         repository.UserRepository
	notifySvc     *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(pool *pgxpool.Pool, notifications repository.NotificationRepository, users repository.UserRepository, notifySvc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{pool: pool, notifications: notifications, users: users, notifySvc: notifySvc}
}

// List handles GET /api/notifications?target_type=&sent=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	targetType := r.URL.Query().Get("target_type")
	if targetType != "" {
		if err := domain.ValidateTargetType(targetType); err != nil {
			RespondError(w, r, domain.ErrValidation(err.Error()))
			return
		}
	}

	var sent *bool
	if raw := r.URL.Query().Get("sent"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			RespondError(w, r, domain.ErrValidation("Invalid sent parameter"))
			return
		}
		sent = &v
	}

	list, err := h.notifications.List(r.Context(), h.pool, targetType, sent)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("list notifications", err))
		return
	}
	Respond(w, http.StatusOK, list)
}

// Get handles GET /api/notifications/{id}.
func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	n, err := h.notifications.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find notification", err))
		return
	}
	if n == nil {
		RespondError(w, r, domain.ErrNotFound("Notification", id))
		return
	}
	Respond(w, http.StatusOK, n)
}

type notificationInput struct {
	Title          string `json:"title"`
	Message        string `json:"message"`
	DestinationURL string `json:"destination_url"`
	ImageURL       string `json:"image_url"`
	IconURL        string `json:"icon_url"`
	TargetType     string `json:"target_type"`
	TargetUserID   *int64 `json:"target_user_id"`
}

func (h *NotificationHandler) validateTarget(r *http.Request, targetType string, targetUserID *int64) error {
	if err := domain.ValidateTargetType(targetType); err != nil {
		return domain.ErrValidation(err.Error())
	}
	if targetType == domain.NotificationTargetUser {
		if targetUserID == nil {
			return domain.ErrValidation("target_user_id is required for user notifications")
		}
		user, err := h.users.FindByID(r.Context(), h.pool, *targetUserID)
		if err != nil {
			return domain.ErrInternal("find user", err)
		}
		if user == nil {
			return domain.ErrNotFound("User", *targetUserID)
		}
	}
	return nil
}

// Create handles POST /api/notifications.
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input notificationInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}
	if input.Title == "" || input.Message == "" {
		RespondError(w, r, domain.ErrValidation("title and message are required"))
		return
	}
	if err := h.validateTarget(r, input.TargetType, input.TargetUserID); err != nil {
		RespondError(w, r, err)
		return
	}
	if input.TargetType == domain.NotificationTargetAll {
		input.TargetUserID = nil
	}

	n := &domain.Notification{
		Title:          input.Title,
		Message:        input.Message,
		DestinationURL: input.DestinationURL,
		ImageURL:       input.ImageURL,
		IconURL:        input.IconURL,
		TargetType:     input.TargetType,
		TargetUserID:   input.TargetUserID,
	}
	if err := h.notifications.Create(r.Context(), h.pool, n); err != nil {
		RespondError(w, r, domain.ErrInternal("create notification", err))
		return
	}
	Respond(w, http.StatusCreated, n)
}

// Update handles PUT /api/notifications/{id}. Sent notifications are frozen.
func (h *NotificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	n, err := h.notifications.FindByID(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find notification", err))
		return
	}
	if n == nil {
		RespondError(w, r, domain.ErrNotFound("Notification", id))
		return
	}
	if n.Sent {
		RespondError(w, r, domain.ErrValidation("Cannot update a sent notification"))
		return
	}

	var input notificationInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if input.Title != "" {
		n.Title = input.Title
	}
	if input.Message != "" {
		n.Message = input.Message
	}
	if input.DestinationURL != "" {
		n.DestinationURL = input.DestinationURL
	}
	if input.ImageURL != "" {
		n.ImageURL = input.ImageURL
	}
	if input.IconURL != "" {
		n.IconURL = input.IconURL
	}
	if input.TargetType != "" {
		if err := h.validateTarget(r, input.TargetType, input.TargetUserID); err != nil {
			RespondError(w, r, err)
			return
		}
		n.TargetType = input.TargetType
		if input.TargetType == domain.NotificationTargetAll {
			n.TargetUserID = nil
		} else {
			n.TargetUserID = input.TargetUserID
		}
	}

	if err := h.notifications.Update(r.Context(), h.pool, n); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, n)
}

// Delete handles DELETE /api/notifications/{id}.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.notifications.Delete(r.Context(), h.pool, id); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"message": "Notification deleted successfully"})
}

// Send handles POST /api/notifications/{id}/send.
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	n, err := h.notifySvc.Send(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, n)
}
