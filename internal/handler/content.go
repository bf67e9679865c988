package handler

import (
	"net/http"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContentHandler handles FAQ and content page management.
type ContentHandler struct {
	pool    *pgxpool.Pool
	content repository.ContentRepository
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(pool *pgxpool.Pool, content repository.ContentRepository) *ContentHandler {
	return &ContentHandler{pool: pool, content: content}
}

// ListFAQs handles GET /api/content/faqs?published_only=.
func (h *ContentHandler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	publishedOnly := r.URL.Query().Get("published_only") == "true"

	faqs, err := h.content.ListFAQs(r.Context(), h.pool, publishedOnly)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("list faqs", err))
		return
	}
	Respond(w, http.StatusOK, faqs)
}

// GetFAQ handles GET /api/content/faqs/{id}.
func (h *ContentHandler) GetFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	faq, err := h.content.FindFAQ(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find faq", err))
		return
	}
	if faq == nil {
		RespondError(w, r, domain.ErrNotFound("FAQ", id))
		return
	}
	Respond(w, http.StatusOK, faq)
}

type faqInput struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder *int   `json:"order"`
	IsPublished  *bool  `json:"is_published"`
}

// CreateFAQ handles POST /api/content/faqs.
func (h *ContentHandler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var input faqInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}
	if input.Question == "" || input.Answer == "" {
		RespondError(w, r, domain.ErrValidation("question and answer are required"))
		return
	}

	faq := &domain.FAQ{
		Question:    input.Question,
		Answer:      input.Answer,
		IsPublished: true,
	}
	if input.DisplayOrder != nil {
		faq.DisplayOrder = *input.DisplayOrder
	}
	if input.IsPublished != nil {
		faq.IsPublished = *input.IsPublished
	}
	if err := h.content.CreateFAQ(r.Context(), h.pool, faq); err != nil {
		RespondError(w, r, domain.ErrInternal("create faq", err))
		return
	}
	Respond(w, http.StatusCreated, faq)
}

// UpdateFAQ handles PUT /api/content/faqs/{id}.
func (h *ContentHandler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	faq, err := h.content.FindFAQ(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find faq", err))
		return
	}
	if faq == nil {
		RespondError(w, r, domain.ErrNotFound("FAQ", id))
		return
	}

	var input faqInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if input.Question != "" {
		faq.Question = input.Question
	}
	if input.Answer != "" {
		faq.Answer = input.Answer
	}
	if input.DisplayOrder != nil {
		faq.DisplayOrder = *input.DisplayOrder
	}
	if input.IsPublished != nil {
		faq.IsPublished = *input.IsPublished
	}

	if err := h.content.UpdateFAQ(r.Context(), h.pool, faq); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, faq)
}

// DeleteFAQ handles DELETE /api/content/faqs/{id}.
func (h *ContentHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.content.DeleteFAQ(r.Context(), h.pool, id); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"message": "FAQ deleted successfully"})
}

// ListPages handles GET /api/content/pages?published_only=.
func (h *ContentHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	publishedOnly := r.URL.Query().Get("published_only") == "true"

	pages, err := h.content.ListPages(r.Context(), h.pool, publishedOnly)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("list pages", err))
		return
	}
	Respond(w, http.StatusOK, pages)
}

// GetPage handles GET /api/content/pages/{id}.
func (h *ContentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	page, err := h.content.FindPage(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find page", err))
		return
	}
	if page == nil {
		RespondError(w, r, domain.ErrNotFound("Content page", id))
		return
	}
	Respond(w, http.StatusOK, page)
}

// GetPageByType handles GET /api/content/pages/type/{type}.
func (h *ContentHandler) GetPageByType(w http.ResponseWriter, r *http.Request) {
	pageType := chi.URLParam(r, "type")

	page, err := h.content.FindPageByType(r.Context(), h.pool, pageType)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find page", err))
		return
	}
	if page == nil {
		RespondError(w, r, domain.ErrNotFound("Content page", pageType))
		return
	}
	Respond(w, http.StatusOK, page)
}

type pageInput struct {
	PageType    string `json:"page_type"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsPublished *bool  `json:"is_published"`
}

// CreatePage handles POST /api/content/pages.
func (h *ContentHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var input pageInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}
	if input.PageType == "" || input.Title == "" {
		RespondError(w, r, domain.ErrValidation("page_type and title are required"))
		return
	}

	if existing, err := h.content.FindPageByType(r.Context(), h.pool, input.PageType); err != nil {
		RespondError(w, r, domain.ErrInternal("find page", err))
		return
	} else if existing != nil {
		RespondError(w, r, domain.ErrDuplicate("Page with this type already exists"))
		return
	}

	page := &domain.ContentPage{
		PageType:    input.PageType,
		Title:       input.Title,
		Content:     input.Content,
		IsPublished: true,
	}
	if input.IsPublished != nil {
		page.IsPublished = *input.IsPublished
	}
	if err := h.content.CreatePage(r.Context(), h.pool, page); err != nil {
		RespondError(w, r, domain.ErrInternal("create page", err))
		return
	}
	Respond(w, http.StatusCreated, page)
}

// UpdatePage handles PUT and PATCH /api/content/pages/{id}.
func (h *ContentHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	page, err := h.content.FindPage(r.Context(), h.pool, id)
	if err != nil {
		RespondError(w, r, domain.ErrInternal("find page", err))
		return
	}
	if page == nil {
		RespondError(w, r, domain.ErrNotFound("Content page", id))
		return
	}

	var input pageInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if input.PageType != "" && input.PageType != page.PageType {
		if existing, err := h.content.FindPageByType(r.Context(), h.pool, input.PageType); err != nil {
			RespondError(w, r, domain.ErrInternal("find page", err))
			return
		} else if existing != nil {
			RespondError(w, r, domain.ErrDuplicate("Page with this type already exists"))
			return
		}
		page.PageType = input.PageType
	}
	if input.Title != "" {
		page.Title = input.Title
	}
	if input.Content != "" {
		page.Content = input.Content
	}
	if input.IsPublished != nil {
		page.IsPublished = *input.IsPublished
	}

	if err := h.content.UpdatePage(r.Context(), h.pool, page); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, page)
}

// DeletePage handles DELETE /api/content/pages/{id}.
func (h *ContentHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.content.DeletePage(r.Context(), h.pool, id); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, map[string]string{"message": "Content page deleted successfully"})
}
