package repository

import (
	"context"
	"errors"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type contentRepo struct{}

// NewContentRepository returns a pgx-backed ContentRepository.
func NewContentRepository() ContentRepository {
	return &contentRepo{}
}

const faqColumns = `id, question, answer, display_order, is_published, created_at, updated_at`

func scanFAQ(row pgx.Row) (*domain.FAQ, error) {
	f := &domain.FAQ{}
	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.DisplayOrder, &f.IsPublished,
		&f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *contentRepo) FindFAQ(ctx context.Context, db DBTX, id int64) (*domain.FAQ, error) {
	return scanFAQ(db.QueryRow(ctx, `SELECT `+faqColumns+` FROM faqs WHERE id = $1`, id))
}

func (r *contentRepo) ListFAQs(ctx context.Context, db DBTX, publishedOnly bool) ([]domain.FAQ, error) {
	rows, err := db.Query(ctx, `
		SELECT `+faqColumns+` FROM faqs
		WHERE (NOT $1 OR is_published)
		ORDER BY display_order, id`, publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var faqs []domain.FAQ
	for rows.Next() {
		f := domain.FAQ{}
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.DisplayOrder, &f.IsPublished,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

func (r *contentRepo) CreateFAQ(ctx context.Context, db DBTX, faq *domain.FAQ) error {
	return db.QueryRow(ctx, `
		INSERT INTO faqs (question, answer, display_order, is_published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		faq.Question, faq.Answer, faq.DisplayOrder, faq.IsPublished,
	).Scan(&faq.ID, &faq.CreatedAt, &faq.UpdatedAt)
}

func (r *contentRepo) UpdateFAQ(ctx context.Context, db DBTX, faq *domain.FAQ) error {
	tag, err := db.Exec(ctx, `
		UPDATE faqs
		SET question = $2, answer = $3, display_order = $4, is_published = $5, updated_at = now()
		WHERE id = $1`,
		faq.ID, faq.Question, faq.Answer, faq.DisplayOrder, faq.IsPublished)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("FAQ", faq.ID)
	}
	return nil
}

func (r *contentRepo) DeleteFAQ(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("FAQ", id)
	}
	return nil
}

const pageColumns = `id, page_type, title, content, is_published, created_at, updated_at`

func scanPage(row pgx.Row) (*domain.ContentPage, error) {
	p := &domain.ContentPage{}
	err := row.Scan(&p.ID, &p.PageType, &p.Title, &p.Content, &p.IsPublished,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *contentRepo) FindPage(ctx context.Context, db DBTX, id int64) (*domain.ContentPage, error) {
	return scanPage(db.QueryRow(ctx, `SELECT `+pageColumns+` FROM content_pages WHERE id = $1`, id))
}

func (r *contentRepo) FindPageByType(ctx context.Context, db DBTX, pageType string) (*domain.ContentPage, error) {
	return scanPage(db.QueryRow(ctx, `SELECT `+pageColumns+` FROM content_pages WHERE page_type = $1`, pageType))
}

func (r *contentRepo) ListPages(ctx context.Context, db DBTX, publishedOnly bool) ([]domain.ContentPage, error) {
	rows, err := db.Query(ctx, `
		SELECT `+pageColumns+` FROM content_pages
		WHERE (NOT $1 OR is_published)
		ORDER BY page_type`, publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var pages []domain.ContentPage
	for rows.Next() {
		p := domain.ContentPage{}
		if err := rows.Scan(&p.ID, &p.PageType, &p.Title, &p.Content, &p.IsPublished,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (r *contentRepo) CreatePage(ctx context.Context, db DBTX, page *domain.ContentPage) error {
	return db.QueryRow(ctx, `
		INSERT INTO content_pages (page_type, title, content, is_published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		page.PageType, page.Title, page.Content, page.IsPublished,
	).Scan(&page.ID, &page.CreatedAt, &page.UpdatedAt)
}

func (r *contentRepo) UpdatePage(ctx context.Context, db DBTX, page *domain.ContentPage) error {
	tag, err := db.Exec(ctx, `
		UPDATE content_pages
		SET page_type = $2, title = $3, content = $4, is_published = $5, updated_at = now()
		WHERE id = $1`,
		page.ID, page.PageType, page.Title, page.Content, page.IsPublished)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Content page", page.ID)
	}
	return nil
}

func (r *contentRepo) DeletePage(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM content_pages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("Content page", id)
	}
	return nil
}
