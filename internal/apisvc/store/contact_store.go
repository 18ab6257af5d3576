package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactColumns = `id, user_id, first_name, last_name, nickname, position,
    phone, additional_phones, email, company, website, notes,
    is_favorite, card_image, created_at, updated_at`

type ContactStore struct {
	db *pgxpool.Pool
}

func NewContactStore(db *pgxpool.Pool) *ContactStore {
	return &ContactStore{db: db}
}

func scanContact(row pgx.Row) (*models.Contact, error) {
	c := &models.Contact{}
	err := row.Scan(
		&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Nickname, &c.Position,
		&c.Phone, &c.AdditionalPhones, &c.Email, &c.Company, &c.Website, &c.Notes,
		&c.IsFavorite, &c.CardImage, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.AdditionalPhones == nil {
		c.AdditionalPhones = []string{}
	}
	return c, nil
}

// ListByUser returns the owner's contacts, newest first.
func (r *ContactStore) ListByUser(ctx context.Context, userID string) ([]models.Contact, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+contactColumns+`
        FROM contacts
        WHERE user_id = $1
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func (r *ContactStore) GetByID(ctx context.Context, userID, id string) (*models.Contact, error) {
	row := r.db.QueryRow(ctx, `
        SELECT `+contactColumns+`
        FROM contacts
        WHERE id = $1 AND user_id = $2
    `, id, userID)
	return scanContact(row)
}

func (r *ContactStore) Create(ctx context.Context, c models.Contact) (*models.Contact, error) {
	if c.AdditionalPhones == nil {
		c.AdditionalPhones = []string{}
	}
	row := r.db.QueryRow(ctx, `
        INSERT INTO contacts (id, user_id, first_name, last_name, nickname, position,
            phone, additional_phones, email, company, website, notes,
            is_favorite, card_image)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING `+contactColumns+`
    `, c.ID, c.UserID, c.FirstName, c.LastName, c.Nickname, c.Position,
		c.Phone, c.AdditionalPhones, c.Email, c.Company, c.Website, c.Notes,
		c.IsFavorite, c.CardImage)

	created, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("could not create contact: %v", err)
	}
	return created, nil
}

// Replace overwrites every mutable column of the owner's contact.
func (r *ContactStore) Replace(ctx context.Context, c models.Contact) (*models.Contact, error) {
	if c.AdditionalPhones == nil {
		c.AdditionalPhones = []string{}
	}
	row := r.db.QueryRow(ctx, `
        UPDATE contacts
        SET first_name = $3, last_name = $4, nickname = $5, position = $6,
            phone = $7, additional_phones = $8, email = $9, company = $10,
            website = $11, notes = $12, is_favorite = $13, card_image = $14,
            updated_at = now()
        WHERE id = $1 AND user_id = $2
        RETURNING `+contactColumns+`
    `, c.ID, c.UserID, c.FirstName, c.LastName, c.Nickname, c.Position,
		c.Phone, c.AdditionalPhones, c.Email, c.Company, c.Website, c.Notes,
		c.IsFavorite, c.CardImage)

	return scanContact(row)
}

func (r *ContactStore) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `
        DELETE FROM contacts WHERE id = $1 AND user_id = $2
    `, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
