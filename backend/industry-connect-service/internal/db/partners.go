package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/anaghasb/CC-phase2-integration/backend/industry-connect-service/internal/models"
	"github.com/jackc/pgx/v5"
)

const partnerColumns = `id, company_name, domain, contact_person, contact_email, description`

func scanPartner(row pgx.Row) (*models.IndustryPartner, error) {
	var p models.IndustryPartner
	if err := row.Scan(&p.ID, &p.CompanyName, &p.Domain, &p.ContactPerson, &p.ContactEmail, &p.Description); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePartner inserts a partner and returns the stored row.
func (db *Database) CreatePartner(ctx context.Context, req models.IndustryPartnerCreateRequest) (*models.IndustryPartner, error) {
	query := `
	    INSERT INTO industry_partners (company_name, domain, contact_person, contact_email, description)
	    VALUES ($1, $2, $3, $4, $5)
	    RETURNING ` + partnerColumns
	p, err := scanPartner(db.Pool.QueryRow(ctx, query,
		req.CompanyName, req.Domain, req.ContactPerson, req.ContactEmail, req.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}
	return p, nil
}

// ListPartners returns every partner ordered by id
func (db *Database) ListPartners(ctx context.Context) ([]models.IndustryPartner, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+partnerColumns+` FROM industry_partners ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partners := make([]models.IndustryPartner, 0)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		partners = append(partners, *p)
	}
	return partners, rows.Err()
}

// GetPartner returns a partner by ID
func (db *Database) GetPartner(ctx context.Context, id int) (*models.IndustryPartner, error) {
	p, err := scanPartner(db.Pool.QueryRow(ctx,
		`SELECT `+partnerColumns+` FROM industry_partners WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundIfNoRows(err, "partner")
	}
	return p, nil
}

// buildPartnerUpdate turns the supplied fields into a SET list. The partner id
// is always the last argument.
func buildPartnerUpdate(id int, req models.IndustryPartnerUpdateRequest) (string, []interface{}) {
	var setParts []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.CompanyName.Set {
		add("company_name", req.CompanyName.Value)
	}
	if req.Domain.Set {
		add("domain", req.Domain.Value)
	}
	if req.ContactPerson.Set {
		add("contact_person", req.ContactPerson.Value)
	}
	if req.ContactEmail.Set {
		add("contact_email", req.ContactEmail.Value)
	}
	if req.Description.Set {
		if req.Description.Null {
			add("description", nil)
		} else {
			add("description", req.Description.Value)
		}
	}

	if len(setParts) == 0 {
		return "", nil
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE industry_partners SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setParts, ", "), len(args), partnerColumns)
	return query, args
}

// UpdatePartner applies the supplied fields and returns the updated row.
// An update with no fields returns the current row unchanged.
func (db *Database) UpdatePartner(ctx context.Context, id int, req models.IndustryPartnerUpdateRequest) (*models.IndustryPartner, error) {
	query, args := buildPartnerUpdate(id, req)
	if query == "" {
		return db.GetPartner(ctx, id)
	}
	p, err := scanPartner(db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFoundIfNoRows(err, "partner")
	}
	return p, nil
}

// DeletePartner deletes a partner by ID. Its user links go with it.
func (db *Database) DeletePartner(ctx context.Context, id int) error {
	cmd, err := db.Pool.Exec(ctx, `DELETE FROM industry_partners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete partner: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("partner: %w", ErrNotFound)
	}
	return nil
}

// CreateUserLink links a user to an existing partner.
func (db *Database) CreateUserLink(ctx context.Context, req models.UserIndustryLinkCreateRequest) (*models.UserIndustryLink, error) {
	var l models.UserIndustryLink
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO user_industry_links (user_id, partner_id) VALUES ($1, $2) RETURNING id, user_id, partner_id`,
		req.UserID, req.PartnerID,
	).Scan(&l.ID, &l.UserID, &l.PartnerID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("partner: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create user link: %w", err)
	}
	return &l, nil
}

// ListUserLinks returns every user link ordered by id
func (db *Database) ListUserLinks(ctx context.Context) ([]models.UserIndustryLink, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, user_id, partner_id FROM user_industry_links ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]models.UserIndustryLink, 0)
	for rows.Next() {
		var l models.UserIndustryLink
		if err := rows.Scan(&l.ID, &l.UserID, &l.PartnerID); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
