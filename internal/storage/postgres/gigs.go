package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gigflow/internal/models"
	"gigflow/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const gigColumns = `id, client_id, title, description, budget, category, status, hired_bid_id, version, created_at, updated_at`

// GigRepo implements the storage.GigRepository interface using PostgreSQL.
type GigRepo struct {
	db Querier
}

// NewGigRepo creates a new GigRepo.
func NewGigRepo(db *pgxpool.Pool) *GigRepo {
	return &GigRepo{db: db}
}

// WithTx creates a new GigRepo bound to the transaction.
func (r *GigRepo) WithTx(tx pgx.Tx) *GigRepo {
	return &GigRepo{db: tx}
}

// Compile-time check to ensure GigRepo implements GigRepository
var _ storage.GigRepository = (*GigRepo)(nil)

func scanGig(row pgx.Row) (*models.Gig, error) {
	var gig models.Gig
	err := row.Scan(
		&gig.ID,
		&gig.ClientID,
		&gig.Title,
		&gig.Description,
		&gig.Budget,
		&gig.Category,
		&gig.Status,
		&gig.HiredBidID,
		&gig.Version,
		&gig.CreatedAt,
		&gig.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &gig, nil
}

// Create saves a new open gig.
func (r *GigRepo) Create(ctx context.Context, gig *models.Gig) (*models.Gig, error) {
	if gig.ID == uuid.Nil {
		gig.ID = uuid.New()
	}

	query := `
		INSERT INTO gigs (id, client_id, title, description, budget, category, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1, NOW(), NOW())
		RETURNING ` + gigColumns

	created, err := scanGig(r.db.QueryRow(ctx, query,
		gig.ID,
		gig.ClientID,
		gig.Title,
		gig.Description,
		gig.Budget,
		gig.Category,
		models.GigStatusOpen,
	))
	if err != nil {
		log.Printf("Error creating gig for client %s: %v\n", gig.ClientID, err)
		return nil, wrapDBError("failed to create gig", err)
	}

	log.Printf("Gig created successfully with ID: %s", created.ID)
	return created, nil
}

// GetByID retrieves a specific gig by its ID.
func (r *GigRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	query := `SELECT ` + gigColumns + ` FROM gigs WHERE id = $1`

	gig, err := scanGig(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning gig by ID %s: %v\n", id, err)
		return nil, wrapDBError(fmt.Sprintf("failed to get gig by ID %s", id), err)
	}
	return gig, nil
}

// List retrieves a page of gigs matching filter along with the total match count.
func (r *GigRepo) List(ctx context.Context, filter models.GigFilter, offset, limit int) ([]models.Gig, int, error) {
	var conditions []string
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM gigs` + whereClause(conditions)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Printf("Error counting gigs: %v\n", err)
		return nil, 0, wrapDBError("failed to count gigs", err)
	}

	query := buildListQuery(`SELECT `+gigColumns+` FROM gigs`, conditions, &args, offset, limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying gigs: %v\n", err)
		return nil, 0, wrapDBError("failed to query gigs", err)
	}
	defer rows.Close()

	gigs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Gig])
	if err != nil {
		log.Printf("Error scanning gigs: %v\n", err)
		return nil, 0, wrapDBError("failed to scan gigs", err)
	}
	if gigs == nil {
		gigs = []models.Gig{}
	}
	return gigs, total, nil
}

// ListByClient retrieves every gig posted by a client, newest first.
func (r *GigRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Gig, error) {
	query := `SELECT ` + gigColumns + ` FROM gigs WHERE client_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		log.Printf("Error querying gigs by client %s: %v\n", clientID, err)
		return nil, wrapDBError("failed to query gigs by client", err)
	}
	defer rows.Close()

	gigs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Gig])
	if err != nil {
		log.Printf("Error scanning gigs by client %s: %v\n", clientID, err)
		return nil, wrapDBError("failed to scan gigs by client", err)
	}
	if gigs == nil {
		gigs = []models.Gig{}
	}
	return gigs, nil
}

// Assign moves an open gig to assigned and records the hired bid.
func (r *GigRepo) Assign(ctx context.Context, gigID, bidID uuid.UUID) (*models.Gig, error) {
	return r.transition(ctx, gigID, models.GigStatusOpen, models.GigStatusAssigned, &bidID)
}

// Cancel moves an open gig to cancelled.
func (r *GigRepo) Cancel(ctx context.Context, gigID uuid.UUID) (*models.Gig, error) {
	return r.transition(ctx, gigID, models.GigStatusOpen, models.GigStatusCancelled, nil)
}

// Complete moves an assigned gig to completed.
func (r *GigRepo) Complete(ctx context.Context, gigID uuid.UUID) (*models.Gig, error) {
	return r.transition(ctx, gigID, models.GigStatusAssigned, models.GigStatusCompleted, nil)
}

// transition performs the status change only while the row still holds the
// from status. hiredBidID, when non-nil, is written alongside.
func (r *GigRepo) transition(ctx context.Context, gigID uuid.UUID, from, to models.GigStatus, hiredBidID *uuid.UUID) (*models.Gig, error) {
	query := `
		UPDATE gigs
		SET status = $3,
		    hired_bid_id = COALESCE($4, hired_bid_id),
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + gigColumns

	gig, err := scanGig(r.db.QueryRow(ctx, query, gigID, from, to, hiredBidID))
	if err == nil {
		log.Printf("Gig %s moved from %s to %s", gigID, from, to)
		return gig, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("Error moving gig %s from %s to %s: %v\n", gigID, from, to, err)
		return nil, wrapDBError(fmt.Sprintf("failed to update gig %s", gigID), err)
	}

	// Nothing matched: tell a missing gig apart from one in another state.
	current, err := r.GetByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("gig %s is %s, expected %s: %w", gigID, current.Status, from, storage.ErrStateMismatch)
}
