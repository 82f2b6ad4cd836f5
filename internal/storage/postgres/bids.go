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

const bidColumns = `id, gig_id, freelancer_id, proposed_amount, delivery_time, cover_letter, status, version, created_at, updated_at`

// BidRepo implements the storage.BidRepository interface using PostgreSQL.
type BidRepo struct {
	db Querier
}

// NewBidRepo creates a new BidRepo.
func NewBidRepo(db *pgxpool.Pool) *BidRepo {
	return &BidRepo{db: db}
}

// WithTx creates a new BidRepo bound to the transaction.
func (r *BidRepo) WithTx(tx pgx.Tx) *BidRepo {
	return &BidRepo{db: tx}
}

// Compile-time check to ensure BidRepo implements BidRepository
var _ storage.BidRepository = (*BidRepo)(nil)

func scanBid(row pgx.Row) (*models.Bid, error) {
	var bid models.Bid
	err := row.Scan(
		&bid.ID,
		&bid.GigID,
		&bid.FreelancerID,
		&bid.ProposedAmount,
		&bid.DeliveryTime,
		&bid.CoverLetter,
		&bid.Status,
		&bid.Version,
		&bid.CreatedAt,
		&bid.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// Create inserts a pending bid. The row is selected from gigs under FOR SHARE,
// so the insert waits for (and then re-checks against) any in-flight update
// of the gig; a hire committing first makes the insert match nothing.
func (r *BidRepo) Create(ctx context.Context, bid *models.Bid) (*models.Bid, error) {
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}

	query := `
		INSERT INTO bids (id, gig_id, freelancer_id, proposed_amount, delivery_time, cover_letter, status, version, created_at, updated_at)
		SELECT $1::uuid, g.id, $3::uuid, $4::numeric, $5::integer, $6::text, $7::text, 1, NOW(), NOW()
		FROM gigs g
		WHERE g.id = $2 AND g.status = $8 AND g.client_id <> $3::uuid
		FOR SHARE
		RETURNING ` + bidColumns

	created, err := scanBid(r.db.QueryRow(ctx, query,
		bid.ID,
		bid.GigID,
		bid.FreelancerID,
		bid.ProposedAmount,
		bid.DeliveryTime,
		bid.CoverLetter,
		models.BidStatusPending,
		models.GigStatusOpen,
	))
	if err == nil {
		log.Printf("Bid created successfully with ID: %s", created.ID)
		return created, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if errors.Is(classifyError(err), storage.ErrConflict) {
			log.Printf("Error creating bid (constraint violation) for gig %s by %s: %v\n", bid.GigID, bid.FreelancerID, err)
			return nil, fmt.Errorf("failed to create bid: freelancer already bid on gig: %w", storage.ErrConflict)
		}
		log.Printf("Error creating bid for gig %s: %v\n", bid.GigID, err)
		return nil, wrapDBError("failed to create bid", err)
	}

	// The guarded SELECT matched nothing; work out which guard failed.
	var clientID uuid.UUID
	var status models.GigStatus
	err = r.db.QueryRow(ctx, `SELECT client_id, status FROM gigs WHERE id = $1`, bid.GigID).Scan(&clientID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("gig %s: %w", bid.GigID, storage.ErrNotFound)
		}
		return nil, wrapDBError("failed to inspect gig for bid", err)
	}
	if clientID == bid.FreelancerID {
		return nil, fmt.Errorf("client cannot bid on own gig %s: %w", bid.GigID, storage.ErrForbidden)
	}
	return nil, fmt.Errorf("gig %s is %s: %w", bid.GigID, status, storage.ErrStateMismatch)
}

// GetByID retrieves a specific bid by its ID.
func (r *BidRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1`

	bid, err := scanBid(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning bid by ID %s: %v\n", id, err)
		return nil, wrapDBError(fmt.Sprintf("failed to get bid by ID %s", id), err)
	}
	return bid, nil
}

// bidDetailQuery selects bids with their bidder and gig. A bidder row is
// always present through the foreign key; COALESCE only guards the scan.
const bidDetailQuery = `
	SELECT b.id, b.gig_id, b.freelancer_id, b.proposed_amount, b.delivery_time, b.cover_letter,
	       b.status, b.version, b.created_at, b.updated_at,
	       COALESCE(u.name, ''), COALESCE(u.email, ''),
	       g.client_id, g.title, g.budget, g.status
	FROM bids b
	JOIN gigs g ON g.id = b.gig_id
	LEFT JOIN users u ON u.id = b.freelancer_id`

func scanBidDetail(row pgx.Row) (*models.BidDetail, error) {
	var d models.BidDetail
	err := row.Scan(
		&d.ID,
		&d.GigID,
		&d.FreelancerID,
		&d.ProposedAmount,
		&d.DeliveryTime,
		&d.CoverLetter,
		&d.Status,
		&d.Version,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Freelancer.Name,
		&d.Freelancer.Email,
		&d.Gig.ClientID,
		&d.Gig.Title,
		&d.Gig.Budget,
		&d.Gig.Status,
	)
	if err != nil {
		return nil, err
	}
	d.Freelancer.ID = d.FreelancerID
	d.Gig.ID = d.GigID
	return &d, nil
}

// GetDetail retrieves a bid with its bidder and gig.
func (r *BidRepo) GetDetail(ctx context.Context, id uuid.UUID) (*models.BidDetail, error) {
	detail, err := scanBidDetail(r.db.QueryRow(ctx, bidDetailQuery+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning bid detail by ID %s: %v\n", id, err)
		return nil, wrapDBError(fmt.Sprintf("failed to get bid by ID %s", id), err)
	}
	return detail, nil
}

// ListByGig retrieves every bid for a gig, newest first.
func (r *BidRepo) ListByGig(ctx context.Context, gigID uuid.UUID) ([]models.BidDetail, error) {
	return r.list(ctx, bidDetailQuery+` WHERE b.gig_id = $1 ORDER BY b.created_at DESC`, gigID)
}

// ListByFreelancer retrieves every bid a freelancer submitted, newest first.
func (r *BidRepo) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.BidDetail, error) {
	return r.list(ctx, bidDetailQuery+` WHERE b.freelancer_id = $1 ORDER BY b.created_at DESC`, freelancerID)
}

func (r *BidRepo) list(ctx context.Context, query string, args ...interface{}) ([]models.BidDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying bids: %v\n", err)
		return nil, wrapDBError("failed to query bids", err)
	}
	defer rows.Close()

	bids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.BidDetail, error) {
		d, err := scanBidDetail(row)
		if err != nil {
			return models.BidDetail{}, err
		}
		return *d, nil
	})
	if err != nil {
		log.Printf("Error scanning bids: %v\n", err)
		return nil, wrapDBError("failed to scan bids", err)
	}
	if bids == nil {
		bids = []models.BidDetail{}
	}
	return bids, nil
}

// MarkHired moves a pending bid to hired.
func (r *BidRepo) MarkHired(ctx context.Context, bidID uuid.UUID) (*models.Bid, error) {
	query := `
		UPDATE bids
		SET status = $2, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING ` + bidColumns

	bid, err := scanBid(r.db.QueryRow(ctx, query, bidID, models.BidStatusHired, models.BidStatusPending))
	if err == nil {
		return bid, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("Error marking bid %s hired: %v\n", bidID, err)
		return nil, wrapDBError(fmt.Sprintf("failed to mark bid %s hired", bidID), err)
	}

	current, err := r.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("bid %s is %s, expected %s: %w", bidID, current.Status, models.BidStatusPending, storage.ErrStateMismatch)
}

// RejectAllPendingExcept rejects the gig's pending bids other than exceptBidID.
func (r *BidRepo) RejectAllPendingExcept(ctx context.Context, gigID, exceptBidID uuid.UUID) ([]models.Bid, error) {
	query := `
		UPDATE bids
		SET status = $2, version = version + 1, updated_at = NOW()
		WHERE gig_id = $1 AND status = $3 AND id <> $4
		RETURNING ` + bidColumns

	rows, err := r.db.Query(ctx, query, gigID, models.BidStatusRejected, models.BidStatusPending, exceptBidID)
	if err != nil {
		log.Printf("Error rejecting pending bids for gig %s: %v\n", gigID, err)
		return nil, wrapDBError(fmt.Sprintf("failed to reject bids for gig %s", gigID), err)
	}
	defer rows.Close()

	rejected, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Bid])
	if err != nil {
		log.Printf("Error scanning rejected bids for gig %s: %v\n", gigID, err)
		return nil, wrapDBError(fmt.Sprintf("failed to reject bids for gig %s", gigID), err)
	}
	if rejected == nil {
		rejected = []models.Bid{}
	}

	log.Printf("Rejected %d pending bids for gig %s", len(rejected), gigID)
	return rejected, nil
}
