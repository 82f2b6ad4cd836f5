package postgres

import (
	"context"
	"log"

	"gigflow/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWork runs callbacks inside one READ COMMITTED transaction. Atomicity
// comes from the transaction; isolation between racing writers comes from the
// conditioned writes the repositories issue.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork creates a new UnitOfWork over the pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

var _ storage.UnitOfWork = (*UnitOfWork)(nil)

type pgTx struct {
	gigs *GigRepo
	bids *BidRepo
}

func (t *pgTx) Gigs() storage.GigRepository { return t.gigs }
func (t *pgTx) Bids() storage.BidRepository { return t.bids }

// Do begins a transaction, runs fn with transaction-bound repositories and
// commits. Any error from fn rolls everything back.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		log.Printf("UnitOfWork: Error beginning transaction: %v", err)
		return wrapDBError("failed to begin transaction", err)
	}
	defer tx.Rollback(context.WithoutCancel(ctx)) //nolint:errcheck // no-op after commit

	bound := &pgTx{
		gigs: (&GigRepo{}).WithTx(tx),
		bids: (&BidRepo{}).WithTx(tx),
	}
	if err := fn(ctx, bound); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("UnitOfWork: Error committing transaction: %v", err)
		return wrapDBError("failed to commit transaction", err)
	}
	return nil
}

// NewRepositories wires every PostgreSQL repository over one pool.
func NewRepositories(pool *pgxpool.Pool) storage.Repositories {
	return storage.Repositories{
		Users:      NewUserRepo(pool),
		Gigs:       NewGigRepo(pool),
		Bids:       NewBidRepo(pool),
		UnitOfWork: NewUnitOfWork(pool),
	}
}
