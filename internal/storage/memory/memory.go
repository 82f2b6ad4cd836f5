// Package memory is an in-process storage backend. Every write goes through a
// single mutex and units of work run against a copy of the dataset that is
// swapped in only when the callback succeeds.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gigflow/internal/models"
	"gigflow/internal/storage"

	"github.com/google/uuid"
)

type bidKey struct {
	gigID        uuid.UUID
	freelancerID uuid.UUID
}

type gigRow struct {
	gig models.Gig
	seq uint64
}

type bidRow struct {
	bid models.Bid
	seq uint64
}

type dataset struct {
	users   map[uuid.UUID]models.User
	emails  map[string]uuid.UUID
	gigs    map[uuid.UUID]gigRow
	bids    map[uuid.UUID]bidRow
	bidKeys map[bidKey]uuid.UUID
	seq     uint64
}

func newDataset() *dataset {
	return &dataset{
		users:   make(map[uuid.UUID]models.User),
		emails:  make(map[string]uuid.UUID),
		gigs:    make(map[uuid.UUID]gigRow),
		bids:    make(map[uuid.UUID]bidRow),
		bidKeys: make(map[bidKey]uuid.UUID),
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		users:   make(map[uuid.UUID]models.User, len(d.users)),
		emails:  make(map[string]uuid.UUID, len(d.emails)),
		gigs:    make(map[uuid.UUID]gigRow, len(d.gigs)),
		bids:    make(map[uuid.UUID]bidRow, len(d.bids)),
		bidKeys: make(map[bidKey]uuid.UUID, len(d.bidKeys)),
		seq:     d.seq,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.emails {
		c.emails[k] = v
	}
	for k, v := range d.gigs {
		c.gigs[k] = v
	}
	for k, v := range d.bids {
		c.bids[k] = v
	}
	for k, v := range d.bidKeys {
		c.bidKeys[k] = v
	}
	return c
}

func (d *dataset) next() uint64 {
	d.seq++
	return d.seq
}

// Store holds the committed dataset.
type Store struct {
	mu   sync.Mutex
	data *dataset
	now  func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: newDataset(), now: func() time.Time { return time.Now().UTC() }}
}

// Repositories wires the store's repositories and unit of work.
func (s *Store) Repositories() storage.Repositories {
	return storage.Repositories{
		Users:      &UserRepo{store: s},
		Gigs:       &GigRepo{store: s},
		Bids:       &BidRepo{store: s},
		UnitOfWork: s,
	}
}

var _ storage.UnitOfWork = (*Store)(nil)

// view runs fn against either the transaction's dataset or, holding the lock,
// the committed one.
func (s *Store) view(tx *dataset, fn func(d *dataset)) {
	if tx != nil {
		fn(tx)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

type memTx struct {
	gigs *GigRepo
	bids *BidRepo
}

func (t *memTx) Gigs() storage.GigRepository { return t.gigs }
func (t *memTx) Bids() storage.BidRepository { return t.bids }

// Do holds the store lock for the whole callback. Writes land in a private
// copy which replaces the committed dataset only if fn succeeds and ctx is
// still live.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w: %w", storage.ErrUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	tx := &memTx{
		gigs: &GigRepo{store: s, tx: work},
		bids: &BidRepo{store: s, tx: work},
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w: %w", storage.ErrUnavailable, err)
	}
	s.data = work
	return nil
}

// UserRepo implements storage.UserRepository.
type UserRepo struct {
	store *Store
}

var _ storage.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var created models.User
	var err error
	r.store.view(nil, func(d *dataset) {
		email := strings.ToLower(user.Email)
		if _, exists := d.emails[email]; exists {
			err = fmt.Errorf("failed to create user: duplicate email: %w", storage.ErrConflict)
			return
		}
		created = *user
		if created.ID == uuid.Nil {
			created.ID = uuid.New()
		}
		now := r.store.now()
		created.CreatedAt, created.UpdatedAt = now, now
		d.users[created.ID] = created
		d.emails[email] = created.ID
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	var ok bool
	r.store.view(nil, func(d *dataset) { user, ok = d.users[id] })
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	var ok bool
	r.store.view(nil, func(d *dataset) {
		var id uuid.UUID
		if id, ok = d.emails[strings.ToLower(email)]; ok {
			user = d.users[id]
		}
	})
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

// GigRepo implements storage.GigRepository. A non-nil tx binds it to a unit of work.
type GigRepo struct {
	store *Store
	tx    *dataset
}

var _ storage.GigRepository = (*GigRepo)(nil)

func (r *GigRepo) Create(ctx context.Context, gig *models.Gig) (*models.Gig, error) {
	created := *gig
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.Status = models.GigStatusOpen
	created.HiredBidID = nil
	created.Version = 1
	r.store.view(r.tx, func(d *dataset) {
		now := r.store.now()
		created.CreatedAt, created.UpdatedAt = now, now
		d.gigs[created.ID] = gigRow{gig: created, seq: d.next()}
	})
	return &created, nil
}

func (r *GigRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	var row gigRow
	var ok bool
	r.store.view(r.tx, func(d *dataset) { row, ok = d.gigs[id] })
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &row.gig, nil
}

func (r *GigRepo) List(ctx context.Context, filter models.GigFilter, offset, limit int) ([]models.Gig, int, error) {
	var matched []gigRow
	search := strings.ToLower(filter.Search)
	r.store.view(r.tx, func(d *dataset) {
		for _, row := range d.gigs {
			g := row.gig
			if filter.Status != "" && g.Status != filter.Status {
				continue
			}
			if filter.Category != "" && g.Category != filter.Category {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(g.Title), search) &&
				!strings.Contains(strings.ToLower(g.Description), search) {
				continue
			}
			matched = append(matched, row)
		}
	})
	sortGigs(matched)

	total := len(matched)
	gigs := []models.Gig{}
	for i := offset; i < total && len(gigs) < limit; i++ {
		gigs = append(gigs, matched[i].gig)
	}
	return gigs, total, nil
}

func (r *GigRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Gig, error) {
	var matched []gigRow
	r.store.view(r.tx, func(d *dataset) {
		for _, row := range d.gigs {
			if row.gig.ClientID == clientID {
				matched = append(matched, row)
			}
		}
	})
	sortGigs(matched)

	gigs := make([]models.Gig, 0, len(matched))
	for _, row := range matched {
		gigs = append(gigs, row.gig)
	}
	return gigs, nil
}

func (r *GigRepo) Assign(ctx context.Context, gigID, bidID uuid.UUID) (*models.Gig, error) {
	return r.transition(gigID, models.GigStatusOpen, models.GigStatusAssigned, &bidID)
}

func (r *GigRepo) Cancel(ctx context.Context, gigID uuid.UUID) (*models.Gig, error) {
	return r.transition(gigID, models.GigStatusOpen, models.GigStatusCancelled, nil)
}

func (r *GigRepo) Complete(ctx context.Context, gigID uuid.UUID) (*models.Gig, error) {
	return r.transition(gigID, models.GigStatusAssigned, models.GigStatusCompleted, nil)
}

func (r *GigRepo) transition(gigID uuid.UUID, from, to models.GigStatus, hiredBidID *uuid.UUID) (*models.Gig, error) {
	var updated models.Gig
	var err error
	r.store.view(r.tx, func(d *dataset) {
		row, ok := d.gigs[gigID]
		if !ok {
			err = storage.ErrNotFound
			return
		}
		if row.gig.Status != from {
			err = fmt.Errorf("gig %s is %s, expected %s: %w", gigID, row.gig.Status, from, storage.ErrStateMismatch)
			return
		}
		row.gig.Status = to
		if hiredBidID != nil {
			id := *hiredBidID
			row.gig.HiredBidID = &id
		}
		row.gig.Version++
		row.gig.UpdatedAt = r.store.now()
		d.gigs[gigID] = row
		updated = row.gig
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// BidRepo implements storage.BidRepository. A non-nil tx binds it to a unit of work.
type BidRepo struct {
	store *Store
	tx    *dataset
}

var _ storage.BidRepository = (*BidRepo)(nil)

// Create checks the gig, the client rule and the (gig, freelancer) key under
// the same lock as the insert.
func (r *BidRepo) Create(ctx context.Context, bid *models.Bid) (*models.Bid, error) {
	var created models.Bid
	var err error
	r.store.view(r.tx, func(d *dataset) {
		gig, ok := d.gigs[bid.GigID]
		switch {
		case !ok:
			err = fmt.Errorf("gig %s: %w", bid.GigID, storage.ErrNotFound)
			return
		case gig.gig.ClientID == bid.FreelancerID:
			err = fmt.Errorf("client cannot bid on own gig %s: %w", bid.GigID, storage.ErrForbidden)
			return
		case gig.gig.Status != models.GigStatusOpen:
			err = fmt.Errorf("gig %s is %s: %w", bid.GigID, gig.gig.Status, storage.ErrStateMismatch)
			return
		}
		key := bidKey{gigID: bid.GigID, freelancerID: bid.FreelancerID}
		if _, exists := d.bidKeys[key]; exists {
			err = fmt.Errorf("failed to create bid: freelancer already bid on gig: %w", storage.ErrConflict)
			return
		}

		created = *bid
		if created.ID == uuid.Nil {
			created.ID = uuid.New()
		}
		created.Status = models.BidStatusPending
		created.Version = 1
		now := r.store.now()
		created.CreatedAt, created.UpdatedAt = now, now
		d.bids[created.ID] = bidRow{bid: created, seq: d.next()}
		d.bidKeys[key] = created.ID
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *BidRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	var row bidRow
	var ok bool
	r.store.view(r.tx, func(d *dataset) { row, ok = d.bids[id] })
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &row.bid, nil
}

// GetDetail returns the bid with its bidder and gig as they are now.
func (r *BidRepo) GetDetail(ctx context.Context, id uuid.UUID) (*models.BidDetail, error) {
	var detail models.BidDetail
	var ok bool
	r.store.view(r.tx, func(d *dataset) {
		var row bidRow
		if row, ok = d.bids[id]; ok {
			detail = d.detail(row.bid)
		}
	})
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &detail, nil
}

func (r *BidRepo) ListByGig(ctx context.Context, gigID uuid.UUID) ([]models.BidDetail, error) {
	return r.list(func(b models.Bid) bool { return b.GigID == gigID }), nil
}

func (r *BidRepo) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.BidDetail, error) {
	return r.list(func(b models.Bid) bool { return b.FreelancerID == freelancerID }), nil
}

func (r *BidRepo) list(match func(models.Bid) bool) []models.BidDetail {
	type bidMatch struct {
		detail models.BidDetail
		seq    uint64
	}
	var matched []bidMatch
	r.store.view(r.tx, func(d *dataset) {
		for _, row := range d.bids {
			if match(row.bid) {
				matched = append(matched, bidMatch{detail: d.detail(row.bid), seq: row.seq})
			}
		}
	})
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq > matched[j].seq })

	bids := make([]models.BidDetail, 0, len(matched))
	for _, m := range matched {
		bids = append(bids, m.detail)
	}
	return bids
}

// detail joins bid with its bidder and gig. A bidder that was never stored
// as a user keeps only its id.
func (d *dataset) detail(bid models.Bid) models.BidDetail {
	detail := models.BidDetail{
		Bid:        bid,
		Freelancer: models.UserSummary{ID: bid.FreelancerID},
		Gig:        models.GigSummary{ID: bid.GigID},
	}
	if user, ok := d.users[bid.FreelancerID]; ok {
		detail.Freelancer.Name = user.Name
		detail.Freelancer.Email = user.Email
	}
	if row, ok := d.gigs[bid.GigID]; ok {
		detail.Gig.ClientID = row.gig.ClientID
		detail.Gig.Title = row.gig.Title
		detail.Gig.Budget = row.gig.Budget
		detail.Gig.Status = row.gig.Status
	}
	return detail
}

func (r *BidRepo) MarkHired(ctx context.Context, bidID uuid.UUID) (*models.Bid, error) {
	var updated models.Bid
	var err error
	r.store.view(r.tx, func(d *dataset) {
		row, ok := d.bids[bidID]
		if !ok {
			err = storage.ErrNotFound
			return
		}
		if row.bid.Status != models.BidStatusPending {
			err = fmt.Errorf("bid %s is %s, expected %s: %w", bidID, row.bid.Status, models.BidStatusPending, storage.ErrStateMismatch)
			return
		}
		row.bid.Status = models.BidStatusHired
		row.bid.Version++
		row.bid.UpdatedAt = r.store.now()
		d.bids[bidID] = row
		updated = row.bid
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *BidRepo) RejectAllPendingExcept(ctx context.Context, gigID, exceptBidID uuid.UUID) ([]models.Bid, error) {
	var rejected []bidRow
	r.store.view(r.tx, func(d *dataset) {
		now := r.store.now()
		for id, row := range d.bids {
			if row.bid.GigID != gigID || row.bid.Status != models.BidStatusPending || id == exceptBidID {
				continue
			}
			row.bid.Status = models.BidStatusRejected
			row.bid.Version++
			row.bid.UpdatedAt = now
			d.bids[id] = row
			rejected = append(rejected, row)
		}
	})
	sort.Slice(rejected, func(i, j int) bool { return rejected[i].seq < rejected[j].seq })

	bids := make([]models.Bid, 0, len(rejected))
	for _, row := range rejected {
		bids = append(bids, row.bid)
	}
	return bids, nil
}

func sortGigs(rows []gigRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
}
