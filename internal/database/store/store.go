package store

import (
	"context"
	"errors"
	"time"

	"github.com/ltplabs/ecatalog/internal/database/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrConstraint    = errors.New("store: constraint violation")

	// ErrConflict is returned by conditional updates that matched no row
	// because the row is no longer in the expected state.
	ErrConflict = errors.New("store: state conflict")
)

// Store is the root data access interface. Drivers implement it and expose
// one sub-repository per table so a Tx-scoped store can be handed to a
// service without leaking the connection.
type Store interface {
	Admins() Admins
	Clients() Clients
	Requests() Requests
	Logs() Logs
	Demos() Demos
	Images() Images
	Views() Views

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. The transaction is committed
	// when fn returns nil and rolled back otherwise, including on panic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Optimize runs planner statistics refresh and a WAL checkpoint.
	Optimize(ctx context.Context) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Admins interface {
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
	GetAdminByID(ctx context.Context, id string) (domain.Admin, error)

	// GetAdminByEmail returns the admin including its password hash.
	GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error)

	CreateAdmin(ctx context.Context, a domain.Admin) error
}

type Clients interface {
	// ListClients returns all clients, newest first.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// ListActiveClients returns clients whose access window contains now.
	ListActiveClients(ctx context.Context) ([]domain.Client, error)

	// ListExpiredClients returns clients whose expiration is in the past.
	ListExpiredClients(ctx context.Context) ([]domain.Client, error)

	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// GetClientByEmail returns the client including its password hash.
	GetClientByEmail(ctx context.Context, email string) (domain.Client, error)

	CreateClient(ctx context.Context, c domain.Client) error

	// UpdateClient applies the non-nil fields of the patch. An empty patch
	// only checks the client exists.
	UpdateClient(ctx context.Context, id string, patch domain.ClientPatch) error

	// SetClientExpiration overwrites data_expiracao.
	SetClientExpiration(ctx context.Context, id string, expiresAt time.Time) error

	// DeleteClient cascades to the client's requests and nulls its log refs.
	DeleteClient(ctx context.Context, id string) error
}

type Requests interface {
	// ListRequests returns all requests, newest first.
	ListRequests(ctx context.Context) ([]domain.Request, error)

	// ListRequestsByStatus returns pending requests oldest first (queue
	// order) and resolved requests newest first.
	ListRequestsByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.Request, error)

	ListRequestsByClient(ctx context.Context, clientID string) ([]domain.Request, error)
	GetRequestByID(ctx context.Context, id string) (domain.Request, error)

	// CreateRequest inserts a pending request with no manager.
	CreateRequest(ctx context.Context, r domain.Request) error

	// ResolveRequest moves a pending request to status, recording the
	// managing admin. Returns ErrConflict if the request is not pending
	// (or does not exist) at the time of the update.
	ResolveRequest(ctx context.Context, id string, status domain.RequestStatus, adminID string) error

	DeleteRequest(ctx context.Context, id string) error

	// ListPendingWithClient returns pending requests joined with client info.
	ListPendingWithClient(ctx context.Context) ([]domain.PendingRequest, error)
}

type Logs interface {
	ListLogs(ctx context.Context, limit int) ([]domain.LogEntry, error)
	GetLogByID(ctx context.Context, id string) (domain.LogEntry, error)
	ListLogsByClient(ctx context.Context, clientID string, limit int) ([]domain.LogEntry, error)
	ListLogsByDemo(ctx context.Context, demoID string, limit int) ([]domain.LogEntry, error)
	ListLogsByKind(ctx context.Context, kind domain.LogKind, limit int) ([]domain.LogEntry, error)

	// CreateLog appends an entry. The timestamp is set by the store when zero.
	CreateLog(ctx context.Context, e domain.LogEntry) error

	DeleteLog(ctx context.Context, id string) error

	// Stats groups entries by kind, largest group first.
	Stats(ctx context.Context) ([]domain.LogStats, error)
}

type Demos interface {
	// ListDemos returns all demos ordered by name.
	ListDemos(ctx context.Context) ([]domain.Demo, error)
	ListActiveDemos(ctx context.Context) ([]domain.Demo, error)
	ListDemosByVertical(ctx context.Context, vertical string) ([]domain.Demo, error)
	ListDemosByHorizontal(ctx context.Context, horizontal string) ([]domain.Demo, error)
	GetDemoByID(ctx context.Context, id string) (domain.Demo, error)
	CreateDemo(ctx context.Context, d domain.Demo) error

	// UpdateDemo applies the non-nil fields and bumps atualizado_em.
	UpdateDemo(ctx context.Context, id string, patch domain.DemoPatch) error

	DeleteDemo(ctx context.Context, id string) error
}

type Images interface {
	// ListImages returns images by name, newest version first.
	ListImages(ctx context.Context) ([]domain.Image, error)
	ListImagesByName(ctx context.Context, name string) ([]domain.Image, error)
	GetImageByID(ctx context.Context, id string) (domain.Image, error)
	CreateImage(ctx context.Context, img domain.Image) error

	// UpdateImage applies the non-nil fields and bumps atualizado_em.
	UpdateImage(ctx context.Context, id string, patch domain.ImagePatch) error

	DeleteImage(ctx context.Context, id string) error
}

// Views reads the reporting views. They are read-only.
type Views interface {
	// ActiveClients lists clients inside their access window, those about
	// to expire first.
	ActiveClients(ctx context.Context) ([]domain.ActiveClient, error)
	ActiveDemos(ctx context.Context) ([]domain.ActiveDemo, error)

	// ClientStats lists per-client activity, most demo opens first.
	ClientStats(ctx context.Context) ([]domain.ClientStats, error)
	ClientStatsByID(ctx context.Context, clientID string) (domain.ClientStats, error)
}
