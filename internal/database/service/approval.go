package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
	"github.com/ltplabs/ecatalog/pkg/idx"
	"github.com/ltplabs/ecatalog/pkg/metricsx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// Approve resolves a pending request as aprovado. For renewals the client's
// expiration moves to newExpiration, or RenewalPeriodDays past its current
// value when newExpiration is nil. The status change, the client update and
// the audit log entry commit together or not at all.
func (s *RequestService) Approve(
	ctx context.Context,
	requestID string,
	adminID string,
	newExpiration *time.Time,
) (req domain.Request, err error) {
	defer func() { metricsx.RecordResolution("approve", outcome(err)) }()

	return s.resolve(ctx, requestID, adminID, domain.RequestApproved, func(tx store.Tx, req domain.Request) error {
		if req.Kind != domain.RequestRenewal {
			return nil
		}

		client, err := tx.Clients().GetClientByID(ctx, req.ClientID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidClient
			}
			return err
		}

		expiresAt := client.ExpiresAt.AddDate(0, 0, RenewalPeriodDays)
		if newExpiration != nil {
			expiresAt = newExpiration.UTC()
		}

		if err := tx.Clients().SetClientExpiration(ctx, client.ID, expiresAt); err != nil {
			return mapStoreErr(err, ErrInvalidClient)
		}

		slogx.FromContext(ctx).Debug("client access extended",
			slog.String("client_id", client.ID),
			slog.Time("previous", client.ExpiresAt),
			slog.Time("expires_at", expiresAt),
		)
		return nil
	})
}

// Reject resolves a pending request as rejeitado. The client is not touched;
// only the status change and an audit log entry are written.
func (s *RequestService) Reject(ctx context.Context, requestID, adminID string) (req domain.Request, err error) {
	defer func() { metricsx.RecordResolution("reject", outcome(err)) }()

	return s.resolve(ctx, requestID, adminID, domain.RequestRejected, nil)
}

// resolve runs the shared resolution flow. effect, when non-nil, runs inside
// the transaction after the status update and before the log entry.
func (s *RequestService) resolve(
	ctx context.Context,
	requestID string,
	adminID string,
	status domain.RequestStatus,
	effect func(tx store.Tx, req domain.Request) error,
) (domain.Request, error) {
	log := slogx.FromContext(ctx).With(
		slog.String("request_id", requestID),
		slog.String("admin_id", adminID),
		slog.String("decision", string(status)),
	)

	// 1. Fetch the request.
	req, err := s.Store.Requests().GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Request{}, ErrRequestNotFound
		}
		log.Error("failed to fetch request", slog.Any("error", err))
		return domain.Request{}, err
	}

	// 2. Only pending requests can be resolved.
	if req.Status != domain.RequestPending {
		log.Warn("request already resolved", slog.String("status", string(req.Status)))
		return domain.Request{}, fmt.Errorf("%w: request is %s", ErrInvalidState, req.Status)
	}

	// 3. Validate the managing admin.
	if _, err := s.Store.Admins().GetAdminByID(ctx, adminID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("resolution by unknown admin")
			return domain.Request{}, ErrInvalidAdmin
		}
		log.Error("failed to fetch admin", slog.Any("error", err))
		return domain.Request{}, err
	}

	// 4. Status change, side effect and audit entry in one transaction.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Requests().ResolveRequest(ctx, req.ID, status, adminID); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return fmt.Errorf("%w: request was resolved concurrently", ErrInvalidState)
			}
			return err
		}

		if effect != nil {
			if err := effect(tx, req); err != nil {
				return err
			}
		}

		kind, verb := domain.LogAccessGranted, "aprovado"
		if status == domain.RequestRejected {
			kind, verb = domain.LogAccessRevoked, "rejeitado"
		}
		msg := fmt.Sprintf("Pedido de %s %s", req.Kind, verb)

		return tx.Logs().CreateLog(ctx, domain.LogEntry{
			ID:       idx.New().String(),
			ClientID: &req.ClientID,
			Kind:     kind,
			Message:  &msg,
		})
	})
	if err != nil {
		if errors.Is(err, ErrInvalidState) || errors.Is(err, ErrValidation) {
			log.Warn("request resolution refused", slog.Any("error", err))
		} else {
			log.Error("request resolution failed", slog.Any("error", err))
		}
		return domain.Request{}, err
	}

	log.Info("request resolved", slog.String("client_id", req.ClientID))

	// 5. Return the committed row.
	return s.Get(ctx, req.ID)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	default:
		return "error"
	}
}
