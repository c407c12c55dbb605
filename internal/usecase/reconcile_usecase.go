package usecase

import (
	"context"
	"errors"

	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"
	"jobboard/internal/telemetry"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ReconcileResult aggregates the per-item outcomes of one committed batch.
type ReconcileResult[T any] struct {
	Updated         []T
	Created         []T
	DeletedCount    int64
	DeleteRequested bool
}

type itemOutcome int

const (
	outcomeCreated itemOutcome = iota + 1
	outcomeUpdated
)

// reconcileOps binds the batch engine to one profile sub-resource.
type reconcileOps[T any, In any] struct {
	resource string
	label    string
	notFound error

	itemID func(in In) (int64, bool)
	blank  func(profileID int64) T
	merge  func(base T, in In, create bool) (T, validation.FieldErrors)

	load   func(ctx context.Context, repos repository.TxRepositories, id, profileID int64) (T, error)
	create func(ctx context.Context, repos repository.TxRepositories, rec T) (T, error)
	update func(ctx context.Context, repos repository.TxRepositories, rec T) error
	remove func(ctx context.Context, repos repository.TxRepositories, profileID int64, ids []int64) (int64, error)
}

// runReconcile applies items and deleteIDs for the caller's profile in a
// single transaction. The first failing item aborts the whole batch.
func runReconcile[T any, In any](ctx context.Context, u *Profiles, ops reconcileOps[T, In], userID uuid.UUID, items []In, deleteIDs []int64) (ReconcileResult[T], error) {
	ctx, span := telemetry.Tracer().Start(ctx, "profile.reconcile", trace.WithAttributes(
		attribute.String("reconcile.resource", ops.resource),
		attribute.Int("reconcile.items", len(items)),
		attribute.Int("reconcile.delete_ids", len(deleteIDs)),
	))
	defer span.End()

	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return ReconcileResult[T]{}, err
	}

	var res ReconcileResult[T]
	err = u.tx.WithinTx(ctx, func(repos repository.TxRepositories) error {
		res = ReconcileResult[T]{DeleteRequested: len(deleteIDs) > 0}

		for i, in := range items {
			rec, outcome, err := reconcileItem(ctx, repos, ops, p.ID, i, in)
			if err != nil {
				return err
			}
			switch outcome {
			case outcomeCreated:
				res.Created = append(res.Created, rec)
			case outcomeUpdated:
				res.Updated = append(res.Updated, rec)
			}
		}

		if len(deleteIDs) > 0 {
			n, err := ops.remove(ctx, repos, p.ID, deleteIDs)
			if err != nil {
				return err
			}
			res.DeletedCount = n
		}
		return nil
	})

	outcome := "committed"
	var ve *ValidationError
	var nf *ItemNotFoundError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		outcome = "invalid"
	case errors.As(err, &nf):
		outcome = "not_found"
	default:
		outcome = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, "reconcile")
		u.logf("[Profile] reconcile failed resource=%s profile_id=%d err=%v", ops.resource, p.ID, err)
		err = ErrInternal
	}
	if u.metrics != nil {
		u.metrics.ReconcileBatches.WithLabelValues(ops.resource, outcome).Inc()
	}
	span.SetAttributes(attribute.String("reconcile.outcome", outcome))

	if err != nil {
		return ReconcileResult[T]{}, err
	}
	return res, nil
}

func reconcileItem[T any, In any](ctx context.Context, repos repository.TxRepositories, ops reconcileOps[T, In], profileID int64, index int, in In) (T, itemOutcome, error) {
	var zero T

	id, hasID := ops.itemID(in)
	if !hasID {
		rec, fe := ops.merge(ops.blank(profileID), in, true)
		if !fe.Empty() {
			return zero, 0, newItemValidationError(index, fe)
		}
		created, err := ops.create(ctx, repos, rec)
		if err != nil {
			return zero, 0, err
		}
		return created, outcomeCreated, nil
	}

	base, err := ops.load(ctx, repos, id, profileID)
	if err != nil {
		if errors.Is(err, ops.notFound) {
			return zero, 0, &ItemNotFoundError{Resource: ops.label, ID: id}
		}
		return zero, 0, err
	}

	rec, fe := ops.merge(base, in, false)
	if !fe.Empty() {
		return zero, 0, newItemValidationError(index, fe)
	}
	if err := ops.update(ctx, repos, rec); err != nil {
		if errors.Is(err, ops.notFound) {
			return zero, 0, &ItemNotFoundError{Resource: ops.label, ID: id}
		}
		return zero, 0, err
	}
	return rec, outcomeUpdated, nil
}
