package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/config"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/database"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/entity"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/plan"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/pkg/pagekey"
)

var repoTracer = otel.Tracer("github.com/Sujeet-Kumar0/Coffee-Serverless-App/repository/order")

// keyAttr is the attribute name used inside scan continuation keys.
const keyAttr = "orderId"

// Repository encapsulates read/write access for orders.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
	table  string
}

// NewRepository wires a repository backed by configured database connections.
// The table name comes from configuration so deployments can point several
// environments at distinct tables.
func NewRepository(conns *database.Connections, cfg config.Config) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
		table:  cfg.App.OrdersTable,
	}
}

// Create persists a new order using the write connection.
func (r *Repository) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(attribute.String("order.id", order.ID)))
	defer span.End()

	q := r.writer.NewInsert().Model(order)
	if r.table != "" {
		q = q.ModelTableExpr("? AS orders", bun.Ident(r.table))
	}
	_, err := q.Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// GetByID fetches an order by id using the read replica when available.
func (r *Repository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetByID", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order := new(entity.Order)
	q := r.reader.NewSelect().Model(order).Where("order_id = ?", id)
	if r.table != "" {
		q = q.ModelTableExpr("? AS orders", bun.Ident(r.table))
	}
	err := q.Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, entity.ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return order, nil
}

// Update applies a partial-update plan to the order with the given id and
// returns the post-update record. Columns absent from the plan keep their
// stored values.
func (r *Repository) Update(ctx context.Context, id string, p plan.Plan) (*entity.Order, error) {
	assignments := p.Assignments()
	if len(assignments) == 0 {
		return nil, errors.New("empty update plan")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Update", trace.WithAttributes(
		attribute.String("order.id", id),
		attribute.Int("plan.assignments", len(assignments)),
	))
	defer span.End()

	order := new(entity.Order)
	q := r.writer.NewUpdate().Model(order).Where("order_id = ?", id).Returning("*")
	if r.table != "" {
		q = q.ModelTableExpr("? AS orders", bun.Ident(r.table))
	}
	for _, a := range assignments {
		value, err := columnValue(a)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "plan translation failed")
			return nil, err
		}
		q = q.Set("? = ?", bun.Ident(a.Column), value)
	}

	if _, err := q.Exec(ctx, order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, entity.ErrNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return nil, err
	}
	return order, nil
}

// Delete removes the order with the given id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Delete", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	q := r.writer.NewDelete().Model((*entity.Order)(nil)).Where("order_id = ?", id)
	if r.table != "" {
		q = q.ModelTableExpr("? AS orders", bun.Ident(r.table))
	}
	_, err := q.Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
	}
	return err
}

// Scan reads one page of orders ordered by id, resuming after the order
// named by startKey. A non-nil continuation key is returned whenever a full
// page came back, mirroring a document store that reports a last evaluated
// key while more results may remain.
func (r *Repository) Scan(ctx context.Context, startKey pagekey.Key, limit int) ([]entity.Order, pagekey.Key, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Scan", trace.WithAttributes(attribute.Int("scan.limit", limit)))
	defer span.End()

	var orders []entity.Order
	q := r.reader.NewSelect().Model(&orders).Order("order_id ASC").Limit(limit)
	if r.table != "" {
		q = q.ModelTableExpr("? AS orders", bun.Ident(r.table))
	}
	if after, ok := startKey[keyAttr].(string); ok && after != "" {
		q = q.Where("order_id > ?", after)
	}

	if err := q.Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scan failed")
		return nil, nil, err
	}

	var next pagekey.Key
	if limit > 0 && len(orders) == limit {
		next = pagekey.Key{keyAttr: orders[len(orders)-1].ID}
	}
	return orders, next, nil
}

// columnValue adapts plan values to their storage representation. Items are
// stored as a JSON document column.
func columnValue(a plan.Assignment) (any, error) {
	if a.Column != plan.ColItems {
		return a.Value, nil
	}
	data, err := json.Marshal(a.Value)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return json.RawMessage(data), nil
}
