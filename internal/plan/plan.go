// Package plan builds partial-update plans for orders. A plan is an ordered
// list of column assignments the repository translates into a single UPDATE.
package plan

import (
	"time"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/dto"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/entity"
)

// Column names the plan can assign.
const (
	ColUpdatedAt    = "updated_at"
	ColCustomerName = "customer_name"
	ColStatus       = "status"
	ColItems        = "items"
	ColTotalPrice   = "total_price"
)

// Assignment is a single column/value pair of a partial update.
type Assignment struct {
	Column string
	Value  any
}

// Plan accumulates the assignments of a partial order update.
type Plan struct {
	assignments []Assignment
}

// Set appends an assignment. Later assignments do not replace earlier ones;
// Compile never produces duplicate columns.
func (p *Plan) Set(column string, value any) {
	p.assignments = append(p.assignments, Assignment{Column: column, Value: value})
}

// Assignments returns the accumulated assignments in insertion order.
func (p *Plan) Assignments() []Assignment {
	return p.assignments
}

// Has reports whether the plan assigns the given column.
func (p *Plan) Has(column string) bool {
	for _, a := range p.assignments {
		if a.Column == column {
			return true
		}
	}
	return false
}

// Compile turns an update request into a plan. The updated_at bump is always
// present, so a request with no recognized fields still yields a valid plan.
// When items change, total_price is recomputed from the new items; it is
// never settable from the request itself.
func Compile(req dto.UpdateOrderRequest, now time.Time) Plan {
	var p Plan
	p.Set(ColUpdatedAt, now.UTC().Truncate(time.Millisecond))

	if req.CustomerName != "" {
		p.Set(ColCustomerName, req.CustomerName)
	}
	if req.Status != "" {
		p.Set(ColStatus, entity.Status(req.Status))
	}
	if len(req.Items) > 0 {
		p.Set(ColItems, req.Items)
		p.Set(ColTotalPrice, entity.TotalPrice(req.Items))
	}

	return p
}
