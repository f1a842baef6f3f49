// Package schema holds the Nova Score dataset schema: the ordered required
// feature columns, the target column and the generation rule for each.
package schema

import "github.com/mmrzaf/novagen/internal/domain"

const TargetColumn = "Nova_Score"

const PartnerIDColumn = "partner_id"

var requiredColumns = []string{
	PartnerIDColumn,
	"monthly_earnings",
	"trips_per_week",
	"avg_rating",
	"cancellation_rate",
	"active_days_per_month",
	"avg_trip_distance_km",
	"transactions_last_3_months",
	"days_since_joining",
	"late_payment_count",
	"repairs_cost_last_6_months",
	"city",
	"vehicle_type",
	"peak_hour_percentage",
	"promotions_received_last_6_months",
}

// RequiredColumns returns the required feature columns in declaration order.
// The target column is not included.
func RequiredColumns() []string {
	out := make([]string, len(requiredColumns))
	copy(out, requiredColumns)
	return out
}

// Columns returns the full generated column list: required columns, then the target.
func Columns() []string {
	return append(RequiredColumns(), TargetColumn)
}

func IsTarget(name string) bool {
	return name == TargetColumn
}

// Rules returns a fresh copy of every rule in Columns() order.
func Rules() []domain.ColumnRule {
	return rules()
}

// ColumnTypes maps each schema column to its value type.
func ColumnTypes() map[string]domain.ColumnType {
	out := make(map[string]domain.ColumnType)
	for _, r := range rules() {
		out[r.Name] = r.Type
	}
	return out
}

func bound(v float64) *float64 {
	return &v
}

func rules() []domain.ColumnRule {
	return []domain.ColumnRule{
		{
			Name:      PartnerIDColumn,
			Type:      domain.ColumnTypeString,
			Generator: domain.GeneratorSpec{Type: "sequence", Params: map[string]interface{}{"prefix": "P", "width": 4, "start": 1}},
		},
		{
			Name:      "monthly_earnings",
			Type:      domain.ColumnTypeFloat,
			Generator: normal(30000, 8000),
			Shape:     domain.Shape{Abs: true, Round: 2},
		},
		{
			Name:      "trips_per_week",
			Type:      domain.ColumnTypeInt,
			Generator: poisson(30),
			Shape:     domain.Shape{Min: bound(0)},
		},
		{
			Name:      "avg_rating",
			Type:      domain.ColumnTypeFloat,
			Generator: normal(4.6, 0.3),
			Shape:     domain.Shape{Min: bound(1.0), Max: bound(5.0), Round: 2},
		},
		{
			Name:      "cancellation_rate",
			Type:      domain.ColumnTypeFloat,
			Generator: domain.GeneratorSpec{Type: "beta", Params: map[string]interface{}{"alpha": 1.0, "beta": 10.0}},
			Shape:     domain.Shape{Min: bound(0.0), Max: bound(1.0), Round: 3},
		},
		{
			Name:      "active_days_per_month",
			Type:      domain.ColumnTypeInt,
			Generator: domain.GeneratorSpec{Type: "uniform_int", Params: map[string]interface{}{"min": 5, "max": 30}},
			Shape:     domain.Shape{Min: bound(1)},
		},
		{
			Name:      "avg_trip_distance_km",
			Type:      domain.ColumnTypeFloat,
			Generator: normal(7, 3),
			Shape:     domain.Shape{Min: bound(0.5), Round: 2},
		},
		{
			Name:      "transactions_last_3_months",
			Type:      domain.ColumnTypeInt,
			Generator: poisson(40),
			Shape:     domain.Shape{Min: bound(0)},
		},
		{
			// abs only: long-tailed, no upper bound
			Name:      "days_since_joining",
			Type:      domain.ColumnTypeInt,
			Generator: domain.GeneratorSpec{Type: "exponential", Params: map[string]interface{}{"mean": 400.0}},
			Shape:     domain.Shape{Abs: true},
		},
		{
			Name:      "late_payment_count",
			Type:      domain.ColumnTypeInt,
			Generator: poisson(0.5),
		},
		{
			Name:      "repairs_cost_last_6_months",
			Type:      domain.ColumnTypeFloat,
			Generator: normal(500, 400),
			Shape:     domain.Shape{Abs: true, Round: 2},
		},
		{
			Name:      "city",
			Type:      domain.ColumnTypeString,
			Generator: choice("Delhi", "Mumbai", "Bengaluru", "Chennai", "Kolkata"),
		},
		{
			Name:      "vehicle_type",
			Type:      domain.ColumnTypeString,
			Generator: choice("Bike", "Car", "Auto"),
		},
		{
			Name:      "peak_hour_percentage",
			Type:      domain.ColumnTypeFloat,
			Generator: normal(0.35, 0.15),
			Shape:     domain.Shape{Abs: true, Max: bound(1.0), Round: 3},
		},
		{
			Name:      "promotions_received_last_6_months",
			Type:      domain.ColumnTypeInt,
			Generator: poisson(2),
		},
		{
			Name:      TargetColumn,
			Type:      domain.ColumnTypeFloat,
			Generator: normal(65, 12),
			Shape:     domain.Shape{Min: bound(0), Max: bound(100), Round: 2},
		},
	}
}

func normal(mean, std float64) domain.GeneratorSpec {
	return domain.GeneratorSpec{Type: "normal", Params: map[string]interface{}{"mean": mean, "std": std}}
}

func poisson(lambda float64) domain.GeneratorSpec {
	return domain.GeneratorSpec{Type: "poisson", Params: map[string]interface{}{"lambda": lambda}}
}

func choice(values ...string) domain.GeneratorSpec {
	list := make([]interface{}, len(values))
	for i, v := range values {
		list[i] = v
	}
	return domain.GeneratorSpec{Type: "choice", Params: map[string]interface{}{"values": list}}
}
