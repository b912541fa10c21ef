package queries

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"order-tracker/models"

	"gorm.io/gorm"
)

// MissingColumns flags every tracked column that is missing in at least one of orders.
func MissingColumns(orders []models.Order) map[string]bool {
	out := make(map[string]bool, len(models.Columns))
	for _, col := range models.Columns {
		out[col.Name] = false
		for _, o := range orders {
			if models.IsMissing(o.Value(col.Name)) {
				out[col.Name] = true
				break
			}
		}
	}
	return out
}

// CountMissing counts, per tracked column, the orders in the whole store whose value is missing.
func CountMissing(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	selects := make([]string, 0, len(models.Columns))
	for _, col := range models.Columns {
		selects = append(selects, fmt.Sprintf(
			"COALESCE(SUM(CASE WHEN %[1]s IN ('', '0') THEN 1 ELSE 0 END), 0) AS %[1]s", col.Name))
	}

	row := map[string]any{}
	err := db.WithContext(ctx).
		Model(&models.Order{}).
		Select(strings.Join(selects, ", ")).
		Take(&row).Error
	if err != nil {
		return nil, fmt.Errorf("count missing values: %w", err)
	}

	out := make(map[string]int64, len(models.Columns))
	for _, col := range models.Columns {
		n, err := toInt64(row[col.Name])
		if err != nil {
			return nil, fmt.Errorf("count missing values for %s: %w", col.Name, err)
		}
		out[col.Name] = n
	}
	return out, nil
}

// Aggregates come back as int64, float64, []byte or string depending on the driver.
func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return t, nil
	case int32:
		return int64(t), nil
	case int:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case []byte:
		return parseCount(string(t))
	case string:
		return parseCount(t)
	}
	return 0, fmt.Errorf("unexpected aggregate type %T", v)
}

func parseCount(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
