package queries

import (
	"context"
	"strings"

	"order-tracker/models"

	"gorm.io/gorm"
)

// Filter selects dashboard rows. OnlyMissing takes precedence over Terms.
type Filter struct {
	OnlyMissing bool
	Terms       map[string]string // column name -> substring
}

// FilterFromForm reads only_missing and search_<column> values through get.
func FilterFromForm(get func(key string) string) Filter {
	f := Filter{
		OnlyMissing: strings.TrimSpace(get("only_missing")) != "",
		Terms:       map[string]string{},
	}
	for _, col := range models.Columns {
		if term := strings.TrimSpace(get("search_" + col.Name)); term != "" {
			f.Terms[col.Name] = term
		}
	}
	return f
}

// IsEmpty reports whether the filter imposes no constraint.
func (f Filter) IsEmpty() bool {
	if f.OnlyMissing {
		return false
	}
	for name, term := range f.Terms {
		if models.IsTracked(name) && strings.TrimSpace(term) != "" {
			return false
		}
	}
	return true
}

// LIKE escape character; '!' reads the same on sqlite, postgres and mysql.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Apply adds the filter's WHERE clauses and the newest-first ordering to db.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	q := db.Model(&models.Order{})

	if f.OnlyMissing {
		conds := make([]string, 0, len(models.Columns))
		args := make([]any, 0, len(models.Columns))
		for _, col := range models.Columns {
			conds = append(conds, col.Name+" IN ?")
			args = append(args, []string{"", "0"})
		}
		q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
	} else {
		for _, col := range models.Columns {
			term := strings.TrimSpace(f.Terms[col.Name])
			if term == "" {
				continue
			}
			q = q.Where(col.Name+" LIKE ? ESCAPE '!'", containsPattern(term))
		}
	}

	return q.Order("created_at DESC").Order("id DESC")
}

// List returns the orders matching f, newest first.
func List(ctx context.Context, db *gorm.DB, f Filter) ([]models.Order, error) {
	var orders []models.Order
	if err := f.Apply(db.WithContext(ctx)).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindOrder loads one order by id. gorm.ErrRecordNotFound is returned unchanged.
func FindOrder(ctx context.Context, db *gorm.DB, id uint) (models.Order, error) {
	var order models.Order
	err := db.WithContext(ctx).First(&order, id).Error
	return order, err
}
