package postgres

import "github.com/fleetrent/fleetrent/internal/repository"

// orderColumn whitelists sortable columns; anything else falls back to id.
func orderColumn(name string) string {
	switch name {
	case "id", "created_at", "updated_at":
		return name
	default:
		return "id"
	}
}

// listQuery renders an owner-scoped list query from a QuerySpec.
// The owner ID is always bound as $1.
func listQuery(columns, table string, spec repository.QuerySpec) string {
	sel := "SELECT "
	if spec.Distinct {
		sel = "SELECT DISTINCT "
	}
	dir := "ASC"
	if spec.Descending {
		dir = "DESC"
	}
	return sel + columns + ` FROM ` + table + ` WHERE user_id = $1 ORDER BY ` + orderColumn(spec.OrderBy) + ` ` + dir
}
