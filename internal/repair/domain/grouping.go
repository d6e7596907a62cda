package domain

import "github.com/bwmarrin/snowflake"

type groupKey struct {
	numReparacion string
	locationID    snowflake.ID
}

// GroupRepairs collapses repairs sharing (NumReparacion, LocationID) into
// display/assignment units. Exact string equality on the repair number;
// the empty string is a valid key component. Representative fields come
// from the first member seen, work items are the union across members
// with duplicates preserved, and MemberIDs keeps every underlying repair
// id in input order. Pure function, no side effects.
func GroupRepairs(records []Repair) []Group {
	if len(records) == 0 {
		return []Group{}
	}

	index := make(map[groupKey]int, len(records))
	groups := make([]Group, 0, len(records))

	for _, record := range records {
		key := groupKey{numReparacion: record.NumReparacion, locationID: record.LocationID}

		pos, seen := index[key]
		if !seen {
			index[key] = len(groups)
			groups = append(groups, Group{
				ID:            record.ID,
				Fecha:         record.Fecha,
				NumReparacion: record.NumReparacion,
				NumPedido:     record.NumPedido,
				LocationID:    record.LocationID,
				WorkItemIDs:   append([]snowflake.ID(nil), record.WorkItemIDs...),
				FacturaID:     record.FacturaID,
				ProformaID:    record.ProformaID,
				MemberIDs:     []snowflake.ID{record.ID},
			})
			continue
		}

		group := &groups[pos]
		group.WorkItemIDs = append(group.WorkItemIDs, record.WorkItemIDs...)
		group.MemberIDs = append(group.MemberIDs, record.ID)
		if !sameAssignment(group.FacturaID, record.FacturaID) || !sameAssignment(group.ProformaID, record.ProformaID) {
			group.Inconsistent = true
		}
	}

	return groups
}

func sameAssignment(a, b *snowflake.ID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// AssignmentContext identifies the document currently being edited, so
// groups it already owns remain selectable alongside unassigned ones.
type AssignmentContext struct {
	FacturaID  *snowflake.ID
	ProformaID *snowflake.ID
}

// FilterAssignable returns the groups eligible for assignment: fully
// unassigned groups, plus groups already bound to the context document.
// Inconsistent groups are never assignable.
func FilterAssignable(groups []Group, ctx AssignmentContext) []Group {
	eligible := make([]Group, 0, len(groups))
	for _, group := range groups {
		if group.Inconsistent {
			continue
		}
		if group.FacturaID == nil && group.ProformaID == nil {
			eligible = append(eligible, group)
			continue
		}
		if ctx.FacturaID != nil && group.FacturaID != nil && *group.FacturaID == *ctx.FacturaID {
			eligible = append(eligible, group)
			continue
		}
		if ctx.ProformaID != nil && group.ProformaID != nil && *group.ProformaID == *ctx.ProformaID {
			eligible = append(eligible, group)
		}
	}
	return eligible
}
