package domain

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
)

func TestGroupRepairsPartition(t *testing.T) {
	node := mustNode(t)
	locA := node.Generate()
	locB := node.Generate()

	r1 := Repair{ID: node.Generate(), Fecha: date(2025, 3, 1), NumReparacion: "R-100", LocationID: locA}
	r2 := Repair{ID: node.Generate(), Fecha: date(2025, 3, 2), NumReparacion: "R-100", LocationID: locA}
	r3 := Repair{ID: node.Generate(), Fecha: date(2025, 3, 3), NumReparacion: "R-100", LocationID: locB}
	r4 := Repair{ID: node.Generate(), Fecha: date(2025, 3, 4), NumReparacion: "R-200", LocationID: locA}

	groups := GroupRepairs([]Repair{r1, r2, r3, r4})
	require.Len(t, groups, 3)

	// Every repair lands in exactly one group.
	seen := map[snowflake.ID]int{}
	for _, g := range groups {
		for _, id := range g.MemberIDs {
			seen[id]++
		}
	}
	require.Len(t, seen, 4)
	for id, count := range seen {
		require.Equal(t, 1, count, "repair %s grouped %d times", id, count)
	}

	// Representative fields come from the first member seen.
	require.Equal(t, r1.ID, groups[0].ID)
	require.Equal(t, r1.Fecha, groups[0].Fecha)
	require.Equal(t, []snowflake.ID{r1.ID, r2.ID}, groups[0].MemberIDs)
	require.Equal(t, []snowflake.ID{r3.ID}, groups[1].MemberIDs)
	require.Equal(t, []snowflake.ID{r4.ID}, groups[2].MemberIDs)
}

func TestGroupRepairsEmptyNumReparacionIsAKey(t *testing.T) {
	node := mustNode(t)
	loc := node.Generate()

	r1 := Repair{ID: node.Generate(), NumReparacion: "", LocationID: loc}
	r2 := Repair{ID: node.Generate(), NumReparacion: "", LocationID: loc}
	r3 := Repair{ID: node.Generate(), NumReparacion: "R-1", LocationID: loc}

	groups := GroupRepairs([]Repair{r1, r2, r3})
	require.Len(t, groups, 2)
	require.Equal(t, []snowflake.ID{r1.ID, r2.ID}, groups[0].MemberIDs)
}

func TestGroupRepairsWorkItemsKeepDuplicates(t *testing.T) {
	node := mustNode(t)
	loc := node.Generate()
	item := node.Generate()
	other := node.Generate()

	r1 := Repair{ID: node.Generate(), NumReparacion: "R-1", LocationID: loc, WorkItemIDs: []snowflake.ID{item, item}}
	r2 := Repair{ID: node.Generate(), NumReparacion: "R-1", LocationID: loc, WorkItemIDs: []snowflake.ID{item, other}}

	groups := GroupRepairs([]Repair{r1, r2})
	require.Len(t, groups, 1)
	require.Equal(t, []snowflake.ID{item, item, item, other}, groups[0].WorkItemIDs)
}

func TestGroupRepairsFlagsMixedAssignment(t *testing.T) {
	node := mustNode(t)
	loc := node.Generate()
	factura := node.Generate()

	r1 := Repair{ID: node.Generate(), NumReparacion: "R-1", LocationID: loc, FacturaID: &factura}
	r2 := Repair{ID: node.Generate(), NumReparacion: "R-1", LocationID: loc}

	groups := GroupRepairs([]Repair{r1, r2})
	require.Len(t, groups, 1)
	require.True(t, groups[0].Inconsistent)

	// Members agreeing on the same document are consistent.
	r2.FacturaID = &factura
	groups = GroupRepairs([]Repair{r1, r2})
	require.False(t, groups[0].Inconsistent)
}

func TestGroupRepairsEmptyInput(t *testing.T) {
	require.Empty(t, GroupRepairs(nil))
	require.Empty(t, GroupRepairs([]Repair{}))
}

func TestFilterAssignable(t *testing.T) {
	node := mustNode(t)
	loc := node.Generate()
	myFactura := node.Generate()
	otherFactura := node.Generate()
	proforma := node.Generate()

	unassigned := Group{ID: node.Generate(), LocationID: loc}
	mine := Group{ID: node.Generate(), LocationID: loc, FacturaID: &myFactura}
	foreign := Group{ID: node.Generate(), LocationID: loc, FacturaID: &otherFactura}
	quoted := Group{ID: node.Generate(), LocationID: loc, ProformaID: &proforma}
	dirty := Group{ID: node.Generate(), LocationID: loc, Inconsistent: true}

	groups := []Group{unassigned, mine, foreign, quoted, dirty}

	eligible := FilterAssignable(groups, AssignmentContext{FacturaID: &myFactura})
	require.Len(t, eligible, 2)
	require.Equal(t, unassigned.ID, eligible[0].ID)
	require.Equal(t, mine.ID, eligible[1].ID)

	// Without a context document only unassigned groups qualify.
	eligible = FilterAssignable(groups, AssignmentContext{})
	require.Len(t, eligible, 1)
	require.Equal(t, unassigned.ID, eligible[0].ID)

	eligible = FilterAssignable(groups, AssignmentContext{ProformaID: &proforma})
	require.Len(t, eligible, 2)
	require.Equal(t, quoted.ID, eligible[1].ID)
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
