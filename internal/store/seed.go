package store

import "fmt"

// seedRows lists the demonstration conference inserted by Seed, in insert
// order. The integer references assume a freshly created datafile where
// surrogate ids start at 1.
var seedRows = []struct {
	table  string
	fields []string
	values []any
}{
	{TableMetadata, []string{"Name", "Value"}, []any{"Name", "Some Conference 2016"}},
	{TableMetadata, []string{"Name", "Value"}, []any{"Location", "Somewhere, Some State"}},
	{TableEquipment, []string{"Name", "ShortName"}, []any{"Thingy", "T"}},
	{TableEquipment, []string{"Name", "ShortName"}, []any{"Bobber", "B"}},
	{TableEquipment, []string{"Name", "ShortName", "Description"}, []any{"Projector", "Proj", "1080p HDMI projector"}},
	{TableEquipment, []string{"Name", "ShortName", "Description"}, []any{"Mixer", "Mix", "8-channel audio mixer"}},
	{TableSite, []string{"Name", "Location"}, []any{"Site A", "?"}},
	{TableRoom, []string{"Name", "RoomGroup", "Site"}, []any{"Room 1", "Hall A", 1}},
	{TablePeople, []string{"FirstName", "LastName", "Type"}, []any{"John", "Doe", "Instructor"}},
	{TablePeople, []string{"FirstName", "LastName", "Type"}, []any{"Jane", "Smith", "Staff"}},
	{TableEvent, []string{"Name", "Room", "Start", "End", "Speaker"}, []any{"Cool Session #1", 1, "2016-01-01 10:30", "2016-01-01 11:30", 1}},
	{TableEquipmentAssign, []string{"Event", "Piece", "Quantity"}, []any{1, 1, 2}},
	{TableEquipmentAssign, []string{"Event", "Piece", "Quantity"}, []any{1, 2, 5}},
	{TableStaffAssign, []string{"Event", "Person", "Role"}, []any{1, 2, "AV Tech"}},
	{TableEquipmentAdjust, []string{"Piece", "Site", "Quantity"}, []any{1, 1, 4}},
}

// Seed loads a small demonstration conference into an open store: one site
// and room, speakers and staff, equipment, and one scheduled session with
// staff and equipment assigned. Intended for a freshly created datafile.
func Seed(st *Store) error {
	for _, r := range seedRows {
		if _, err := st.Insert(r.table, r.fields, r.values); err != nil {
			return fmt.Errorf("seeding %s: %w", r.table, err)
		}
	}
	st.log.Info("seeded demo conference", "rows", len(seedRows))
	return nil
}
