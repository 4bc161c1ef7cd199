// Package store implements the conference datafile: one SQLite file holding
// the fixed nine-table logistics schema behind a create/validate/open
// lifecycle, with structured query composition and delimited bulk import.
package store

import "strings"

// Catalog table names, referenced by CLI argument validation and reports.
const (
	TableMetadata        = "Metadata"
	TableSite            = "Site"
	TableRoom            = "Room"
	TablePeople          = "People"
	TableEquipment       = "Equipment"
	TableEvent           = "Event"
	TableStaffAssign     = "StaffAssign"
	TableEquipmentAssign = "EquipmentAssign"
	TableEquipmentAdjust = "EquipmentAdjust"
)

// Canonical DDL for every catalog table. The token text is itself canonical:
// validation compares these definitions, whitespace-normalized, against the
// definitions a live file reports, so edits here change what counts as a
// valid datafile.
const (
	createMetadata = `CREATE TABLE Metadata(
    Name text primary key not null,
    Value text
);`

	createSite = `CREATE TABLE Site(
    id integer primary key autoincrement not null,
    Name text not null,
    Location text
);`

	createRoom = `CREATE TABLE Room(
    id integer primary key autoincrement not null,
    Name text not null,
    RoomGroup text not null,
    Capacity integer,
    Type text,
    Site integer,
    foreign key(Site) references Site(id)
);`

	createPeople = `CREATE TABLE People(
    id integer primary key autoincrement not null,
    FirstName text not null,
    LastName text not null,
    WorkPhone text,
    CellPhone text,
    EMail text,
    Type text
);`

	createEquipment = `CREATE TABLE Equipment(
    id integer primary key autoincrement not null,
    Name text not null,
    ShortName text not null,
    Description text,
    Notes text,
    RoleRequired text
);`

	createEvent = `CREATE TABLE Event(
    id integer primary key autoincrement not null,
    Name text not null,
    Room integer not null,
    Start datetime not null,
    End datetime not null,
    Speaker integer not null,
    Notes text,
    foreign key(Room) references Room(id),
    foreign key(Speaker) references People(id)
);`

	createStaffAssign = `CREATE TABLE StaffAssign(
    id integer primary key autoincrement not null,
    Event integer not null,
    Person integer not null,
    Role text,
    foreign key(Event) references Event(id),
    foreign key(Person) references People(id)
);`

	createEquipmentAssign = `CREATE TABLE EquipmentAssign(
    id integer primary key autoincrement not null,
    Event integer not null,
    Piece integer not null,
    Quantity integer not null,
    Notes text,
    foreign key(Event) references Event(id),
    foreign key(Piece) references Equipment(id)
);`

	createEquipmentAdjust = `CREATE TABLE EquipmentAdjust(
    id integer primary key autoincrement not null,
    Piece integer not null,
    Site integer not null,
    Quantity integer not null,
    foreign key(Piece) references Equipment(id),
    foreign key(Site) references Site(id)
);`
)

// catalogDDL lists all CREATE TABLE statements in dependency order:
// referenced tables before their referrers.
var catalogDDL = []struct {
	name string
	ddl  string
}{
	{TableMetadata, createMetadata},
	{TableSite, createSite},
	{TableRoom, createRoom},
	{TablePeople, createPeople},
	{TableEquipment, createEquipment},
	{TableEvent, createEvent},
	{TableStaffAssign, createStaffAssign},
	{TableEquipmentAssign, createEquipmentAssign},
	{TableEquipmentAdjust, createEquipmentAdjust},
}

// catalogTables maps table name to canonical DDL for O(1) membership tests
// and validation lookups.
var catalogTables = func() map[string]string {
	m := make(map[string]string, len(catalogDDL))
	for _, t := range catalogDDL {
		m[t.name] = t.ddl
	}
	return m
}()

// TableNames returns the catalog table names in dependency order. The slice
// is a copy; callers may reorder it.
func TableNames() []string {
	names := make([]string, len(catalogDDL))
	for i, t := range catalogDDL {
		names[i] = t.name
	}
	return names
}

// IsCatalogTable reports whether name is one of the nine catalog tables.
func IsCatalogTable(name string) bool {
	_, ok := catalogTables[name]
	return ok
}

// normalizeSQL collapses every whitespace run to a single space, trims the
// ends, and drops a trailing statement terminator. Applied to both canonical
// and stored definition text so cosmetic formatting differences never cause
// false validation failures.
func normalizeSQL(s string) string {
	out := strings.Join(strings.Fields(s), " ")
	out = strings.TrimSuffix(out, ";")
	return strings.TrimSpace(out)
}
