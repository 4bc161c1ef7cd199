package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCSV drops the given lines into a scratch file and returns its path.
func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.csv")
	data := ""
	for _, l := range lines {
		data += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestImportCSVPassthrough(t *testing.T) {
	st := setupStore(t)
	path := writeCSV(t,
		"Name,ShortName,Description",
		"Projector,Proj,1080p HDMI",
		"Mixer,Mix,8 channel",
	)

	n, err := NewImporter(st).ImportCSV(TableEquipment, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recs, err := st.SelectAll([]string{TableEquipment}, nil, []string{"ShortName='Mix'"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Mixer", recs[0].Value("Name"))
	assert.Equal(t, "8 channel", recs[0].Value("Description"))
	assert.Nil(t, recs[0].Value("Notes"), "unlisted columns stay NULL")
}

func TestImportCSVFieldMap(t *testing.T) {
	st := setupStore(t)
	path := writeCSV(t,
		"Name,ShortName,d,Ignored",
		"Thingy,T,a widget,junk",
		"Bobber,B,floats,junk",
	)

	fieldMap := map[string]string{
		"Name":        "",
		"ShortName":   "",
		"Description": "d",
	}
	n, err := NewImporter(st).ImportCSV(TableEquipment, path, fieldMap)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recs, err := st.SelectAll([]string{TableEquipment}, nil, []string{"ShortName='T'"})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "Thingy", rec.Value("Name"))
	assert.Equal(t, "a widget", rec.Value("Description"), "mapped column takes the renamed source")
	assert.Nil(t, rec.Value("Notes"), "columns outside the map are not populated")
	assert.Nil(t, rec.Value("RoleRequired"))
}

func TestImportCSVAbsentSourceColumn(t *testing.T) {
	st := setupStore(t)
	path := writeCSV(t,
		"Name",
		"Site B",
	)

	// Location is requested but the file has no such column; it lands NULL.
	n, err := NewImporter(st).ImportCSV(TableSite, path, map[string]string{
		"Name":     "",
		"Location": "",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	recs, err := st.SelectAll([]string{TableSite}, nil, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Site B", recs[0].Value("Name"))
	assert.Nil(t, recs[0].Value("Location"))
}

func TestImportCSVShortRow(t *testing.T) {
	st := setupStore(t)
	path := writeCSV(t,
		"Name,Location",
		`"Site A","Somewhere, Some State"`,
		"Site B",
	)

	n, err := NewImporter(st).ImportCSV(TableSite, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recs, err := st.SelectAll([]string{TableSite}, nil, []string{"Name='Site A'"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Somewhere, Some State", recs[0].Value("Location"))

	recs, err = st.SelectAll([]string{TableSite}, nil, []string{"Name='Site B'"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].Value("Location"), "a short row leaves trailing columns NULL")
}

func TestImportCSVDuplicateHeader(t *testing.T) {
	st := setupStore(t)
	path := writeCSV(t,
		"Name,Name",
		"First,Second",
	)

	n, err := NewImporter(st).ImportCSV(TableSite, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	recs, err := st.SelectAll([]string{TableSite}, nil, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Second", recs[0].Value("Name"), "last occurrence of a duplicated header wins")
}

func TestImportCSVEmptySource(t *testing.T) {
	st := setupStore(t)

	t.Run("empty file", func(t *testing.T) {
		n, err := NewImporter(st).ImportCSV(TableSite, writeCSV(t), nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("header only", func(t *testing.T) {
		n, err := NewImporter(st).ImportCSV(TableSite, writeCSV(t, "Name,Location"), nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestImportCSVUnknownTable(t *testing.T) {
	st := setupStore(t)
	path := writeCSV(t, "Name", "x")

	_, err := NewImporter(st).ImportCSV("Bogus", path, nil)
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestImportCSVBadSource(t *testing.T) {
	st := setupStore(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := NewImporter(st).ImportCSV(TableSite, filepath.Join(t.TempDir(), "nope.csv"), nil)
		assert.ErrorIs(t, err, ErrImportSource)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := NewImporter(st).ImportCSV(TableSite, t.TempDir(), nil)
		assert.ErrorIs(t, err, ErrImportSource)
	})
}

func TestImportCSVRequiresOpen(t *testing.T) {
	st := New(nil)
	path := writeCSV(t, "Name", "Site A")

	_, err := NewImporter(st).ImportCSV(TableSite, path, nil)
	assert.ErrorIs(t, err, ErrStoreNotOpen)
}

func TestImportCSVPartialFailure(t *testing.T) {
	st := setupStore(t)
	_, err := st.Insert(TableSite, []string{"Name"}, []any{"Site A"})
	require.NoError(t, err)

	// The second row references a site that does not exist; the first row
	// stays committed because rows are inserted one statement at a time.
	path := writeCSV(t,
		"Name,RoomGroup,Site",
		"Room 1,Hall A,1",
		"Room 2,Hall A,99",
	)

	n, err := NewImporter(st).ImportCSV(TableRoom, path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Equal(t, 1, n)

	recs, err := st.SelectAll([]string{TableRoom}, nil, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Room 1", recs[0].Value("Name"))
}
