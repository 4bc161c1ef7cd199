// CLI integration tests for marquee: datafile lifecycle, queries, CSV
// import/export, reports and the interactive shell.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain builds the marquee binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "marquee-test-*")
	if err != nil {
		buildErr = err
		os.Exit(1)
	}
	marqueeBin = filepath.Join(tmpDir, "marquee")

	cmd := exec.Command("go", "build", "-o", marqueeBin, "./cmd/marquee")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)

	os.Exit(code)
}

// Test1_NewDatafile verifies datafile creation and the stamped metadata.
func Test1_NewDatafile(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunMarquee("new", "--meta", "Name=Some Conference 2016")
	if !strings.Contains(result.Stdout, "created") {
		t.Errorf("expected creation message, got %q", result.Stdout)
	}

	if _, err := os.Stat(env.DB); err != nil {
		t.Fatalf("datafile not created: %v", err)
	}

	info := ParseJSON[Info](t, env.MustRunMarquee("info", "--json").Stdout)
	if info.Path != env.DB {
		t.Errorf("info path mismatch: got %q want %q", info.Path, env.DB)
	}
	if info.Metadata["Name"] != "Some Conference 2016" {
		t.Errorf("metadata Name mismatch: got %q", info.Metadata["Name"])
	}
	if info.Metadata["DatabaseID"] == "" {
		t.Error("DatabaseID not stamped")
	}
	if info.Metadata["CreatedAt"] == "" {
		t.Error("CreatedAt not stamped")
	}
	if n := info.CountFor("Site"); n != 0 {
		t.Errorf("fresh datafile Site count = %d, want 0", n)
	}
}

// Test2_NewReplacesExisting verifies that new starts over from scratch.
func Test2_NewReplacesExisting(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRunMarquee("new")
	env.MustRunMarquee("add", "Site", "Name=Site A")
	env.MustRunMarquee("new")

	info := ParseJSON[Info](t, env.MustRunMarquee("info", "--json").Stdout)
	if n := info.CountFor("Site"); n != 0 {
		t.Errorf("Site count after recreation = %d, want 0", n)
	}
}

// Test3_AddAndGet verifies inserts and queries, including the joined
// schedule lookup.
func Test3_AddAndGet(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunMarquee("new")

	result := env.MustRunMarquee("add", "Site", "Name=Site A", "Location=?")
	if strings.TrimSpace(result.Stdout) != "1" {
		t.Errorf("first Site id = %q, want 1", strings.TrimSpace(result.Stdout))
	}

	env.MustRunMarquee("add", "Room", "Name=Room 1", "RoomGroup=Hall A", "Site=1")
	env.MustRunMarquee("add", "People", "FirstName=John", "LastName=Doe", "Type=Instructor")
	env.MustRunMarquee("add", "Event",
		"Name=Cool Session #1", "Room=1",
		"Start=2016-01-01 10:30", "End=2016-01-01 11:30", "Speaker=1")

	rows := ParseJSON[Rows](t, env.MustRunMarquee("get", "Site", "--json").Stdout)
	if len(rows) != 1 {
		t.Fatalf("Site rows = %d, want 1", len(rows))
	}
	if rows[0]["Name"] != "Site A" {
		t.Errorf("Site Name = %v", rows[0]["Name"])
	}

	rows = ParseJSON[Rows](t, env.MustRunMarquee(
		"get", "Event,Room,People,Site",
		"--fields", "Site.Name AS Site,Room.Name AS Room,Event.Name,People.FirstName,People.LastName",
		"--where", "Room.Site=Site.id",
		"--where", "Event.Room=Room.id",
		"--where", "Event.Speaker=People.id",
		"--json").Stdout)
	if len(rows) != 1 {
		t.Fatalf("joined rows = %d, want 1", len(rows))
	}
	rec := rows[0]
	if rec["Site"] != "Site A" || rec["Room"] != "Room 1" || rec["FirstName"] != "John" || rec["LastName"] != "Doe" {
		t.Errorf("joined record mismatch: %v", rec)
	}
}

// Test4_GetUnknownTable verifies the user error path.
func Test4_GetUnknownTable(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunMarquee("new")

	result := env.RunMarquee("get", "Bogus")
	if result.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", result.ExitCode)
	}
	if !strings.Contains(result.Stderr, "unknown table") {
		t.Errorf("stderr missing table hint: %q", result.Stderr)
	}
}

// Test5_OpenInvalidDatafile verifies schema validation on open.
func Test5_OpenInvalidDatafile(t *testing.T) {
	env := NewTestEnv(t)

	if err := os.WriteFile(env.DB, []byte("not a datafile"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := env.RunMarquee("info")
	if result.ExitCode == 0 {
		t.Error("info on a garbage file should fail")
	}
}

// Test6_ImportExport verifies the CSV round trip with a field map.
func Test6_ImportExport(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunMarquee("new")

	src := filepath.Join(env.TempDir, "eq.csv")
	csv := "Name,ShortName,d\nThingy,T,a widget\nBobber,B,floats\n"
	if err := os.WriteFile(src, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	result := env.MustRunMarquee("import", "Equipment", src,
		"--map", "Name", "--map", "ShortName", "--map", "Description=d")
	if !strings.Contains(result.Stdout, "imported 2 rows") {
		t.Errorf("unexpected import output: %q", result.Stdout)
	}

	rows := ParseJSON[Rows](t, env.MustRunMarquee("get", "Equipment", "--json").Stdout)
	if len(rows) != 2 {
		t.Fatalf("Equipment rows = %d, want 2", len(rows))
	}
	if rows[0]["Description"] != "a widget" {
		t.Errorf("mapped Description = %v", rows[0]["Description"])
	}

	dst := filepath.Join(env.TempDir, "out.csv")
	result = env.MustRunMarquee("export", "Equipment", dst)
	if !strings.Contains(result.Stdout, "exported 2 rows") {
		t.Errorf("unexpected export output: %q", result.Stdout)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Thingy") {
		t.Errorf("export missing data: %q", string(data))
	}
}

// Test7_SeedAndReports verifies the demonstration data and canned reports.
func Test7_SeedAndReports(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunMarquee("new")
	env.MustRunMarquee("seed")

	result := env.MustRunMarquee("report")
	for _, name := range []string{"equipment", "inventory", "schedule", "staffing"} {
		if !strings.Contains(result.Stdout, name) {
			t.Errorf("report list missing %q: %q", name, result.Stdout)
		}
	}

	result = env.MustRunMarquee("report", "schedule")
	if !strings.Contains(result.Stdout, "Conference Schedule") {
		t.Errorf("missing report title: %q", result.Stdout)
	}
	if !strings.Contains(result.Stdout, "Cool Session #1") {
		t.Errorf("missing event row: %q", result.Stdout)
	}

	rows := ParseJSON[Rows](t, env.MustRunMarquee("report", "equipment", "--json").Stdout)
	if len(rows) != 2 {
		t.Errorf("equipment report rows = %d, want 2", len(rows))
	}

	result = env.RunMarquee("report", "bogus")
	if result.ExitCode != 1 {
		t.Errorf("unknown report exit code = %d, want 1", result.ExitCode)
	}
}

// Test8_Shell verifies a scripted interactive session.
func Test8_Shell(t *testing.T) {
	env := NewTestEnv(t)

	script := strings.Join([]string{
		"new " + env.DB,
		"seed",
		"add Site 'Name=Site B'",
		"get Site Name",
		"report schedule",
		"close",
		"quit",
	}, "\n") + "\n"

	result := env.RunMarqueeStdin(script, "shell")
	if result.ExitCode != 0 {
		t.Fatalf("shell exit code = %d\nstdout: %s\nstderr: %s",
			result.ExitCode, result.Stdout, result.Stderr)
	}
	if !strings.Contains(result.Stdout, "Site B") {
		t.Errorf("shell query output missing Site B: %q", result.Stdout)
	}
	if !strings.Contains(result.Stdout, "Conference Schedule") {
		t.Errorf("shell report output missing title: %q", result.Stdout)
	}
}

// Test9_Version prints the release number.
func Test9_Version(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunMarquee("version")
	if !strings.Contains(result.Stdout, "marquee") {
		t.Errorf("unexpected version output: %q", result.Stdout)
	}
}

// Test10_LogFile verifies --log-file captures store activity.
func Test10_LogFile(t *testing.T) {
	env := NewTestEnv(t)
	logPath := filepath.Join(env.TempDir, "logs", "marquee.log")

	env.MustRunMarquee("new", "--log-level", "debug", "--log-file", logPath)
	env.MustRunMarquee("add", "Site", "Name=Site A", "--log-level", "debug", "--log-file", logPath)

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "insert") {
		t.Errorf("log missing insert entry: %q", string(data))
	}
}
