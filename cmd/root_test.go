package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kolibri/listcontent/internal/clock"
	"kolibri/listcontent/internal/config"
	"kolibri/listcontent/internal/db/dbtest"
	"kolibri/listcontent/internal/report"
)

const (
	mathsChannel = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	pickChannel  = "99999999999999999999999999999999"
)

// setupDatabase writes a database with a Maths channel and a pick list
// channel that curates Lesson 2 from it.
func setupDatabase(t *testing.T) string {
	t.Helper()
	path, conn := dbtest.CreateFile(t)

	dbtest.InsertChannel(t, conn, mathsChannel, "Maths", dbtest.Node{
		ID: "m-root", ContentID: mathsChannel, Kind: "topic", Title: "Maths",
		Children: []dbtest.Node{
			{ID: "m-algebra", ContentID: "algebra-cid", Title: "Algebra", Children: []dbtest.Node{
				{ID: "m-lesson1", Title: "Lesson 1", Available: true},
				{ID: "m-lesson2", ContentID: "lesson2-cid", Title: "Lesson 2", Kind: "exercise"},
			}},
			{ID: "m-geometry", Title: "Geometry", Children: []dbtest.Node{
				{ID: "m-angles", Title: "Angles", Available: true},
			}},
		},
	})
	dbtest.InsertChannel(t, conn, pickChannel, "Picks", dbtest.Node{
		ID: "p-root", ContentID: pickChannel, Kind: "topic", Title: "Picks",
		Children: []dbtest.Node{
			{ID: "p-topic", ContentID: "algebra-cid", Title: "Algebra", Children: []dbtest.Node{
				{ID: "p-leaf", ContentID: "lesson2-cid", Title: "Lesson 2", Kind: "exercise"},
			}},
		},
	})
	require.NoError(t, conn.Close())
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRoot_PlainByAvailable(t *testing.T) {
	path := setupDatabase(t)

	out, err := execute(t, "--db", path)
	require.NoError(t, err)

	want := "Maths (" + mathsChannel + ")\n" +
		"2 content nodes\n" +
		"+ m-lesson1 (Algebra / Lesson 1) [video]\n" +
		"+ m-geometry (Geometry) [topic]\n" +
		"\n"
	assert.Equal(t, want, out)
}

func TestRoot_PickList(t *testing.T) {
	path := setupDatabase(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "or available",
			args: []string{"--db", path, "--pick-list-channel", pickChannel},
			want: "Maths (" + mathsChannel + ")\n3 content nodes\n+ m-root (Maths) [topic]\n\n",
		},
		{
			name: "pick list only",
			args: []string{"--db", path, "--pick-list-channel", pickChannel, "--no-or-available"},
			want: "Maths (" + mathsChannel + ")\n1 content nodes\n+ m-lesson2 (Algebra / Lesson 2) [exercise]\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRoot_KeyFileToOutputFile(t *testing.T) {
	path := setupDatabase(t)
	outPath := filepath.Join(t.TempDir(), "content.ini")

	saved := runClock
	runClock = clock.FixedClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	t.Cleanup(func() { runClock = saved })

	stdout, err := execute(t, "--db", path, "-f", "INI", outPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	want := `# Generated by kolibri-listcontent
# 2026-01-02 03:04:05.000000

[kolibri]
install_channels =
  # Maths [2]
  ` + mathsChannel + `

[kolibri-` + mathsChannel + `]
include_node_ids =
  # Algebra / Lesson 1 [video]
  m-lesson1
  # Geometry [topic]
  m-geometry

`
	assert.Equal(t, want, string(data))
}

func TestRoot_IncludeExclude(t *testing.T) {
	path := setupDatabase(t)

	out, err := execute(t, "--db", path, "-x", mathsChannel)
	require.NoError(t, err)
	assert.Empty(t, out)

	// The pick list channel is only skipped when no include list is given.
	out, err = execute(t, "--db", path, "-i", pickChannel, "--pick-list-channel", pickChannel)
	require.NoError(t, err)
	assert.Contains(t, out, "Picks ("+pickChannel+")")
}

func TestRoot_ConfigFile(t *testing.T) {
	path := setupDatabase(t)
	cfgPath := filepath.Join(t.TempDir(), "listcontent.ini")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[listcontent]\ndatabase = "+path+"\nformat = ini\n"), 0o644))

	out, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "install_channels =")

	// Flags win over the file.
	out, err = execute(t, "--config", cfgPath, "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "2 content nodes")
}

func TestRoot_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.sqlite3")

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{name: "unknown format fails before the store", args: []string{"--db", missing, "-f", "yaml"}, wantMsg: "unknown output format"},
		{name: "invalid channel id", args: []string{"--db", missing, "-i", "maths"}, wantMsg: "invalid channel id"},
		{name: "missing database", args: []string{"--db", missing}, wantErr: config.ErrDatabaseNotFound},
		{name: "bad log level", args: []string{"--db", missing, "--loglevel", "chatty"}, wantMsg: "invalid log level"},
		{name: "too many arguments", args: []string{"a", "b"}, wantMsg: "accepts at most 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestNewRootCmd_FormatFlag(t *testing.T) {
	cmd := NewRootCmd()
	flag := cmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "plain", flag.DefValue)
	assert.Equal(t, "f", flag.Shorthand)

	require.NoError(t, cmd.Flags().Set("format", "ini"))
	f, ok := flag.Value.(*report.Format)
	require.True(t, ok)
	assert.Equal(t, report.FormatINI, *f)
}
