package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/amqp"
	"finsight/internal/export"
	"finsight/internal/ports"
)

var fixedNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	return runApp(t, &app{now: func() time.Time { return fixedNow }}, dbPath, args...)
}

func runApp(t *testing.T, a *app, dbPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(a)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--db", dbPath, "--currency", "EUR"}, args...))

	err := cmd.Execute()
	// PersistentPostRunE is skipped when RunE fails
	require.NoError(t, a.close())
	return out.String(), err
}

func TestRootCommand_Metadata(t *testing.T) {
	cmd := newRootCmd(&app{})
	assert.Equal(t, "finsight-cli", cmd.Use)
	assert.NotNil(t, cmd.PersistentPreRunE)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("db"))

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"add", "list", "delete", "report", "export", "import"} {
		assert.Contains(t, names, want)
	}
}

func TestCLI_AddListReport(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := runCLI(t, db, "add", "--type", "income", "--category", "Salary", "--amount", "2000", "--date", "2026-03-01")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Added income Salary 2000.00 EUR")

	out, err = runCLI(t, db, "add", "--category", "food", "--amount", "12,50", "--date", "2026-03-02")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Added expense Food 12.50 EUR")

	out, err = runCLI(t, db, "add", "--category", "Rent", "--amount", "5")
	assert.Error(t, err)

	out, err = runCLI(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Salary")
	assert.Contains(t, out, "1987.50 EUR")

	out, err = runCLI(t, db, "list", "--month", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions.")

	out, err = runCLI(t, db, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "March 2026: 2 transactions")
	assert.Contains(t, out, "Top expense category: Food")

	_, err = runCLI(t, db, "report", "--month", "13")
	assert.Error(t, err)
}

func TestCLI_ExportDeleteImport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "cli.db")

	_, err := runCLI(t, db, "add", "--category", "Transport", "--amount", "3.20", "--date", "2026-03-03")
	require.NoError(t, err)
	_, err = runCLI(t, db, "add", "--category", "Travel", "--amount", "250", "--date", "2026-01-20")
	require.NoError(t, err)

	csvPath := filepath.Join(dir, "all.csv")
	_, err = runCLI(t, db, "export", "--all", "-o", csvPath)
	require.NoError(t, err)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	txs, err := export.ReadCSV(f)
	f.Close()
	require.NoError(t, err)
	require.Len(t, txs, 2)

	out, err := runCLI(t, db, "export")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2, "current month only")

	out, err = runCLI(t, db, "delete", txs[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+txs[0].ID)

	_, err = runCLI(t, db, "delete", txs[0].ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	// re-import restores the deleted record and skips the one still present
	out, err = runCLI(t, db, "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 of 2 transactions")

	out, err = runCLI(t, db, "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, txs[0].ID)
	assert.Contains(t, out, txs[1].ID)
}

type recordingPublisher struct {
	events []*amqp.TransactionEvent
}

func (p *recordingPublisher) PublishTransactionEvent(_ context.Context, ev *amqp.TransactionEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func TestCLI_WritesPublishEvents(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "cli.db")
	pub := &recordingPublisher{}
	newApp := func() *app { return &app{now: func() time.Time { return fixedNow }, publisher: pub} }

	_, err := runApp(t, newApp(), db, "add", "--category", "Food", "--amount", "8", "--date", "2026-02-11")
	require.NoError(t, err)
	require.Len(t, pub.events, 1)
	created := pub.events[0]
	assert.Equal(t, amqp.EventCreated, created.Kind)
	assert.Equal(t, 2026, created.Year)
	assert.Equal(t, time.February, created.Month)

	csvPath := filepath.Join(dir, "all.csv")
	_, err = runApp(t, newApp(), db, "export", "--all", "-o", csvPath)
	require.NoError(t, err)

	_, err = runApp(t, newApp(), db, "delete", created.ID)
	require.NoError(t, err)
	require.Len(t, pub.events, 2)
	assert.Equal(t, amqp.EventDeleted, pub.events[1].Kind)
	assert.Equal(t, created.ID, pub.events[1].ID)

	_, err = runApp(t, newApp(), db, "import", csvPath)
	require.NoError(t, err)
	require.Len(t, pub.events, 3)
	assert.Equal(t, amqp.EventCreated, pub.events[2].Kind)
	assert.Equal(t, created.ID, pub.events[2].ID)
}
