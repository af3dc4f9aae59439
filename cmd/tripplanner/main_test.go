package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tripplanner/internal/models"
	"github.com/ajitpratap0/tripplanner/internal/planner"
)

type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Chdir(dir)
	return dir
}

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPlanCmd_JSON(t *testing.T) {
	isolate(t)

	out, err := runRoot(t, "", "plan",
		"--destination", "Kerala",
		"--start", "2024-06-01", "--end", "2024-06-05",
		"--budget", "15000",
		"--activity", "Backwater cruise",
		"--format", "json")
	require.NoError(t, err)

	var s models.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "Kerala", s.Destination)
	assert.Equal(t, 4, s.Duration)
	assert.Equal(t, models.TierStandard, s.Tier)
	assert.Equal(t, []string{"Backwater cruise"}, s.Activities)
	assert.Len(t, s.Places, 4)
}

func TestPlanCmd_Text(t *testing.T) {
	isolate(t)

	out, err := runRoot(t, "", "plan",
		"--destination", "tamil nadu",
		"--start", "2024-01-01", "--end", "2024-01-10",
		"--budget", "5000")
	require.NoError(t, err)
	assert.Contains(t, out, "Trip Duration: 9 days")
	assert.Contains(t, out, "₹5000.00")
}

func TestPlanCmd_PDFFile(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "trip.pdf")

	out, err := runRoot(t, "", "plan",
		"--destination", "Karnataka",
		"--start", "2024-03-01", "--end", "2024-03-03",
		"--budget", "25000",
		"--format", "pdf", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPlanCmd_JSONToFile(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "trip.json")

	out, err := runRoot(t, "", "plan",
		"--destination", "Kerala",
		"--start", "2024-06-01", "--end", "2024-06-05",
		"--budget", "15000",
		"--format", "json", "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var s models.Summary
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, 4, s.Duration)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "out.txt")
	require.NoError(t, writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	errWrite := errors.New("render failed")
	err = writeFile(filepath.Join(dir, "bad.txt"), func(io.Writer) error { return errWrite })
	require.ErrorIs(t, err, errWrite)

	err = writeFile(filepath.Join(dir, "missing", "out.txt"), func(io.Writer) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output file")
}

func TestWriteFile_ReportsCloseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeFile(path, func(w io.Writer) error {
		// Closing early makes the deferred Close fail.
		return w.(*os.File).Close()
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closing output file")
}

func TestPlanCmd_ValidationErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown destination", []string{"--destination", "Atlantis", "--start", "2024-01-01", "--end", "2024-01-02", "--budget", "1"}, "valid destination"},
		{"bad date", []string{"--destination", "Kerala", "--start", "01/01/2024", "--end", "2024-01-02", "--budget", "1"}, "YYYY-MM-DD"},
		{"reversed dates", []string{"--destination", "Kerala", "--start", "2024-01-05", "--end", "2024-01-01", "--budget", "1"}, "Start date must not be after"},
		{"non-numeric budget", []string{"--destination", "Kerala", "--start", "2024-01-01", "--end", "2024-01-02", "--budget", "lots"}, "Budget"},
		{"infinite budget", []string{"--destination", "Kerala", "--start", "2024-01-01", "--end", "2024-01-02", "--budget", "inf"}, "Budget must be a non-negative number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, "", append([]string{"plan"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPlanCmd_InvalidFormat(t *testing.T) {
	isolate(t)

	_, err := runRoot(t, "", "plan",
		"--destination", "Kerala", "--start", "2024-01-01", "--end", "2024-01-02",
		"--budget", "1", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --format")
}

func TestRegionsCmd(t *testing.T) {
	isolate(t)

	out, err := runRoot(t, "", "regions")
	require.NoError(t, err)
	for _, name := range []string{"Tamil Nadu", "Kerala", "Karnataka", "Telangana"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "1. Munnar")
}

func TestQuoteCmd(t *testing.T) {
	isolate(t)

	out, err := runRoot(t, "", "quote")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestRunWizard_RepromptsUntilValid(t *testing.T) {
	input := strings.Join([]string{
		"Atlantis",
		"kerala",
		"2024-06-05", "2024-06-01",
		"2024-06-01", "2024-06-05",
		"cheap",
		"-10",
		"12000",
		"Houseboat",
		"   ",
	}, "\n") + "\n"

	e := planner.New(planner.WithPicker(firstPicker{}))
	var out bytes.Buffer
	require.NoError(t, runWizard(strings.NewReader(input), &out, e))

	transcript := out.String()
	assert.Equal(t, 1, strings.Count(transcript, "valid destination"))
	assert.Equal(t, 1, strings.Count(transcript, "Start date must not be after"))
	assert.Equal(t, 2, strings.Count(transcript, "Budget must be a non-negative number"))

	s := e.Summary()
	assert.Equal(t, "kerala", s.Destination)
	assert.Equal(t, 4, s.Duration)
	assert.InDelta(t, 12000.0, s.Budget, 0)
	assert.Equal(t, []string{"Houseboat"}, s.Activities)
	assert.Equal(t, "Adventure to Kerala", s.TripName)
	assert.Equal(t, models.StateFinalized, e.State())
}

func TestRunWizard_ActivitiesEndAtEOF(t *testing.T) {
	input := "Telangana\n2024-02-01\n2024-02-02\n0\nCharminar walk\nBiryani tour"

	e := planner.New(planner.WithPicker(firstPicker{}))
	require.NoError(t, runWizard(strings.NewReader(input), &bytes.Buffer{}, e))
	assert.Equal(t, []string{"Charminar walk", "Biryani tour"}, e.Activities())
	assert.Equal(t, models.TierBudget, e.Summary().Tier)
}

func TestRunWizard_InputClosedEarly(t *testing.T) {
	e := planner.New()
	err := runWizard(strings.NewReader("Kerala\n2024-01-01\n"), &bytes.Buffer{}, e)
	require.ErrorIs(t, err, errInputClosed)
}

func TestUserMessage(t *testing.T) {
	assert.Contains(t, userMessage(fmt.Errorf("wrap: %w", planner.ErrEmptyActivity)), "blank")
	assert.Contains(t, userMessage(planner.ErrInvalidDestination), "Telangana")
	assert.Equal(t, "boom", userMessage(errors.New("boom")))
}
