package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charlerive/optionpricer/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPriceCmd(t *testing.T) {
	out, err := run(t, "price", "--spot", "100", "--strike", "110", "-T", "0.25", "-r", "0.02", "--vol", "0.3", "-q", "0.01", "-n", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "2.5601")
	assert.Contains(t, out, "12.2612")
	assert.Contains(t, out, "2.6041")
	assert.Contains(t, out, "12.3051")
}

func TestPriceCmd_MissingFlag(t *testing.T) {
	_, err := run(t, "price", "--spot", "100", "--strike", "110", "-T", "0.25")
	assert.Error(t, err)
}

func TestPriceCmd_InvalidParameter(t *testing.T) {
	_, err := run(t, "price", "--spot=-1", "--strike", "110", "-T", "0.25", "--vol", "0.3")
	assert.ErrorIs(t, err, option.ErrInvalidParameter)
}

func TestPriceCmd_ConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rate: 0.02\ndividend: 0.01\nsteps: 15\n"), 0o644))

	out, err := run(t, "--config", path, "price", "--spot", "100", "--strike", "110", "-T", "0.25", "--vol", "0.3")
	require.NoError(t, err)
	assert.Contains(t, out, "2.6041")

	// flags win over the file
	out, err = run(t, "--config", path, "price", "--spot", "100", "--strike", "110", "-T", "0.25", "--vol", "0.3", "-q", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "2.6341")
}

func TestEstimateCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	csv := "date,close\n2024-01-02,90.70\n2024-01-03,92.90\n2024-01-04,92.98\n2024-01-05,91.80\n2024-01-08,92.66\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	out, err := run(t, "estimate", "--history", path, "--strike", "90", "-T", "0.5", "-n", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "S=92.6600")
	assert.Contains(t, out, "lattice")
}

func TestConvergeCmd(t *testing.T) {
	out, err := run(t, "converge", "--spot", "100", "--strike", "100", "-T", "1", "-r", "0.05", "--vol", "0.2", "--type", "put", "--step-counts", "10,100")
	require.NoError(t, err)
	assert.Contains(t, out, "5.5735")

	_, err = run(t, "converge", "--spot", "100", "--strike", "100", "-T", "1", "--vol", "0.2", "--type", "straddle")
	assert.ErrorIs(t, err, option.ErrInvalidType)
}
