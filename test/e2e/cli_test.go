package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary before all E2E tests.
	tmp, err := os.MkdirTemp("", "nftmkt-e2e-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmp)

	binaryPath = filepath.Join(tmp, "nftmkt")
	// Build from the module root (two levels up from test/e2e/).
	moduleRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		panic(err)
	}
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = moduleRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func runCLI(t *testing.T, configDir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "NFTMKT_CONFIG_DIR="+configDir)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestVersionFlag(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "nftmkt")
	assert.Contains(t, out, "1.0.0")
}

func TestHelpCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "--help")
	require.NoError(t, err)
	lower := strings.ToLower(out)
	assert.Contains(t, lower, "mint")
	assert.Contains(t, lower, "market")
	assert.Contains(t, lower, "transfer")
	assert.Contains(t, lower, "wallet")
	assert.Contains(t, lower, "events")
}

func TestConfigShowDefaults(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "0xeD206F25fB9C73cbB61A15916E02F772B8404C14")
	assert.Contains(t, out, "0.0005")
}

func TestConfigSetMintFee(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "config", "set-mint-fee", "0.001")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "0.001")
}

func TestConfigSetMintFeeInvalid(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "config", "set-mint-fee", "lots")
	assert.Error(t, err)
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "init", "--rpc", "https://rpc.example.org")
	require.NoError(t, err)
	assert.Contains(t, out, "configured")

	cfgOut, err := runCLI(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, cfgOut, "rpc.example.org")
}

func TestWalletListEmpty(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "wallet", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No wallets")
}

func TestWalletAddRequiresKey(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "wallet", "add", "alice")
	assert.Error(t, err)
}

func TestWalletUseUnknown(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "wallet", "use", "ghost")
	assert.Error(t, err)
}

func TestMintRejectsExcessiveRoyalty(t *testing.T) {
	// Validation fires before any wallet or network access.
	dir := t.TempDir()
	out, err := runCLI(t, dir, "mint", "--uri", "ipfs://QmX", "--royalty", "1100")
	assert.Error(t, err)
	assert.Contains(t, out, "1100")
	assert.Contains(t, out, "1000")
}

func TestTransferRejectsBadAddress(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "transfer", "7", "not-an-address")
	assert.Error(t, err)
	assert.Contains(t, out, "invalid address")
}

func TestMarketListRejectsBadPrice(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "market", "list", "7", "free")
	assert.Error(t, err)
}
