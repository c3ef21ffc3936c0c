package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/mirror/internal/model"
	"github.com/ppiankov/mirror/internal/pipeline"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	require.NoError(t, setDefaults(v, model.DefaultConfig()))
	bindEnv(v)
	return v
}

func TestDecodeConfig_Defaults(t *testing.T) {
	cfg, err := decodeConfig(newTestViper(t))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestDecodeConfig_EnvOverride(t *testing.T) {
	t.Setenv("MIRROR_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("MIRROR_CACHE_TTL", "30s")
	t.Setenv("MIRROR_RATE_LIMITING_ENABLED", "false")

	cfg, err := decodeConfig(newTestViper(t))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.RateLimiting.Enabled)
	assert.Equal(t, 4, cfg.Concurrency.Workers)
}

func TestDecodeConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`server:
  addr: ":7070"
insight:
  rolling_window: 72h
  shift_threshold: 0.4
logging:
  level: debug
`), 0644))

	v := newTestViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 72*time.Hour, cfg.Insight.RollingWindow)
	assert.Equal(t, 0.4, cfg.Insight.ShiftThreshold)
	assert.Equal(t, 0.5, cfg.Insight.VolatilityThreshold)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
}

func TestWriteConfigTo_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeConfigTo(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "# Mirror Configuration File"))

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(&buf))

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestWriteDefaultConfig_NoOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, writeDefaultConfig(path))
	_, err := os.Stat(path)
	require.NoError(t, err)

	err = writeDefaultConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"001-entry":          "001-entry",
		"002-my day/at work": "002-my-day_at-work",
		`a:b*c?d"e<f>g|h\i`:  "a_b_c_d_e_f_g_h_i",
		"...":                "entry",
		"":                   "entry",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFilename(in), in)
	}

	assert.Len(t, sanitizeFilename(strings.Repeat("x", 300)), 100)

	// Byte 100 falls inside a two-byte rune
	long := sanitizeFilename("x" + strings.Repeat("é", 80))
	assert.Len(t, long, 99)
	assert.True(t, utf8.ValidString(long))
}

func TestNewAnalyzer_Cache(t *testing.T) {
	cfg := model.DefaultConfig()

	_, cached := newAnalyzer(cfg, nil).(*pipeline.CachedAnalyzer)
	assert.True(t, cached)

	cfg.Cache.Enabled = false
	_, plain := newAnalyzer(cfg, nil).(*pipeline.Analyzer)
	assert.True(t, plain)
}

// runCommand executes the root command with isolated home, output and flag state
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	outJSON, outMD, inputFile, inputHTML, noFooter = "", "", "", false, false
	summaryWeek, summaryJSON, summaryMD = "", "", ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "mirror "+Version+"\n", out)
}

func TestAnalyzeCommand_Args(t *testing.T) {
	out, err := runCommand(t, "", "analyze", "I am so happy and grateful today")
	require.NoError(t, err)
	assert.Equal(t, "Sentiment: Positive (1.00) · no biases detected\n", out)
}

func TestAnalyzeCommand_StdinJSON(t *testing.T) {
	out, err := runCommand(t, "This always happens to me", "analyze", "--json", "-")
	require.NoError(t, err)

	var analysis model.EntryAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &analysis))
	assert.True(t, analysis.HasBias(model.BiasOvergeneralization))
}

func TestAnalyzeCommand_HTML(t *testing.T) {
	out, err := runCommand(t, "<p>I hate <b>this</b></p><script>var happy = 1</script>", "analyze", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "Sentiment: Negative")
}

func TestAnalyzeCommand_InvalidUTF8(t *testing.T) {
	_, err := runCommand(t, "bad \xff bytes", "analyze")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestSummaryCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"id":"tue","entry_text":"Work was hard and I hate my boss","timestamp":"2024-03-05T12:00:00Z"}
{"id":"wed","entry_text":"Grateful for my friends, a great day","timestamp":"2024-03-06T12:00:00Z"}
{"id":"next","entry_text":"Another week","timestamp":"2024-03-14T12:00:00Z"}
`), 0644))

	out, err := runCommand(t, "", "summary", path, "--week", "2024-03-06", "--json", "-")
	require.NoError(t, err)

	var report SummaryReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Summary.EntryCount)
	assert.Len(t, report.Timeline, 2)
	assert.True(t, report.Timeline[1].MoodShift)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "journal.txt")
	require.NoError(t, os.WriteFile(input, []byte("I will fail, it's going to be terrible.\n\nA calm and good day.\n"), 0644))
	outDir := filepath.Join(dir, "reports")

	_, err := runCommand(t, "", "batch", input, "--output-dir", outDir, "--concurrency", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "batch.json"))
	require.NoError(t, err)

	var analyzed []model.AnalyzedEntry
	require.NoError(t, json.Unmarshal(data, &analyzed))
	require.Len(t, analyzed, 2)
	assert.True(t, analyzed[0].Analysis.HasBias(model.BiasFortuneTelling))

	md, err := os.ReadFile(filepath.Join(outDir, "batch.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "| Fortune Telling | 1 |")

	matches, err := filepath.Glob(filepath.Join(outDir, "001-*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
