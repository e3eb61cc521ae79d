package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toasty/internal/dbus"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testEntries() []dbus.Entry {
	return []dbus.Entry{
		{
			ID:      "01HZX0AAAAAAAAAAAAAAAAAAAA",
			Kind:    "success",
			Message: "Upload complete",
			State:   "active",
			Created: testNow.Add(-5 * time.Minute).UnixMilli(),
		},
		{
			ID:      "01HZX0BBBBBBBBBBBBBBBBBBBB",
			Kind:    "confirmation",
			Message: "Delete 12 items?\nThis cannot be undone.",
			State:   "mounted",
			Created: testNow.Add(-2 * time.Hour).UnixMilli(),
		},
	}
}

func testOptions() FormatterOptions {
	opts := DefaultFormatterOptions()
	opts.Now = testNow
	return opts
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(testOptions()).Format(&buf, testEntries()))

	out := buf.String()
	assert.Contains(t, out, "[1] success")
	assert.Contains(t, out, "Upload complete (5 minutes ago)")
	assert.Contains(t, out, "[2] confirmation")
	assert.Contains(t, out, "Delete 12 items? This cannot be undone. (2 hours ago)")
	assert.Contains(t, out, "    01HZX0BBBBBBBBBBBBBBBBBBBB")
}

func TestPlainFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(testOptions()).Format(&buf, nil))
	assert.Equal(t, "no notifications on screen\n", buf.String())
}

func TestPlainFormatter_State(t *testing.T) {
	opts := testOptions()
	opts.ShowState = true
	opts.ShowTime = false

	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testEntries()[:1]))
	assert.Contains(t, buf.String(), "Upload complete [active]")
	assert.NotContains(t, buf.String(), "ago")
}

func TestDmenuFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(testOptions()).Format(&buf, testEntries()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1 | 5 minutes ago | success | Upload complete | 01HZX0AAAAAAAAAAAAAAAAAAAA", lines[0])
	assert.Contains(t, lines[1], "confirmation | Delete 12 items? This cannot be undone.")
}

func TestDmenuFormatter_CustomTemplate(t *testing.T) {
	opts := testOptions()
	opts.Template = "{{kindIcon .Entry.Kind}} {{.Index}}: {{truncate .Entry.Message 10}}"

	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(opts).Format(&buf, testEntries()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "+ 1: Upload ...", lines[0])
	assert.Equal(t, "? 2: Delete ...", lines[1])
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(testOptions()).Format(&buf, testEntries()))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "success", got[0]["kind"])
	assert.Equal(t, "active", got[0]["state"])
	assert.Equal(t, "5 minutes ago", got[0]["age"])
	assert.Equal(t, "2024-06-01T11:55:00Z", got[0]["created_at"])
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(testOptions()).Format(&buf, testEntries()))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "01HZX0BBBBBBBBBBBBBBBBBBBB", got[1]["id"])
	assert.Equal(t, "2 hours ago", got[1]["age"])
}

func TestIDsFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewIDsFormatter().Format(&buf, testEntries()))
	assert.Equal(t, "01HZX0AAAAAAAAAAAAAAAAAAAA\n01HZX0BBBBBBBBBBBBBBBBBBBB\n", buf.String())
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format   FormatType
		expected any
	}{
		{FormatPlain, &PlainFormatter{}},
		{FormatDmenu, &DmenuFormatter{}},
		{FormatJSON, &JSONFormatter{}},
		{FormatYAML, &YAMLFormatter{}},
		{FormatIDs, &IDsFormatter{}},
		{FormatType("unknown"), &PlainFormatter{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.IsType(t, tt.expected, NewFormatter(tt.format, DefaultFormatterOptions()))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestSanitizeMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		maxLen   int
		expected string
	}{
		{"simple", "hello", 0, "hello"},
		{"newlines", "a\nb\r\nc", 0, "a b c"},
		{"spaces", "a    b", 0, "a b"},
		{"truncate", "abcdefghij", 8, "abcde..."},
		{"tiny limit", "abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeMessage(tt.msg, tt.maxLen))
		})
	}
}

func TestAge(t *testing.T) {
	assert.Equal(t, "unknown", age(time.Time{}, testNow))
	assert.Equal(t, "now", age(testNow, testNow))
	assert.Equal(t, "3 days ago", age(testNow.Add(-72*time.Hour), testNow))
}
