package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArray_Value(t *testing.T) {
	tests := []struct {
		name string
		in   StringArray
		want string
	}{
		{"nil", nil, "{}"},
		{"empty", StringArray{}, "{}"},
		{"simple", StringArray{"fps", "multi"}, `{"fps","multi"}`},
		{"spaces", StringArray{"open world"}, `{"open world"}`},
		{"quotes", StringArray{`say "hi"`}, `{"say \"hi\""}`},
		{"backslash", StringArray{`a\b`}, `{"a\\b"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.in.Value()
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestStringArray_Scan(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want StringArray
	}{
		{"empty", "{}", StringArray{}},
		{"unquoted", "{fps,multi}", StringArray{"fps", "multi"}},
		{"quoted", `{"open world","rpg"}`, StringArray{"open world", "rpg"}},
		{"escaped quote", `{"say \"hi\""}`, StringArray{`say "hi"`}},
		{"bytes", []byte("{a,b}"), StringArray{"a", "b"}},
		{"null column", nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var a StringArray
			require.NoError(t, a.Scan(tc.in))
			assert.Equal(t, tc.want, a)
		})
	}
}

func TestStringArray_ScanMalformed(t *testing.T) {
	var a StringArray
	assert.Error(t, a.Scan("not an array"))
	assert.Error(t, a.Scan(42))
}

func TestStringArray_RoundTrip(t *testing.T) {
	in := StringArray{"fps", "open world", `tricky "tag"`, `back\slash`}
	v, err := in.Value()
	require.NoError(t, err)

	var out StringArray
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func TestToStringArray(t *testing.T) {
	assert.Equal(t, StringArray{}, ToStringArray(nil))
	assert.Equal(t, StringArray{"solo"}, ToStringArray("solo"))
	assert.Equal(t, StringArray{}, ToStringArray(""))
	assert.Equal(t, StringArray{"a", "b"}, ToStringArray([]string{"a", "b"}))
	assert.Equal(t, StringArray{"a", "b"}, ToStringArray([]any{"a", "", "b"}))
	assert.Equal(t, StringArray{}, ToStringArray(42))
}

func TestIsValidPlatform(t *testing.T) {
	for _, p := range ValidPlatforms {
		assert.True(t, IsValidPlatform(p))
	}
	assert.False(t, IsValidPlatform("atari"))
	assert.False(t, IsValidPlatform(""))
	// caller lowercases; mixed case is not accepted here
	assert.False(t, IsValidPlatform("PC"))
}
