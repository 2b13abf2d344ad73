package function

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsShaded(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"shaded numeric version", "shadedudf_1_0_0.com.acme.MyFunc", true},
		{"shaded wildcard version", "shadedudf_x_x_x.com.acme.MyFunc", true},
		{"shaded mixed version", "shadedudf_2_x_1.com.acme.MyFunc", true},
		{"plain class", "com.acme.MyFunc", false},
		{"bare name", "lower", false},
		{"empty", "", false},
		{"prefix without class", "shadedudf_1_0_0", false},
		{"wrong tag", "otherudf_1_0_0.com.acme.MyFunc", false},
		{"non-numeric component", "shadedudf_1_a_0.com.acme.MyFunc", false},
		{"missing component", "shadedudf_1_0.com.acme.MyFunc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, IsShaded(tt.input))
		})
	}
}

func TestRemoveShadingPrefix(t *testing.T) {
	require.Equal(t, "com.acme.MyFunc", RemoveShadingPrefix("shadedudf_1_0_0.com.acme.MyFunc"))
	require.Equal(t, "com.acme.MyFunc", RemoveShadingPrefix("com.acme.MyFunc"))
	require.Equal(t, "lower", RemoveShadingPrefix("lower"))
}

func TestShadedNameRoundTrip(t *testing.T) {
	shaded := ShadedName("com.acme.MyFunc", "1", "2", "3")
	require.Equal(t, "shadedudf_1_2_3.com.acme.MyFunc", shaded)
	require.True(t, IsShaded(shaded))
	require.Equal(t, "com.acme.MyFunc", RemoveShadingPrefix(shaded))
}

func TestVersionedFunctionName(t *testing.T) {
	tests := []struct {
		name     string
		alias    string
		class    string
		expected string
	}{
		{"numeric version", "myFunc", "shadedudf_1_0_0.com.acme.MyFunc", "myFunc_1_0_0"},
		{"wildcard version", "myFunc", "shadedudf_x_x_x.com.acme.MyFunc", "myFunc_x_x_x"},
		{"unshaded class", "myFunc", "com.acme.MyFunc", "myFunc"},
		{"bare name", "myFunc", "lower", "myFunc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, VersionedFunctionName(tt.alias, tt.class))
		})
	}
}
