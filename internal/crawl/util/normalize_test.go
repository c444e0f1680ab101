package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	require.Equal(t, "Chef de Partie", CleanText("  Chef de \n Partie  "))
	require.Equal(t, "", CleanText("   "))
}

func TestAbsoluteURL(t *testing.T) {
	require.Equal(t, "https://au.jora.com/job/1", AbsoluteURL("https://au.jora.com", "/job/1"))
	require.Equal(t, "https://other.example/x", AbsoluteURL("https://au.jora.com", "https://other.example/x"))
	require.Equal(t, "", AbsoluteURL("https://au.jora.com", "  "))
}
