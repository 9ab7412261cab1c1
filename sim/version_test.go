package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionString_MatchesComponents(t *testing.T) {
	major, minor, patch := VersionGet()
	assert.Equal(t, fmt.Sprintf("%d.%d.%d", major, minor, patch), VersionString())
}

func TestVersionCheck_ExactMatch(t *testing.T) {
	// GIVEN a program compiled against the linked version
	ok, err := VersionCheck(VersionMajor, VersionMinor, VersionPatch)

	// THEN the check passes cleanly
	assert.True(t, ok)
	assert.NoError(t, err)
}

func TestVersionCheck_MajorMismatch_Fatal(t *testing.T) {
	// WHEN the compiled major version differs
	ok, err := VersionCheck(VersionMajor+1, VersionMinor, VersionPatch)

	// THEN the mismatch is fatal and carries both versions
	assert.False(t, ok)
	var mismatch *VersionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, VersionMajor+1, mismatch.CompiledMajor)
	assert.Equal(t, VersionMajor, mismatch.LinkedMajor)
	assert.False(t, mismatch.Development)
}

func TestVersionCheck_MinorMismatch_Fatal(t *testing.T) {
	ok, err := VersionCheck(VersionMajor, VersionMinor+1, VersionPatch)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestVersionCheck_PatchMismatch_WarningOnly(t *testing.T) {
	// WHEN only the patch level differs, both sides stable
	ok, err := VersionCheck(VersionMajor, VersionMinor, VersionPatch+1)

	// THEN the caller may proceed (warn, not fail)
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestVersionCheck_DevelopmentPatch_Fatal(t *testing.T) {
	// WHEN the compiled side is a development build (patch >= 90)
	ok, err := VersionCheck(VersionMajor, VersionMinor, 93)

	// THEN mixing with a stable release is fatal
	assert.False(t, ok)
	var mismatch *VersionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.True(t, mismatch.Development)
	assert.Contains(t, err.Error(), "development version")
}
