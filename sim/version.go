// Version surface and the compatibility check between the headers an
// embedding program was built against and the linked kernel.

package sim

import "fmt"

// Kernel version. A patch level above developmentPatchFloor marks a
// development build that must never be mixed with a stable release.
const (
	VersionMajor = 3
	VersionMinor = 25
	VersionPatch = 1

	developmentPatchFloor = 90
)

// VersionString returns the kernel version as "major.minor.patch".
func VersionString() string {
	return fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}

// VersionGet reports the linked kernel version.
func VersionGet() (major, minor, patch int) {
	return VersionMajor, VersionMinor, VersionPatch
}

// VersionCheck compares the version an embedding program was compiled
// against with the linked kernel. A major or minor mismatch is fatal and
// returns a VersionMismatchError. A patch-only mismatch is a warning (nil
// with ok=false) unless either side is a development build, which makes it
// fatal too.
func VersionCheck(major, minor, patch int) (ok bool, err error) {
	mismatch := &VersionMismatchError{
		CompiledMajor: major, CompiledMinor: minor, CompiledPatch: patch,
		LinkedMajor: VersionMajor, LinkedMinor: VersionMinor, LinkedPatch: VersionPatch,
	}
	if major != VersionMajor || minor != VersionMinor {
		return false, mismatch
	}
	if patch != VersionPatch {
		if patch >= developmentPatchFloor || VersionPatch >= developmentPatchFloor {
			mismatch.Development = true
			return false, mismatch
		}
		return false, nil // proceed anyway, caller should log a warning
	}
	return true, nil
}
