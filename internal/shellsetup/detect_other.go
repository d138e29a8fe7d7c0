//go:build !windows

package shellsetup

// DetectParentShellName is only needed on Windows, where SHELL is unset.
func DetectParentShellName() string {
	return ""
}
