//go:build windows

package shellsetup

import (
	"os"

	"golang.org/x/sys/windows"
)

// DetectParentShellName names the shell that started quizmark from the
// image path of the parent process.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}
	image, ok := processImage(uint32(ppid))
	if !ok {
		return ""
	}
	// Quoted so a path under "Program Files" is not cut at the space.
	return canonicalShellName(normalizeShellName(`"` + image + `"`))
}

func processImage(pid uint32) (string, bool) {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", false
	}
	defer windows.CloseHandle(handle)

	buf := make([]uint16, windows.MAX_PATH)
	for {
		size := uint32(len(buf))
		err = windows.QueryFullProcessImageName(handle, 0, &buf[0], &size)
		switch err {
		case nil:
			image := windows.UTF16ToString(buf[:size])
			return image, image != ""
		case windows.ERROR_INSUFFICIENT_BUFFER:
			buf = make([]uint16, len(buf)*2)
		default:
			return "", false
		}
	}
}
