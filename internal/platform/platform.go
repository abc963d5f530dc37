// Package platform detects the host operating system and CPU architecture
// and maps them onto the closed sets that the rest of rta understands.
package platform

import (
	"runtime"

	"github.com/pkg/errors"
)

// OS is one of the operating systems rta knows how to install tools for.
type OS string

const (
	Linux   OS = "linux"
	MacOS   OS = "macos"
	Windows OS = "windows"
)

// Cpu is one of the CPU architectures rta knows how to install tools for.
type Cpu string

const (
	Amd64 Cpu = "amd64"
	Arm64 Cpu = "arm64"
)

// ErrUnsupportedOS is returned when the running host's OS is outside the
// closed set rta supports.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// ErrUnsupportedCPU is returned when the running host's CPU architecture is
// outside the closed set rta supports.
var ErrUnsupportedCPU = errors.New("unsupported CPU architecture")

// Platform is the (os, cpu) pair that application definitions branch on to
// produce download URLs and archive layouts.
type Platform struct {
	OS  OS
	Cpu Cpu
}

// Detect reports the Platform of the host this process is running on.
func Detect() (Platform, error) {
	os, err := detectOS(runtime.GOOS)
	if err != nil {
		return Platform{}, err
	}
	cpu, err := detectCPU(runtime.GOARCH)
	if err != nil {
		return Platform{}, err
	}
	return Platform{OS: os, Cpu: cpu}, nil
}

func detectOS(goos string) (OS, error) {
	switch goos {
	case "linux":
		return Linux, nil
	case "darwin":
		return MacOS, nil
	case "windows":
		return Windows, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedOS, "%q", goos)
	}
}

func detectCPU(goarch string) (Cpu, error) {
	switch goarch {
	case "amd64":
		return Amd64, nil
	case "arm64":
		return Arm64, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedCPU, "%q", goarch)
	}
}

// ExecutableSuffix is ".exe" on Windows and empty everywhere else.
func (p Platform) ExecutableSuffix() string {
	if p.OS == Windows {
		return ".exe"
	}
	return ""
}

// String renders the platform as "<os>/<cpu>", matching the teacher's
// log-friendly path conventions (e.g. a TUF target path component).
func (p Platform) String() string {
	return string(p.OS) + "/" + string(p.Cpu)
}
