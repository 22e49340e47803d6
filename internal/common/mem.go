package common

import (
	"github.com/prometheus/procfs"
)

// ResidentMemory reports the RSS of the current process in bytes.
// It fails on systems without procfs mounted.
func ResidentMemory() (uint64, error) {
	p, err := procfs.Self()
	if err != nil {
		return 0, err
	}
	stat, err := p.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(stat.ResidentMemory()), nil
}
