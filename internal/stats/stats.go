// Package stats samples host load for the HUD.
package stats

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Source reads the current CPU and memory usage in percent.
type Source interface {
	CPUPercent() (float64, error)
	MemPercent() (float64, error)
}

type hostSource struct{}

func (hostSource) CPUPercent() (float64, error) {
	percent, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(percent) == 0 {
		return 0, nil
	}
	return percent[0], nil
}

func (hostSource) MemPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// Sampler refreshes readings at most once per interval; the frame loop can
// call Lines every frame.
type Sampler struct {
	src      Source
	interval time.Duration
	now      func() time.Time

	last     time.Time
	cpu, mem float64
	err      error
}

// NewSampler samples the host every interval.
func NewSampler(interval time.Duration) *Sampler {
	return newSampler(hostSource{}, interval, time.Now)
}

func newSampler(src Source, interval time.Duration, now func() time.Time) *Sampler {
	return &Sampler{src: src, interval: interval, now: now}
}

// Refresh re-reads the source if the interval has passed.
func (s *Sampler) Refresh() {
	t := s.now()
	if !s.last.IsZero() && t.Sub(s.last) < s.interval {
		return
	}
	s.last = t
	s.err = nil
	if v, err := s.src.CPUPercent(); err != nil {
		s.err = fmt.Errorf("cpu: %w", err)
	} else {
		s.cpu = v
	}
	if v, err := s.src.MemPercent(); err != nil {
		s.err = fmt.Errorf("mem: %w", err)
	} else {
		s.mem = v
	}
}

// Err returns the last sampling failure, if any.
func (s *Sampler) Err() error { return s.err }

// Lines refreshes and returns the HUD text.
func (s *Sampler) Lines() []string {
	s.Refresh()
	return []string{
		fmt.Sprintf("CPU %3.0f%%", s.cpu),
		fmt.Sprintf("MEM %3.0f%%", s.mem),
	}
}
