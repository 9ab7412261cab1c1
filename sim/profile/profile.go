// Availability profiles: trace-driven resource state changes, independent of
// actor activity. A profile is a list of (date, value) datapoints, optionally
// periodic, that a resource replays through the future event set to vary its
// speed or availability over time.

package profile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DataPoint is one scheduled value change, relative to the profile start.
type DataPoint struct {
	Date  float64
	Value float64
}

// Profile is a named series of datapoints, replayed once or periodically.
type Profile struct {
	Name     string
	Points   []DataPoint
	Periodic bool
	Period   float64
}

// manager state: every parsed profile, finalized once at kernel shutdown.
var profiles map[string]*Profile

// Parse builds a profile from its textual form: one "date value" pair per
// line, '#' comments and blank lines ignored, with an optional
// "PERIODICITY <period>" directive making the profile repeat. The parsed
// profile is retained by the profile manager until Finalize.
func Parse(name, text string) (*Profile, error) {
	p := &Profile{Name: name}
	for lineno, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if strings.EqualFold(fields[0], "PERIODICITY") {
			if len(fields) != 2 {
				return nil, fmt.Errorf("profile %q line %d: PERIODICITY takes one value", name, lineno+1)
			}
			period, err := strconv.ParseFloat(fields[1], 64)
			if err != nil || period <= 0 {
				return nil, fmt.Errorf("profile %q line %d: invalid period %q", name, lineno+1, fields[1])
			}
			p.Periodic = true
			p.Period = period
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("profile %q line %d: want \"date value\", got %q", name, lineno+1, line)
		}
		date, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("profile %q line %d: invalid date %q", name, lineno+1, fields[0])
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("profile %q line %d: invalid value %q", name, lineno+1, fields[1])
		}
		p.Points = append(p.Points, DataPoint{Date: date, Value: value})
	}
	if len(p.Points) == 0 {
		return nil, fmt.Errorf("profile %q: no datapoints", name)
	}
	sort.SliceStable(p.Points, func(i, j int) bool { return p.Points[i].Date < p.Points[j].Date })
	if p.Periodic && p.Points[len(p.Points)-1].Date >= p.Period {
		return nil, fmt.Errorf("profile %q: last datapoint (%g) beyond period (%g)",
			name, p.Points[len(p.Points)-1].Date, p.Period)
	}
	if profiles == nil {
		profiles = make(map[string]*Profile)
	}
	profiles[name] = p
	return p, nil
}

// ByName returns a previously parsed profile, or nil.
func ByName(name string) *Profile {
	return profiles[name]
}

// Count returns the number of profiles held by the manager.
func Count() int { return len(profiles) }

// Finalize releases every parsed profile. Called once during kernel shutdown,
// after models are destroyed and before the clock resets.
func Finalize() {
	profiles = nil
}

// Schedule replays the profile through the future event set starting at time
// start, invoking apply(now, value) at each datapoint. Each firing schedules
// the next one, so a periodic profile stays pending forever.
func (p *Profile) Schedule(fes *FutureEvtSet, start float64, apply func(now, value float64)) {
	p.scheduleIndex(fes, start, 0, apply)
}

func (p *Profile) scheduleIndex(fes *FutureEvtSet, origin float64, idx int, apply func(now, value float64)) {
	if idx >= len(p.Points) {
		if !p.Periodic {
			return
		}
		origin += p.Period
		idx = 0
	}
	point := p.Points[idx]
	fes.Insert(origin+point.Date, func(now float64) {
		apply(now, point.Value)
		p.scheduleIndex(fes, origin, idx+1, apply)
	})
}
